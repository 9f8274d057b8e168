package slideshow

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	xdraw "golang.org/x/image/draw"
)

// Transition selects how one slide replaces the next.
type Transition int

const (
	Fade Transition = iota
	FromLeft
	Abrupt
)

func (t Transition) String() string {
	switch t {
	case Fade:
		return "fade"
	case FromLeft:
		return "fromleft"
	case Abrupt:
		return "abrupt"
	default:
		return fmt.Sprintf("transition(%d)", int(t))
	}
}

// ParseTransition accepts the names produced by String, case-insensitively.
func ParseTransition(s string) (Transition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fade":
		return Fade, nil
	case "fromleft":
		return FromLeft, nil
	case "abrupt":
		return Abrupt, nil
	}
	return Fade, fmt.Errorf("unknown transition %q", s)
}

// roundHalfUp is floor(x + 0.5).
func roundHalfUp(x float64) int { return int(math.Floor(x + 0.5)) }

// Regions are the source and destination rectangles of a FromLeft frame.
type Regions struct {
	SrcPresent, DstPresent image.Rectangle
	SrcNext, DstNext       image.Rectangle
}

// ComputeRegions splits a viewport of the given size at step out of
// granularity. The incoming slide grows from the left edge showing its right
// part; the outgoing slide is pushed right.
func ComputeRegions(size image.Point, step, granularity int) Regions {
	p := float64(step) / float64(granularity)
	w, h := float64(size.X), size.Y
	presentW := roundHalfUp(w * (1 - p))
	nextW := roundHalfUp(w * p)
	shift := roundHalfUp(w * p)

	var r Regions
	r.SrcPresent = image.Rect(0, 0, presentW, h)
	r.DstPresent = r.SrcPresent.Add(image.Pt(shift, 0))
	r.SrcNext = image.Rect(presentW, 0, presentW+nextW, h)
	r.DstNext = image.Rect(0, 0, nextW, h)
	return r
}

// fadeAlpha is the opacity of the outgoing slide at step.
func fadeAlpha(step, granularity int) uint8 {
	a := roundHalfUp(255 * (1 - float64(step)/float64(granularity)))
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return uint8(a)
}

// composeFade draws next at full coverage, then present over it with the
// remaining opacity.
func composeFade(dst *image.RGBA, present, next image.Image, step, granularity int) {
	b := dst.Bounds()
	xdraw.Draw(dst, b, next, image.Point{}, xdraw.Src)
	mask := image.NewUniform(color.Alpha{A: fadeAlpha(step, granularity)})
	xdraw.DrawMask(dst, b, present, image.Point{}, mask, image.Point{}, xdraw.Over)
}

func composeFromLeft(dst *image.RGBA, present, next image.Image, step, granularity int) {
	r := ComputeRegions(dst.Bounds().Size(), step, granularity)
	xdraw.Draw(dst, r.DstNext, next, r.SrcNext.Min, xdraw.Src)
	xdraw.Draw(dst, r.DstPresent, present, r.SrcPresent.Min, xdraw.Over)
}

// fit scales src into a white canvas of the given size, keeping its aspect
// ratio and centering it.
func fit(src image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.Draw(dst, dst.Bounds(), image.White, image.Point{}, xdraw.Src)
	if src == nil {
		return dst
	}
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 || size.X == 0 || size.Y == 0 {
		return dst
	}
	scale := math.Min(float64(size.X)/float64(sb.Dx()), float64(size.Y)/float64(sb.Dy()))
	w := int(float64(sb.Dx()) * scale)
	h := int(float64(sb.Dy()) * scale)
	x := (size.X - w) / 2
	y := (size.Y - h) / 2
	xdraw.BiLinear.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, xdraw.Over, nil)
	return dst
}
