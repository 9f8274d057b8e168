package slideshow

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	gradientTop    = color.RGBA{0, 0, 96, 255}
	gradientBottom = color.RGBA{0, 0, 16, 255}
	captionColor   = color.RGBA{255, 255, 0, 255}
)

// Placeholder renders the frame shown while the slide directory is empty: a
// vertical blue gradient with a centered caption.
func Placeholder(size image.Point, caption string) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: size})
	for y := 0; y < size.Y; y++ {
		t := 0.0
		if size.Y > 1 {
			t = float64(y) / float64(size.Y-1)
		}
		c := color.RGBA{
			R: lerp(gradientTop.R, gradientBottom.R, t),
			G: lerp(gradientTop.G, gradientBottom.G, t),
			B: lerp(gradientTop.B, gradientBottom.B, t),
			A: 255,
		}
		xdraw.Draw(img, image.Rect(0, y, size.X, y+1), image.NewUniform(c), image.Point{}, xdraw.Src)
	}

	face := basicfont.Face7x13
	width := font.MeasureString(face, caption).Ceil()
	m := face.Metrics()
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(captionColor),
		Face: face,
		Dot:  fixed.P((size.X-width)/2, (size.Y-m.Height.Ceil())/2+m.Ascent.Ceil()),
	}
	d.DrawString(caption)
	return img
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
