package dispatch

import (
	"strconv"

	"scorepanel/internal/protocol"
)

// MaxTeamNameLen is the longest team name shown on the panel.
const MaxTeamNameLen = 15

// intField is a scoreboard number with its accepted range and the value shown
// when the controller sends something outside it.
type intField struct {
	token    string
	min, max int
	fallback int
}

var intFields = []intField{
	{protocol.TokenSet0, 0, 3, 8},
	{protocol.TokenSet1, 0, 3, 8},
	{protocol.TokenTimeout0, 0, 2, 8},
	{protocol.TokenTimeout1, 0, 2, 8},
	{protocol.TokenScore0, 0, 99, 99},
	{protocol.TokenScore1, 0, 99, 99},
	{protocol.TokenServe, -1, 1, 0},
}

// DefaultTimeoutSeconds is used when startTimeout carries no usable value.
const DefaultTimeoutSeconds = 30

// applyFields forwards every scoreboard field present in msg.
func (d *Dispatcher) applyFields(msg string) {
	for _, tok := range []string{protocol.TokenTeam0, protocol.TokenTeam1} {
		if v, ok := protocol.Parse(msg, tok); ok {
			d.cfg.Presenter.SetField(tok, truncateRunes(v, MaxTeamNameLen))
		}
	}
	for _, f := range intFields {
		if v, ok := protocol.Parse(msg, f.token); ok {
			n := protocol.ParseInt(v, f.min, f.max, f.fallback)
			d.cfg.Presenter.SetField(f.token, strconv.Itoa(n))
		}
	}
	if v, ok := protocol.Parse(msg, protocol.TokenStartTimeout); ok {
		n := protocol.ParseInt(v, 0, int(^uint(0)>>1), DefaultTimeoutSeconds)
		d.cfg.Presenter.SetField(protocol.TokenStartTimeout, strconv.Itoa(n))
	}
	if _, ok := protocol.Parse(msg, protocol.TokenStopTimeout); ok {
		d.cfg.Presenter.SetField(protocol.TokenStopTimeout, "")
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
