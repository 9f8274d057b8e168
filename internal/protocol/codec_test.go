package protocol

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		name  string
		msg   string
		token string
		want  string
		found bool
	}{
		{"absent", "<score0>3</score0>", "score1", NoData, false},
		{"empty message", "", "kill", NoData, false},
		{"present", "<score0>3</score0><score1>12</score1>", "score1", "12", true},
		{"empty payload", "<spotloop></spotloop>", "spotloop", "", true},
		{"last wins", "<team0>A</team0><x>1</x><team0>B</team0>", "team0", "B", true},
		{"unterminated", "<team0>A", "team0", NoData, false},
		{"prefix token is distinct", "<set0>2</set0>", "set", NoData, false},
		{"spaces kept", "<team0> Lupi </team0>", "team0", " Lupi ", true},
		{"unterminated after match", "<kill>0</kill><kill>1", "kill", "0", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := Parse(tc.msg, tc.token)
			if got != tc.want || found != tc.found {
				t.Fatalf("Parse(%q,%q) = %q,%v; want %q,%v", tc.msg, tc.token, got, found, tc.want, tc.found)
			}
			if v := Value(tc.msg, tc.token); v != tc.want {
				t.Fatalf("Value = %q; want %q", v, tc.want)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	cases := []struct {
		in                 string
		min, max, fallback int
		want               int
	}{
		{"2", 0, 3, 8, 2},
		{"4", 0, 3, 8, 8},
		{"-1", 0, 3, 8, 8},
		{"x", 0, 99, 99, 99},
		{NoData, 0, 1, 0, 0},
		{" 7 ", 0, 99, 99, 7},
		{"-1", -1, 1, 0, -1},
	}
	for _, tc := range cases {
		if got := ParseInt(tc.in, tc.min, tc.max, tc.fallback); got != tc.want {
			t.Fatalf("ParseInt(%q,%d,%d,%d) = %d; want %d", tc.in, tc.min, tc.max, tc.fallback, got, tc.want)
		}
	}
}

func TestOutbound(t *testing.T) {
	if got := StatusRequest("panel-1"); got != "<getStatus>panel-1</getStatus>" {
		t.Fatalf("status request: %q", got)
	}
	if got := ClosedSpot(); got != "<closed_spot>1</closed_spot>" {
		t.Fatalf("closed spot: %q", got)
	}
	if got := ClosedLive(); got != "<closed_live>1</closed_live>" {
		t.Fatalf("closed live: %q", got)
	}
	if got := Orientation(false); got != "<orientation>0</orientation>" {
		t.Fatalf("orientation: %q", got)
	}
	if got := ScoreOnly(true); got != "<isScoreOnly>1</isScoreOnly>" {
		t.Fatalf("score only: %q", got)
	}
}
