package model

import "testing"

func TestParseTossDecision(t *testing.T) {
	tests := []struct {
		in   string
		want TossDecision
		ok   bool
	}{
		{"bat", TossBat, true},
		{"Bat", TossBat, true},
		{"  FIELD ", TossField, true},
		{"bowl", TossUnknown, false},
		{"", TossUnknown, false},
	}
	for _, tc := range tests {
		got, ok := ParseTossDecision(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseTossDecision(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseMatchResult(t *testing.T) {
	tests := []struct {
		in   string
		want MatchResult
		ok   bool
	}{
		{"normal", ResultNormal, true},
		{"Normal", ResultNormal, true},
		{"TIE", ResultTie, true},
		{"no result", ResultNoResult, true},
		{"No Result", ResultNoResult, true},
		{"abandoned", ResultNoResult, false},
	}
	for _, tc := range tests {
		got, ok := ParseMatchResult(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseMatchResult(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseDismissalKind(t *testing.T) {
	tests := []struct {
		in   string
		want DismissalKind
	}{
		{"bowled", Bowled},
		{"caught", Caught},
		{"Caught And Bowled", CaughtAndBowled}, // mixed case from the source files
		{"lbw", LBW},
		{"run out", RunOut},
		{"stumped", Stumped},
		{"hit wicket", HitWicket},
		{"obstructing the field", ObstructingTheField},
		{"retired hurt", RetiredHurt},
		// Missing or unrecognized text defaults to not-out.
		{"", NotOut},
		{"handled the ball", NotOut},
	}
	for _, tc := range tests {
		if got := ParseDismissalKind(tc.in); got != tc.want {
			t.Errorf("ParseDismissalKind(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDismissalIsWicket(t *testing.T) {
	if NotOut.IsWicket() {
		t.Error("not-out must not count as a wicket")
	}
	for _, k := range []DismissalKind{Bowled, Caught, CaughtAndBowled, LBW, RunOut, Stumped, HitWicket, ObstructingTheField, RetiredHurt} {
		if !k.IsWicket() {
			t.Errorf("%v should count as a wicket", k)
		}
	}
}
