package workflow

import "testing"

func TestRecomputeRequired(t *testing.T) {
	cases := []struct {
		name        string
		wasFinished bool
		isFinished  bool
		expected    bool
	}{
		{"open trade created", false, false, false},
		{"open trade edited while still open", false, false, false},
		{"trade closed", false, true, true},
		{"finished trade edited", true, true, true},
		{"finished trade deleted", true, false, true},
	}
	for _, tc := range cases {
		if got := RecomputeRequired(tc.wasFinished, tc.isFinished); got != tc.expected {
			t.Fatalf("%s: RecomputeRequired(%v, %v) expected %v, got %v",
				tc.name, tc.wasFinished, tc.isFinished, tc.expected, got)
		}
	}
}
