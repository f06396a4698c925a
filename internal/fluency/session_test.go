package fluency

import "testing"

func TestSessionScoreBootstrap(t *testing.T) {
	var s SessionScore
	if s.Initialized() {
		t.Fatal("zero value should be uninitialized")
	}
	if _, ok := s.Current(); ok {
		t.Fatal("Current should report no score before first observation")
	}

	if got := s.Observe(50); got != 50 {
		t.Fatalf("first observe=%v, want 50", got)
	}
	if cur, ok := s.Current(); !ok || cur != 50 {
		t.Fatalf("current=(%v,%v), want (50,true)", cur, ok)
	}
}

func TestSessionScoreSteadyState(t *testing.T) {
	var s SessionScore
	s.Observe(50)
	got := s.Observe(70)
	if diff := got - 54; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("observe=%v, want 54", got)
	}
	if s.Observations() != 2 {
		t.Fatalf("observations=%d, want 2", s.Observations())
	}
}

func TestSessionScoreProgress(t *testing.T) {
	var s SessionScore
	if s.Progress() != 0 {
		t.Fatalf("progress=%v, want 0 before first observation", s.Progress())
	}
	s.Observe(60)
	if s.Progress() != 40 {
		t.Fatalf("progress=%v, want 40", s.Progress())
	}
}

func TestRestoreSessionScore(t *testing.T) {
	var s SessionScore
	s.Observe(30)
	s.Observe(80)

	restored := RestoreSessionScore(s.State())
	if restored.State() != s.State() {
		t.Fatalf("restored=%+v, want %+v", restored.State(), s.State())
	}

	empty := RestoreSessionScore(SessionState{Score: 101})
	if empty.Initialized() {
		t.Fatal("uninitialized state should restore as uninitialized")
	}
	if got := empty.Observe(20); got != 20 {
		t.Fatalf("observe after restore=%v, want 20", got)
	}
}
