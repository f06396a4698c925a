package attempt

import (
	"testing"

	"github.com/nikhilbhutani/fluencyscore/internal/fluency"
)

func TestFromEvaluation(t *testing.T) {
	u := fluency.Utterance{Text1: "go to the store", Text2: "go go to the sssstore"}
	e := &fluency.Evaluation{
		UtteranceScore: 60,
		SessionScore:   60,
		Progress:       40,
		Signals:        fluency.Signals{Repetitions: 1, Elongations: 1, Pauses: 1},
	}

	a := FromEvaluation("alice", u, e)
	if a.SessionID != "alice" || a.Transcript != u.Text2 || a.Reference != u.Text1 {
		t.Fatalf("unexpected attempt: %+v", a)
	}
	if a.UtteranceScore != 60 || a.Progress != 40 || a.Pauses != 1 {
		t.Fatalf("scores not copied: %+v", a)
	}
	if a.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("attempt id not assigned")
	}
	if a.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, defaultListLimit},
		{-5, defaultListLimit},
		{2, 2},
		{1000, maxListLimit},
	}
	for _, tt := range tests {
		if got := ClampLimit(tt.in); got != tt.want {
			t.Errorf("ClampLimit(%d)=%d, want %d", tt.in, got, tt.want)
		}
	}
}
