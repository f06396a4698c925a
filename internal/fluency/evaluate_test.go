package fluency

import (
	"errors"
	"testing"
)

func TestEvaluateEndToEnd(t *testing.T) {
	u := Utterance{
		Text1:      "go to the store",
		Text2:      "go go to the sssstore",
		Annotation: "go: 0.00s - 0.20s | go: 0.25s - 0.45s | to: 0.46s - 0.60s | the: 0.61s - 0.75s | sssstore: 1.20s - 1.60s",
	}

	var session SessionScore
	got, err := Evaluate(u, &session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Signals{Repetitions: 1, Elongations: 1, Pauses: 1}
	if got.Signals != want {
		t.Fatalf("signals=%+v, want %+v", got.Signals, want)
	}
	if got.WordCount != 5 {
		t.Errorf("word count=%d, want 5", got.WordCount)
	}
	if got.UtteranceScore != 60 {
		t.Errorf("utterance score=%v, want 60", got.UtteranceScore)
	}
	if got.SessionScore != 60 {
		t.Errorf("session score=%v, want 60", got.SessionScore)
	}
	if got.Progress != 40 {
		t.Errorf("progress=%v, want 40", got.Progress)
	}
	if got.TimestampCount != 5 || got.DroppedSegments != 0 {
		t.Errorf("timestamps=%d dropped=%d, want 5 and 0", got.TimestampCount, got.DroppedSegments)
	}
}

func TestEvaluateRoundsBeforeObserving(t *testing.T) {
	// 1 signal over 3 words is 33.33...
	var session SessionScore
	got, err := Evaluate(Utterance{Text2: "go go to"}, &session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UtteranceScore != 33 {
		t.Fatalf("utterance score=%v, want 33", got.UtteranceScore)
	}
	if cur, _ := session.Current(); cur != 33 {
		t.Fatalf("session=%v, want 33", cur)
	}
}

func TestEvaluateEmptyTranscriptLeavesSession(t *testing.T) {
	var session SessionScore
	session.Observe(40)
	before := session.State()

	_, err := Evaluate(Utterance{Text1: "hello", Text2: ""}, &session)
	if !errors.Is(err, ErrEmptyTranscript) {
		t.Fatalf("err=%v, want ErrEmptyTranscript", err)
	}
	if session.State() != before {
		t.Fatalf("session mutated: %+v, want %+v", session.State(), before)
	}
}

func TestEvaluateWithoutTimestamps(t *testing.T) {
	var session SessionScore
	got, err := Evaluate(Utterance{Text2: "hello there", Annotation: "unparseable"}, &session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Signals.Pauses != 0 || got.TimestampCount != 0 || got.DroppedSegments != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestEvaluateNilSession(t *testing.T) {
	if _, err := Evaluate(Utterance{Text2: "hi"}, nil); err == nil {
		t.Fatal("expected error for nil session")
	}
}
