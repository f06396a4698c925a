package fluency

import (
	"reflect"
	"testing"
)

func TestParseTimestamps(t *testing.T) {
	tests := []struct {
		name       string
		annotation string
		want       []TimestampedWord
		dropped    int
	}{
		{
			name:       "empty",
			annotation: "",
			want:       []TimestampedWord{},
		},
		{
			name:       "single",
			annotation: "go: 0.00s - 0.20s",
			want:       []TimestampedWord{{Text: "go", Start: 0, End: 0.2}},
		},
		{
			name:       "keeps appearance order",
			annotation: "b: 1.00s - 1.20s | a: 0.00s - 0.20s",
			want: []TimestampedWord{
				{Text: "b", Start: 1, End: 1.2},
				{Text: "a", Start: 0, End: 0.2},
			},
		},
		{
			name:       "skips malformed segments",
			annotation: "go: 0.00s - 0.20s | garbage | to: 0.46s - 0.60s | the: x - 0.75s",
			want: []TimestampedWord{
				{Text: "go", Start: 0, End: 0.2},
				{Text: "to", Start: 0.46, End: 0.6},
			},
			dropped: 2,
		},
		{
			name:       "fully malformed",
			annotation: "nothing here | at all",
			want:       []TimestampedWord{},
			dropped:    2,
		},
		{
			name:       "end before start",
			annotation: "go: 0.50s - 0.20s",
			want:       []TimestampedWord{},
			dropped:    1,
		},
		{
			name:       "blank segments are ignored",
			annotation: "go: 0.00s - 0.20s |  | ",
			want:       []TimestampedWord{{Text: "go", Start: 0, End: 0.2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamps(tt.annotation)
			if !reflect.DeepEqual(got.Words, tt.want) {
				t.Fatalf("words=%+v, want %+v", got.Words, tt.want)
			}
			if got.Dropped != tt.dropped {
				t.Fatalf("dropped=%d, want %d", got.Dropped, tt.dropped)
			}
		})
	}
}

func TestParseTimestampsIsIdempotent(t *testing.T) {
	annotation := "go: 0.00s - 0.20s | go: 0.25s - 0.45s | bad | to: 0.46s - 0.60s"
	first := ParseTimestamps(annotation)
	second := ParseTimestamps(annotation)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse not idempotent: %+v vs %+v", first, second)
	}
}
