package matching

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/intern-matcher/internal/records"
)

func TestSnapshotRoundTrip(t *testing.T) {
	corpus := []records.Internship{
		internship(1, "Data Analyst", "python", "sql"),
		internship(2, "UX Designer", "figma"),
		internship(3, "Data Engineer", "python", "spark"),
	}
	m := fittedModel(t, corpus...)

	snap, err := m.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	restored := NewModel()
	if err := restored.Restore(decoded); err != nil {
		t.Fatalf("restore: %v", err)
	}

	query := student(10, "spark jobs", "python")
	want, err := NewRanker(m, nil).ScoreInternshipsForStudent(query)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	got, err := NewRanker(restored, nil).ScoreInternshipsForStudent(query)
	if err != nil {
		t.Fatalf("rank restored: %v", err)
	}

	for i := range want {
		if want[i].Item.InternshipID != got[i].Item.InternshipID || want[i].Score != got[i].Score {
			t.Fatalf("position %d differs: %+v vs %+v", i, want[i], got[i])
		}
	}
}

func TestSnapshotBeforeFit(t *testing.T) {
	if _, err := NewModel().Snapshot(); !errors.Is(err, ErrModelNotFitted) {
		t.Fatalf("expected ErrModelNotFitted, got %v", err)
	}
}

func TestRestoreRejectsIncompatibleSnapshots(t *testing.T) {
	valid := func(t *testing.T) *Snapshot {
		snap, err := fittedModel(t, internship(1, "Data Analyst", "python"), internship(2, "Designer", "figma")).Snapshot()
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		return snap
	}

	cases := []struct {
		name   string
		mutate func(s *Snapshot) *Snapshot
	}{
		{name: "nil", mutate: func(*Snapshot) *Snapshot { return nil }},
		{name: "version", mutate: func(s *Snapshot) *Snapshot { s.SchemaVersion = 2; return s }},
		{name: "idf length", mutate: func(s *Snapshot) *Snapshot { s.IDF = s.IDF[1:]; return s }},
		{name: "vector count", mutate: func(s *Snapshot) *Snapshot { s.Vectors = s.Vectors[:1]; return s }},
		{name: "duplicate term", mutate: func(s *Snapshot) *Snapshot { s.Vocabulary[1] = s.Vocabulary[0]; return s }},
		{name: "index out of range", mutate: func(s *Snapshot) *Snapshot {
			s.Vectors[0] = Vector{{Index: len(s.Vocabulary), Weight: 1}}
			return s
		}},
		{name: "unsorted vector", mutate: func(s *Snapshot) *Snapshot {
			s.Vectors[0] = Vector{{Index: 1, Weight: 0.5}, {Index: 0, Weight: 0.5}}
			return s
		}},
		{name: "negative weight", mutate: func(s *Snapshot) *Snapshot {
			s.Vectors[0] = Vector{{Index: 0, Weight: -1}}
			return s
		}},
		{name: "empty corpus", mutate: func(s *Snapshot) *Snapshot {
			s.Vectors, s.Internships = nil, nil
			return s
		}},
		{name: "empty vocabulary", mutate: func(s *Snapshot) *Snapshot {
			s.Vocabulary, s.IDF = nil, nil
			return s
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := fittedModel(t, internship(9, "Backend Developer", "go"))

			err := m.Restore(tc.mutate(valid(t)))
			if !errors.Is(err, ErrIncompatibleSnapshot) {
				t.Fatalf("expected ErrIncompatibleSnapshot, got %v", err)
			}
			if got := ids(m.Internships()); len(got) != 1 || got[0] != 9 {
				t.Fatalf("state changed after failed restore: %v", got)
			}
		})
	}
}

func TestDecodeSnapshotAllowsTrailingWhitespace(t *testing.T) {
	snap, err := fittedModel(t, internship(1, "Data Analyst", "python")).Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, snap); err != nil {
		t.Fatalf("encode: %v", err)
	}
	buf.WriteString("\n\n")

	if _, err := DecodeSnapshot(&buf); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestRestoreOnUnfitModelStaysUnfitOnError(t *testing.T) {
	m := NewModel()
	if err := m.Restore(&Snapshot{SchemaVersion: 7}); !errors.Is(err, ErrIncompatibleSnapshot) {
		t.Fatalf("expected ErrIncompatibleSnapshot, got %v", err)
	}
	if m.Fitted() {
		t.Fatalf("model must stay unfit")
	}
}

func TestDecodeSnapshotErrors(t *testing.T) {
	cases := map[string]string{
		"garbage":       "not json",
		"version":       `{"schema_version": 0}`,
		"unknown field": `{"schema_version": 1, "vectorizer": "pickled"}`,
	}

	valid, err := fittedModel(t, internship(1, "Data Analyst", "python")).Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, valid); err != nil {
		t.Fatalf("encode: %v", err)
	}
	cases["trailing data"] = buf.String() + "{garbage"

	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeSnapshot(strings.NewReader(input)); !errors.Is(err, ErrIncompatibleSnapshot) {
				t.Fatalf("expected ErrIncompatibleSnapshot, got %v", err)
			}
		})
	}
}
