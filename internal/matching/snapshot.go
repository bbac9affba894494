package matching

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/records"
)

// SnapshotSchemaVersion tags every snapshot this package writes.
const SnapshotSchemaVersion = 1

// Snapshot is the serialized form of a fitted model. Vocabulary[i] is the
// term at vector position i and IDF[i] its weight.
type Snapshot struct {
	SchemaVersion int                  `json:"schema_version"`
	Stem          bool                 `json:"stem"`
	Vocabulary    []string             `json:"vocabulary"`
	IDF           []float64            `json:"idf"`
	Vectors       []Vector             `json:"vectors"`
	Internships   []records.Internship `json:"internships"`
}

// Snapshot captures the current state.
func (m *Model) Snapshot() (*Snapshot, error) {
	st, err := m.load()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Stem:          st.stem,
		Vocabulary:    append([]string(nil), st.terms...),
		IDF:           append([]float64(nil), st.idf...),
		Vectors:       make([]Vector, len(st.vectors)),
		Internships:   append([]records.Internship(nil), st.internships...),
	}
	for i, v := range st.vectors {
		snap.Vectors[i] = append(Vector(nil), v...)
	}
	return snap, nil
}

// Restore validates snap completely and only then replaces the current state.
func (m *Model) Restore(snap *Snapshot) error {
	st, err := stateFromSnapshot(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.current.Store(st)
	m.mu.Unlock()

	m.logger.Info("model restored",
		zap.Int("documents", len(st.internships)),
		zap.Int("vocabulary", len(st.terms)),
		zap.Bool("stem", st.stem),
	)
	return nil
}

func stateFromSnapshot(snap *Snapshot) (*state, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: snapshot is nil", ErrIncompatibleSnapshot)
	}
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, want %d", ErrIncompatibleSnapshot, snap.SchemaVersion, SnapshotSchemaVersion)
	}
	if len(snap.Vocabulary) == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrIncompatibleSnapshot)
	}
	if len(snap.Vocabulary) != len(snap.IDF) {
		return nil, fmt.Errorf("%w: %d terms but %d idf weights", ErrIncompatibleSnapshot, len(snap.Vocabulary), len(snap.IDF))
	}
	if len(snap.Internships) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", ErrIncompatibleSnapshot)
	}
	if len(snap.Vectors) != len(snap.Internships) {
		return nil, fmt.Errorf("%w: %d vectors but %d internships", ErrIncompatibleSnapshot, len(snap.Vectors), len(snap.Internships))
	}

	dim := len(snap.Vocabulary)
	st := &state{
		vocabulary:  make(map[string]int, dim),
		terms:       append([]string(nil), snap.Vocabulary...),
		idf:         append([]float64(nil), snap.IDF...),
		vectors:     make([]Vector, len(snap.Vectors)),
		internships: append([]records.Internship(nil), snap.Internships...),
		stem:        snap.Stem,
	}

	for i, term := range snap.Vocabulary {
		if _, dup := st.vocabulary[term]; dup {
			return nil, fmt.Errorf("%w: duplicate term %q", ErrIncompatibleSnapshot, term)
		}
		st.vocabulary[term] = i
		if w := snap.IDF[i]; !validWeight(w) {
			return nil, fmt.Errorf("%w: invalid idf %v for term %q", ErrIncompatibleSnapshot, w, term)
		}
	}

	for i, v := range snap.Vectors {
		prev := -1
		for _, e := range v {
			if e.Index <= prev || e.Index >= dim {
				return nil, fmt.Errorf("%w: vector %d has index %d out of order or range", ErrIncompatibleSnapshot, i, e.Index)
			}
			if !validWeight(e.Weight) {
				return nil, fmt.Errorf("%w: vector %d has invalid weight %v", ErrIncompatibleSnapshot, i, e.Weight)
			}
			prev = e.Index
		}
		st.vectors[i] = append(Vector(nil), v...)
	}

	return st, nil
}

func validWeight(w float64) bool {
	return w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w)
}

func EncodeSnapshot(w io.Writer, snap *Snapshot) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot and checks its schema version.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleSnapshot, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after snapshot", ErrIncompatibleSnapshot)
	}
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d, want %d", ErrIncompatibleSnapshot, snap.SchemaVersion, SnapshotSchemaVersion)
	}
	return &snap, nil
}
