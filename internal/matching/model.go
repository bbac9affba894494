package matching

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/spigell/intern-matcher/internal/records"
	"github.com/spigell/intern-matcher/internal/util"
)

const (
	samplePreviewDocs = 3
	samplePreviewLen  = 120
)

// Model is a TF-IDF vector space fit on the internship corpus.
//
// Fit and Restore build a complete state and publish it with a single pointer
// swap. Readers load the pointer once per call and never see a partial rebuild.
type Model struct {
	logger *zap.Logger
	stem   bool

	// serializes writers; readers never take it
	mu      sync.Mutex
	current atomic.Pointer[state]
}

// FitReport summarizes a Fit call.
type FitReport struct {
	Initial    int
	Skipped    int
	Fitted     int
	Vocabulary int
}

type Option func(*Model)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStemming enables English stemming for subsequent fits.
func WithStemming(stem bool) Option {
	return func(m *Model) {
		m.stem = stem
	}
}

func NewModel(opts ...Option) *Model {
	m := &Model{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// state is immutable once published.
type state struct {
	vocabulary  map[string]int
	terms       []string
	idf         []float64
	vectors     []Vector
	internships []records.Internship
	stem        bool
}

// Fit rebuilds the vocabulary and all corpus vectors from internships.
// Internships with blank text or missing required fields are skipped and
// absent from ranking. The previous state survives any error.
func (m *Model) Fit(internships []records.Internship) (FitReport, error) {
	report := FitReport{Initial: len(internships)}

	kept := make([]records.Internship, 0, len(internships))
	docs := make([][]string, 0, len(internships))
	texts := make([]string, 0, len(internships))

	for _, in := range internships {
		text := in.CorpusText()
		if text == "" {
			m.logger.Warn("skipping internship with empty text",
				zap.Int64("internship_id", in.InternshipID),
				zap.String("reason", "empty text"),
			)
			report.Skipped++
			continue
		}

		if err := in.Validate(); err != nil {
			m.logger.Warn("skipping internship with missing field",
				zap.Int64("internship_id", in.InternshipID),
				zap.String("reason", err.Error()),
			)
			report.Skipped++
			continue
		}

		tokens, err := tokenize(text, m.stem)
		if err != nil {
			return report, fmt.Errorf("tokenize internship %d: %w", in.InternshipID, err)
		}

		kept = append(kept, in)
		docs = append(docs, tokens)
		texts = append(texts, text)
	}

	if len(docs) == 0 {
		return report, ErrEmptyCorpus
	}

	st := buildState(docs, kept, m.stem)
	if len(st.terms) == 0 {
		return report, fmt.Errorf("%w: corpus has no terms", ErrEmptyCorpus)
	}

	report.Fitted = len(kept)
	report.Vocabulary = len(st.terms)

	m.mu.Lock()
	m.current.Store(st)
	m.mu.Unlock()

	m.logger.Debug("sample texts for vectorizer", zap.Strings("samples", util.PreviewList(texts, samplePreviewDocs, samplePreviewLen)))
	m.logger.Info("model fitted",
		zap.Int("initial", report.Initial),
		zap.Int("skipped", report.Skipped),
		zap.Int("fitted", report.Fitted),
		zap.Int("vocabulary", report.Vocabulary),
	)

	return report, nil
}

func buildState(docs [][]string, internships []records.Internship, stem bool) *state {
	docFreq := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				docFreq[t]++
				seen[t] = true
			}
		}
	}

	terms := make([]string, 0, len(docFreq))
	for t := range docFreq {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	st := &state{
		vocabulary:  make(map[string]int, len(terms)),
		terms:       terms,
		idf:         make([]float64, len(terms)),
		vectors:     make([]Vector, len(docs)),
		internships: internships,
		stem:        stem,
	}

	n := float64(len(docs))
	for i, t := range terms {
		st.vocabulary[t] = i
		st.idf[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}

	for i, tokens := range docs {
		st.vectors[i] = st.vectorize(tokens)
	}

	return st
}

// vectorize weighs raw term counts by idf and L2-normalizes. Terms outside the
// vocabulary are ignored.
func (st *state) vectorize(tokens []string) Vector {
	counts := make(map[int]float64, len(tokens))
	for _, t := range tokens {
		if idx, ok := st.vocabulary[t]; ok {
			counts[idx]++
		}
	}
	for idx := range counts {
		counts[idx] *= st.idf[idx]
	}
	return newVector(counts).normalize()
}

func (st *state) transform(text string) (Vector, error) {
	tokens, err := tokenize(text, st.stem)
	if err != nil {
		return nil, err
	}
	return st.vectorize(tokens), nil
}

func (m *Model) load() (*state, error) {
	st := m.current.Load()
	if st == nil {
		return nil, ErrModelNotFitted
	}
	return st, nil
}

// Transform projects text into the fitted vocabulary.
func (m *Model) Transform(text string) (Vector, error) {
	st, err := m.load()
	if err != nil {
		return nil, err
	}
	return st.transform(text)
}

func (m *Model) Fitted() bool {
	return m.current.Load() != nil
}

// Len returns the number of fitted corpus documents.
func (m *Model) Len() int {
	if st := m.current.Load(); st != nil {
		return len(st.internships)
	}
	return 0
}

func (m *Model) VocabularySize() int {
	if st := m.current.Load(); st != nil {
		return len(st.terms)
	}
	return 0
}

// Internships returns a copy of the fitted corpus records in corpus order.
func (m *Model) Internships() []records.Internship {
	st := m.current.Load()
	if st == nil {
		return nil
	}
	out := make([]records.Internship, len(st.internships))
	copy(out, st.internships)
	return out
}
