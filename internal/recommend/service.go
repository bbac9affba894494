package recommend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/intern-matcher/internal/matching"
	"github.com/spigell/intern-matcher/internal/persist"
	"github.com/spigell/intern-matcher/internal/records"
)

// DefaultTopN is used when a caller asks for zero or fewer results.
const DefaultTopN = 5

// Store is the storage the service reads records from. The matching core never sees it.
type Store interface {
	ListInternships(ctx context.Context) ([]records.Internship, error)
	ListStudents(ctx context.Context) ([]records.Student, error)
	GetInternship(ctx context.Context, id int64) (records.Internship, error)
	GetStudent(ctx context.Context, id int64) (records.Student, error)
	UpsertInternship(ctx context.Context, in records.Internship) error
	UpsertStudent(ctx context.Context, s records.Student) error
}

type Config struct {
	// SnapshotPath is where the fitted model is saved. Empty disables persistence.
	SnapshotPath string
	TopN         int
}

// Service keeps the model in sync with the internship corpus and answers
// ranking requests against it.
type Service struct {
	store  Store
	model  *matching.Model
	ranker *matching.Ranker
	logger *zap.Logger
	cfg    Config

	// serializes fit-then-save so concurrent refreshes cannot interleave
	refitMu sync.Mutex
}

func New(store Store, model *matching.Model, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	return &Service{
		store:  store,
		model:  model,
		ranker: matching.NewRanker(model, logger),
		logger: logger,
		cfg:    cfg,
	}
}

// Refresh refits the model on the complete current internship corpus and
// saves a snapshot.
func (s *Service) Refresh(ctx context.Context) (matching.FitReport, error) {
	s.refitMu.Lock()
	defer s.refitMu.Unlock()

	internships, err := s.store.ListInternships(ctx)
	if err != nil {
		return matching.FitReport{}, fmt.Errorf("load internships: %w", err)
	}

	report, err := s.model.Fit(internships)
	if err != nil {
		return report, fmt.Errorf("fit model: %w", err)
	}

	if err := s.save(); err != nil {
		return report, err
	}
	return report, nil
}

// Load restores the saved snapshot, refitting from storage when the file is
// missing or incompatible.
func (s *Service) Load(ctx context.Context) error {
	if s.cfg.SnapshotPath == "" {
		_, err := s.Refresh(ctx)
		return err
	}

	if !persist.Exists(s.cfg.SnapshotPath) {
		s.logger.Info("snapshot not found, fitting from storage", zap.String("path", s.cfg.SnapshotPath))
		_, err := s.Refresh(ctx)
		return err
	}

	err := s.restore()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, matching.ErrIncompatibleSnapshot):
		s.logger.Warn("snapshot is incompatible, fitting from storage",
			zap.String("path", s.cfg.SnapshotPath),
			zap.Error(err),
		)
	default:
		return fmt.Errorf("load snapshot: %w", err)
	}

	_, err = s.Refresh(ctx)
	return err
}

// restore holds refitMu so a snapshot read before a concurrent Refresh cannot
// replace the newer fit.
func (s *Service) restore() error {
	s.refitMu.Lock()
	defer s.refitMu.Unlock()

	var snap *matching.Snapshot
	err := persist.Load(s.cfg.SnapshotPath, func(r io.Reader) error {
		var err error
		snap, err = matching.DecodeSnapshot(r)
		return err
	})
	if err != nil {
		return err
	}
	return s.model.Restore(snap)
}

func (s *Service) save() error {
	if s.cfg.SnapshotPath == "" {
		return nil
	}

	snap, err := s.model.Snapshot()
	if err != nil {
		return err
	}

	err = persist.SaveAtomic(s.cfg.SnapshotPath, func(w io.Writer) error {
		return matching.EncodeSnapshot(w, snap)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.logger.Debug("snapshot saved", zap.String("path", s.cfg.SnapshotPath))
	return nil
}

// AddInternship stores the internship and refits, since every corpus change
// requires a full rebuild.
func (s *Service) AddInternship(ctx context.Context, in records.Internship) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.store.UpsertInternship(ctx, in); err != nil {
		return err
	}
	_, err := s.Refresh(ctx)
	return err
}

// AddStudent stores the student. Students are never part of the corpus.
func (s *Service) AddStudent(ctx context.Context, st records.Student) error {
	if err := st.Validate(); err != nil {
		return err
	}
	return s.store.UpsertStudent(ctx, st)
}

// RecommendInternships ranks the fitted internships for a stored student.
func (s *Service) RecommendInternships(ctx context.Context, studentID int64, topN int) ([]records.Internship, error) {
	student, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	recommended, err := s.ranker.RankInternshipsForStudent(student, s.topN(topN))
	if err != nil {
		return nil, fmt.Errorf("recommend internships for student %d: %w", studentID, err)
	}
	return recommended, nil
}

// MatchCandidates ranks every stored student for a stored internship.
func (s *Service) MatchCandidates(ctx context.Context, internshipID int64, topN int) ([]records.Student, error) {
	var (
		internship records.Internship
		pool       []records.Student
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		internship, err = s.store.GetInternship(gctx, internshipID)
		return err
	})
	g.Go(func() error {
		var err error
		pool, err = s.store.ListStudents(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matched, err := s.ranker.RankStudentsForInternship(internship, pool, s.topN(topN))
	if err != nil {
		return nil, fmt.Errorf("match candidates for internship %d: %w", internshipID, err)
	}
	return matched, nil
}

// Students lists stored students, for interactive selection.
func (s *Service) Students(ctx context.Context) ([]records.Student, error) {
	return s.store.ListStudents(ctx)
}

// Internships lists stored internships, for interactive selection.
func (s *Service) Internships(ctx context.Context) ([]records.Internship, error) {
	return s.store.ListInternships(ctx)
}

func (s *Service) topN(n int) int {
	if n <= 0 {
		return s.cfg.TopN
	}
	return n
}
