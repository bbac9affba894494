package matching

import "errors"

var (
	// ErrEmptyCorpus is returned by Fit when no internship yields any text.
	ErrEmptyCorpus = errors.New("no valid internship text documents found for vectorization")
	// ErrModelNotFitted is returned by transform and ranking calls before any Fit or Restore.
	ErrModelNotFitted = errors.New("model is not fitted")
	// ErrIncompatibleSnapshot is returned when a snapshot has another schema version or is malformed.
	ErrIncompatibleSnapshot = errors.New("incompatible model snapshot")
)
