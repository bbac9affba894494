package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldComponent names the subsystem emitting the entry.
	FieldComponent = "component"
	// FieldSnapshot is the snapshot file path.
	FieldSnapshot = "snapshot"
	// FieldDatabase is the storage file path.
	FieldDatabase = "database"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger, falling back to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// WithComponent tags the logger with a component name plus the storage and
// snapshot paths it works against. Empty values are dropped.
func WithComponent(logger *zap.Logger, component, database, snapshot string) *zap.Logger {
	fields := StringFields(
		StringField{Key: FieldComponent, Value: component},
		StringField{Key: FieldDatabase, Value: database},
		StringField{Key: FieldSnapshot, Value: snapshot},
	)
	return WithFields(logger, fields...)
}
