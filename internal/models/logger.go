package models

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gorm_logger "gorm.io/gorm/logger"
)

// logger forwards gorm's log output to zerolog.
type logger struct {
	Logger zerolog.Logger
}

func (l *logger) LogMode(gorm_logger.LogLevel) gorm_logger.Interface {
	return l
}

func (l *logger) Info(_ context.Context, s string, args ...interface{}) {
	l.Logger.Info().Msgf(s, args...)
}

func (l *logger) Warn(_ context.Context, s string, args ...interface{}) {
	l.Logger.Warn().Msgf(s, args...)
}

func (l *logger) Error(_ context.Context, s string, args ...interface{}) {
	l.Logger.Error().Msgf(s, args...)
}

func (l *logger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, rows := fc()
	event := l.Logger.Debug()

	// Missing rows are an expected outcome for lookups and are reported
	// to the caller instead
	if err != nil && !errors.Is(err, ErrResourceNotFound) && !errors.Is(err, gorm_logger.ErrRecordNotFound) {
		event = l.Logger.Error().Err(err)
	}

	if id, ok := ctx.Value(ContextRequestID).(string); ok {
		event = event.Str("request-id", id)
	}

	event.
		Str("sql", sql).
		Int64("rows", rows).
		Dur("duration", time.Since(begin)).
		Msg("[GORM] query")
}
