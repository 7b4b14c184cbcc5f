package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/transaction_processor/internal/middleware"
)

// BaseService gives services the request-scoped logger placed in ctx by the HTTP middleware.
type BaseService struct{}

// GetLogger returns the request logger, or the default logger outside a request.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

func (s *BaseService) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	s.GetLogger(ctx).LogAttrs(ctx, level, msg, attrs...)
}

// LogError logs msg at error level with err as the first attribute.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, attrs ...slog.Attr) {
	s.log(ctx, slog.LevelError, msg, append([]slog.Attr{slog.String("error", err.Error())}, attrs...))
}

func (s *BaseService) LogWarn(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.log(ctx, slog.LevelWarn, msg, attrs)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.log(ctx, slog.LevelInfo, msg, attrs)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, attrs ...slog.Attr) {
	s.log(ctx, slog.LevelDebug, msg, attrs)
}
