package usecase

import (
	"context"
	"log/slog"

	"github.com/otpgate/otpgate/internal/pkg/goerror"
)

// Health reports liveness by pinging the database.
func (s *Usecase) Health(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Health")
	defer span.End()

	if err := s.repoDB.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to ping database", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
