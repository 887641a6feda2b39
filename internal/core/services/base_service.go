package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/splitbalance/internal/apperrors"
	"github.com/SscSPs/splitbalance/internal/core/domain"
	portssvc "github.com/SscSPs/splitbalance/internal/core/ports/services"
	"github.com/SscSPs/splitbalance/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	GroupAuthorizer portssvc.GroupAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeMember returns the group if userID belongs to it.
// Without an authorizer every request is denied.
func (s *BaseService) AuthorizeMember(ctx context.Context, groupID, userID string) (*domain.Group, error) {
	if s.GroupAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrForbidden, "No group authorizer configured, denying access",
			slog.String("user_id", userID),
			slog.String("group_id", groupID))
		return nil, apperrors.ErrForbidden
	}
	return s.GroupAuthorizer.AuthorizeMember(ctx, groupID, userID)
}
