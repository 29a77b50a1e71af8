package access

import (
	"context"
	"fmt"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/infrastructure/metrics"
	"go.uber.org/zap"
)

// AuditTrailHandler writes an activity line for every permission toggle
type AuditTrailHandler struct {
	repo    access.AuditLogRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewAuditTrailHandler creates a new AuditTrailHandler
func NewAuditTrailHandler(repo access.AuditLogRepository, m *metrics.Metrics, l *zap.Logger) *AuditTrailHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditTrailHandler{repo: repo, metrics: m, logger: l}
}

// EventTypes returns the event types this handler is interested in
func (h *AuditTrailHandler) EventTypes() []string {
	return []string{access.EventTypePermissionToggled}
}

// Handle appends the audit entry for a PermissionToggledEvent
func (h *AuditTrailHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	toggled, ok := event.(*access.PermissionToggledEvent)
	if !ok {
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			access.EventTypePermissionToggled, event.EventType())
	}

	entry := access.NewToggleAuditEntry(toggled)
	if err := h.repo.Append(ctx, entry); err != nil {
		h.metrics.IncAuditFailure()
		return fmt.Errorf("append audit entry: %w", err)
	}

	logger.WithLogger(ctx, h.logger).Debug("audit entry written",
		zap.String("audit_id", entry.ID.String()),
		zap.String("event_id", event.EventID().String()))
	return nil
}

var _ shared.EventHandler = (*AuditTrailHandler)(nil)
