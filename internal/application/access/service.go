package access

import (
	"context"
	"fmt"
	"strings"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/agency"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/infrastructure/metrics"
	"github.com/agency/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default and upper bound for audit log pages
const (
	DefaultAuditLimit = 50
	MaxAuditLimit     = 500
)

// PermissionService reads and toggles sub-account access to sidebar options
type PermissionService struct {
	grants      access.GrantRepository
	auditLog    access.AuditLogRepository
	options     sidebar.OptionRepository
	subAccounts agency.SubAccountRepository
	publisher   shared.EventPublisher
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewPermissionService creates a new PermissionService
func NewPermissionService(
	grants access.GrantRepository,
	auditLog access.AuditLogRepository,
	options sidebar.OptionRepository,
	subAccounts agency.SubAccountRepository,
	publisher shared.EventPublisher,
	m *metrics.Metrics,
	l *zap.Logger,
) *PermissionService {
	if l == nil {
		l = zap.NewNop()
	}
	return &PermissionService{
		grants:      grants,
		auditLog:    auditLog,
		options:     options,
		subAccounts: subAccounts,
		publisher:   publisher,
		metrics:     m,
		logger:      l,
	}
}

// ListGrants returns the agency's grants of a permission set. A set owned
// by another agency lists as empty.
func (s *PermissionService) ListGrants(ctx context.Context, agencyID uuid.UUID, permissionSetID string) ([]GrantResponse, error) {
	if strings.TrimSpace(permissionSetID) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidArgument, "permission_set_id is required")
	}
	grants, err := s.grants.FindByPermissionSet(ctx, agencyID, permissionSetID)
	if err != nil {
		return nil, fmt.Errorf("load grants: %w", err)
	}
	return ToGrantResponses(grants), nil
}

// CheckAccess reports whether a sub-account may open an option.
// A missing grant means no access, and so does a set of another agency.
func (s *PermissionService) CheckAccess(ctx context.Context, agencyID uuid.UUID, permissionSetID, subAccountID, sidebarOptionID string) (*CheckAccessResponse, error) {
	if strings.TrimSpace(permissionSetID) == "" || strings.TrimSpace(subAccountID) == "" || strings.TrimSpace(sidebarOptionID) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidArgument,
			"permission_set_id, sub_account_id and sidebar_option_id are required")
	}
	grants, err := s.grants.FindByPermissionSet(ctx, agencyID, permissionSetID)
	if err != nil {
		return nil, fmt.Errorf("load grants: %w", err)
	}
	return &CheckAccessResponse{
		PermissionSetID: permissionSetID,
		SubAccountID:    subAccountID,
		SidebarOptionID: sidebarOptionID,
		Granted:         access.IsGranted(grants, subAccountID, sidebarOptionID),
	}, nil
}

// Toggle sets the access of a sub-account to an option and persists the
// change. The permission set, the sub-account and the option must all belong
// to agencyID; an unused set is claimed for it. PermissionToggled is
// published only after the grant is stored.
func (s *PermissionService) Toggle(ctx context.Context, agencyID uuid.UUID, req ToggleRequest) (resp *ToggleResponse, err error) {
	desired := req.Access != nil && *req.Access

	ctx, span := telemetry.StartServiceSpan(ctx, "permission", "toggle",
		telemetry.Agency(agencyID),
		telemetry.PermissionSet(req.PermissionSetID),
		telemetry.SubAccount(req.SubAccountID),
		telemetry.SidebarOption(req.SidebarOptionID),
		telemetry.AccessGranted(desired),
	)
	defer func() {
		telemetry.RecordError(span, err)
		s.metrics.IncToggle(desired, err)
		span.End()
	}()

	if req.Access == nil {
		return nil, shared.NewDomainError(shared.CodeInvalidArgument, "access is required")
	}
	if strings.TrimSpace(req.PermissionSetID) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidArgument, "permission_set_id is required")
	}

	grants, err := s.grants.FindByPermissionSet(ctx, agencyID, req.PermissionSetID)
	if err != nil {
		return nil, fmt.Errorf("load grants: %w", err)
	}

	updated, changed, err := access.ApplyToggle(grants, req.PermissionSetID, req.SubAccountID, req.SidebarOptionID, desired)
	if err != nil {
		return nil, err
	}

	if err := s.ensureSubAccount(ctx, agencyID, req.SubAccountID); err != nil {
		return nil, err
	}
	option, err := s.options.FindByID(ctx, agencyID, req.SidebarOptionID)
	if err != nil {
		return nil, err
	}

	if err := s.grants.ClaimPermissionSet(ctx, agencyID, req.PermissionSetID); err != nil {
		return nil, err
	}
	stored, err := s.grants.Upsert(ctx, agencyID, changed)
	if err != nil {
		return nil, fmt.Errorf("save grant: %w", err)
	}
	// a concurrent first toggle may have stored the triple under another id
	changed = stored
	updated = updated.Replace(stored)

	logger.WithLogger(ctx, s.logger).Info("permission toggled",
		zap.String("permission_set_id", changed.PermissionSetID),
		zap.String("sub_account_id", changed.SubAccountID),
		zap.String("sidebar_option_id", changed.SidebarOptionID),
		zap.Bool("access", changed.Access),
	)

	if s.publisher != nil {
		event := access.NewPermissionToggledEvent(agencyID, changed, option.Name)
		if err := s.publisher.Publish(ctx, event); err != nil {
			// the stored grant is authoritative; a lost event only costs an audit line
			logger.WithLogger(ctx, s.logger).Warn("failed to publish permission event",
				zap.String("event_id", event.EventID().String()),
				zap.Error(err))
		}
	}

	return &ToggleResponse{
		Grant:  ToGrantResponse(changed),
		Grants: ToGrantResponses(updated),
	}, nil
}

// ListAuditLog returns the newest audit entries of an agency.
// limit is clamped to [1, MaxAuditLimit]; zero means DefaultAuditLimit.
func (s *PermissionService) ListAuditLog(ctx context.Context, agencyID uuid.UUID, limit int) ([]AuditEntryResponse, error) {
	switch {
	case limit <= 0:
		limit = DefaultAuditLimit
	case limit > MaxAuditLimit:
		limit = MaxAuditLimit
	}
	entries, err := s.auditLog.FindRecent(ctx, agencyID, limit)
	if err != nil {
		return nil, fmt.Errorf("load audit log: %w", err)
	}
	return ToAuditEntryResponses(entries), nil
}

func (s *PermissionService) ensureSubAccount(ctx context.Context, agencyID uuid.UUID, subAccountID string) error {
	id, err := uuid.Parse(strings.TrimSpace(subAccountID))
	if err != nil {
		return shared.NewDomainError(shared.CodeInvalidArgument, "sub_account_id must be a UUID")
	}
	sub, err := s.subAccounts.FindByID(ctx, agencyID, id)
	if err != nil {
		return err
	}
	if !sub.BelongsTo(agencyID) {
		return shared.NewDomainError(shared.CodeNotFound, "Sub-account not found")
	}
	return nil
}
