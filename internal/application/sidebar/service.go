package sidebar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agency/backend/internal/domain/access"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/infrastructure/metrics"
	"github.com/agency/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Tree views recorded in metrics
const (
	viewFull    = "full"
	viewGrouped = "grouped"
	viewVisible = "visible"
)

// SidebarService serves the sidebar of an agency and manages its options
type SidebarService struct {
	options     sidebar.OptionRepository
	grants      access.GrantRepository
	cache       sidebar.OptionCache
	categorizer *sidebar.Categorizer
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// Option configures a SidebarService
type Option func(*SidebarService)

// WithCache puts a cache in front of the option repository
func WithCache(cache sidebar.OptionCache) Option {
	return func(s *SidebarService) {
		s.cache = cache
	}
}

// WithCategorizer replaces the built-in category table
func WithCategorizer(c *sidebar.Categorizer) Option {
	return func(s *SidebarService) {
		s.categorizer = c
	}
}

// WithMetrics records tree builds and cache lookups
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SidebarService) {
		s.metrics = m
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) Option {
	return func(s *SidebarService) {
		s.logger = l
	}
}

// NewSidebarService creates a new SidebarService
func NewSidebarService(options sidebar.OptionRepository, grants access.GrantRepository, opts ...Option) *SidebarService {
	s := &SidebarService{
		options:     options,
		grants:      grants,
		categorizer: sidebar.DefaultCategorizer(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTree returns the full sidebar of an agency
func (s *SidebarService) GetTree(ctx context.Context, agencyID uuid.UUID) ([]MenuNodeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sidebar", "get_tree", telemetry.Agency(agencyID))
	defer span.End()

	options, err := s.loadOptions(ctx, agencyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	tree := s.build(viewFull, options)
	span.SetAttributes(telemetry.NodeCount(len(options)))
	return ToMenuNodeResponses(tree), nil
}

// GetGrouped returns the top-level entries of the sidebar in category
// sections. Each entry keeps its subtree.
func (s *SidebarService) GetGrouped(ctx context.Context, agencyID uuid.UUID) ([]CategoryGroupResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sidebar", "get_grouped", telemetry.Agency(agencyID))
	defer span.End()

	options, err := s.loadOptions(ctx, agencyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	tree := s.build(viewGrouped, options)

	// ids can repeat in the input, so nodes are queued per id
	byID := make(map[string][]*sidebar.MenuNode, len(tree))
	roots := make([]sidebar.MenuOption, 0, len(tree))
	for _, node := range tree {
		byID[node.Option.ID] = append(byID[node.Option.ID], node)
		roots = append(roots, node.Option)
	}

	groups := s.categorizer.Group(roots)
	out := make([]CategoryGroupResponse, 0, len(groups))
	for _, group := range groups {
		nodes := make([]*sidebar.MenuNode, 0, len(group.Options))
		for _, opt := range group.Options {
			queue := byID[opt.ID]
			nodes = append(nodes, queue[0])
			byID[opt.ID] = queue[1:]
		}
		out = append(out, CategoryGroupResponse{
			Name:    group.Name,
			Options: ToMenuNodeResponses(nodes),
		})
	}
	return out, nil
}

// GetVisibleTree returns the sidebar as a sub-account sees it under a
// permission set. Options without a granting entry are hidden together
// with their subtree.
func (s *SidebarService) GetVisibleTree(ctx context.Context, agencyID uuid.UUID, permissionSetID, subAccountID string) ([]MenuNodeResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sidebar", "get_visible_tree",
		telemetry.Agency(agencyID),
		telemetry.PermissionSet(permissionSetID),
		telemetry.SubAccount(subAccountID),
	)
	defer span.End()

	if strings.TrimSpace(permissionSetID) == "" || strings.TrimSpace(subAccountID) == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidArgument, "permission_set_id and sub_account_id are required")
	}

	options, err := s.loadOptions(ctx, agencyID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	grants, err := s.grants.FindByPermissionSet(ctx, agencyID, permissionSetID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("load grants: %w", err)
	}
	granted := grants.GrantedOptions(subAccountID)

	start := time.Now()
	tree := sidebar.Prune(sidebar.BuildTree(options), func(o sidebar.MenuOption) bool {
		return granted[o.ID]
	})
	s.metrics.ObserveTreeBuild(viewVisible, sidebar.Count(tree), time.Since(start))

	return ToMenuNodeResponses(tree), nil
}

// CreateOption adds an option to the agency sidebar
func (s *SidebarService) CreateOption(ctx context.Context, agencyID uuid.UUID, req CreateOptionRequest) (*OptionResponse, error) {
	parentID := normalizeParent(req.ParentID)
	if parentID != nil {
		if err := s.ensureParent(ctx, agencyID, "", *parentID); err != nil {
			return nil, err
		}
	}

	option, err := sidebar.NewMenuOption(req.Name, req.Link, req.Icon, req.Order, parentID)
	if err != nil {
		return nil, err
	}

	if err := s.options.Save(ctx, agencyID, option); err != nil {
		return nil, fmt.Errorf("save sidebar option: %w", err)
	}
	s.invalidate(ctx, agencyID)

	resp := ToOptionResponse(*option)
	return &resp, nil
}

// UpdateOption changes an option, including moving it under another parent
func (s *SidebarService) UpdateOption(ctx context.Context, agencyID uuid.UUID, id string, req UpdateOptionRequest) (*OptionResponse, error) {
	option, err := s.options.FindByID(ctx, agencyID, id)
	if err != nil {
		return nil, err
	}

	if err := option.Update(req.Name, req.Link, req.Icon, req.Order); err != nil {
		return nil, err
	}

	parentID := normalizeParent(req.ParentID)
	if parentID != nil && *parentID != id {
		if err := s.ensureParent(ctx, agencyID, id, *parentID); err != nil {
			return nil, err
		}
	}
	if err := option.SetParent(parentID); err != nil {
		return nil, err
	}

	if err := s.options.Save(ctx, agencyID, option); err != nil {
		return nil, fmt.Errorf("save sidebar option: %w", err)
	}
	s.invalidate(ctx, agencyID)

	resp := ToOptionResponse(*option)
	return &resp, nil
}

// DeleteOption removes an option. Its children move to the top level and
// its grants are removed by the store.
func (s *SidebarService) DeleteOption(ctx context.Context, agencyID uuid.UUID, id string) error {
	if _, err := s.options.FindByID(ctx, agencyID, id); err != nil {
		return err
	}
	if err := s.options.Delete(ctx, agencyID, id); err != nil {
		return fmt.Errorf("delete sidebar option: %w", err)
	}
	s.invalidate(ctx, agencyID)
	return nil
}

// ensureParent checks that parentID is an option of the agency and that
// placing optionID under it keeps the parent chain acyclic.
func (s *SidebarService) ensureParent(ctx context.Context, agencyID uuid.UUID, optionID, parentID string) error {
	options, err := s.options.FindByAgency(ctx, agencyID)
	if err != nil {
		return fmt.Errorf("load sidebar options: %w", err)
	}

	parents := make(map[string]*string, len(options))
	for _, o := range options {
		parents[o.ID] = o.ParentID
	}
	if _, ok := parents[parentID]; !ok {
		return shared.NewDomainError(shared.CodeInvalidInput, "Parent option not found")
	}
	if optionID == "" {
		return nil
	}

	seen := make(map[string]bool)
	for cur := parentID; ; {
		if cur == optionID {
			return shared.NewDomainError(shared.CodeInvalidInput, "Parent option is a descendant of this option")
		}
		if seen[cur] {
			// existing cycle that does not involve optionID
			return nil
		}
		seen[cur] = true
		next, ok := parents[cur]
		if !ok || next == nil {
			return nil
		}
		cur = *next
	}
}

// loadOptions reads through the cache. Cache failures are logged and
// fall back to the repository.
func (s *SidebarService) loadOptions(ctx context.Context, agencyID uuid.UUID) ([]sidebar.MenuOption, error) {
	if s.cache != nil {
		options, found, err := s.cache.Get(ctx, agencyID)
		if err != nil {
			logger.WithLogger(ctx, s.logger).Warn("sidebar cache read failed", zap.Error(err))
		} else {
			s.metrics.IncCacheLookup(found)
			if found {
				return options, nil
			}
		}
	}

	options, err := s.options.FindByAgency(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("load sidebar options: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, agencyID, options); err != nil {
			logger.WithLogger(ctx, s.logger).Warn("sidebar cache write failed", zap.Error(err))
		}
	}
	return options, nil
}

func (s *SidebarService) build(view string, options []sidebar.MenuOption) []*sidebar.MenuNode {
	start := time.Now()
	tree := sidebar.BuildTree(options)
	s.metrics.ObserveTreeBuild(view, len(options), time.Since(start))
	return tree
}

func (s *SidebarService) invalidate(ctx context.Context, agencyID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, agencyID); err != nil {
		logger.WithLogger(ctx, s.logger).Error("sidebar cache invalidation failed",
			zap.String("agency_id", agencyID.String()),
			zap.Error(err))
	}
}

func normalizeParent(parentID *string) *string {
	if parentID == nil {
		return nil
	}
	pid := strings.TrimSpace(*parentID)
	if pid == "" {
		return nil
	}
	return &pid
}
