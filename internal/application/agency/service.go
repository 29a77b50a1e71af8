package agency

import (
	"context"
	"fmt"

	"github.com/agency/backend/internal/domain/agency"
	"github.com/agency/backend/internal/domain/shared"
	"github.com/agency/backend/internal/domain/sidebar"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AgencyService manages agencies and their sub-accounts
type AgencyService struct {
	agencies    agency.AgencyRepository
	subAccounts agency.SubAccountRepository
	options     sidebar.OptionRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewAgencyService creates a new AgencyService
func NewAgencyService(
	agencies agency.AgencyRepository,
	subAccounts agency.SubAccountRepository,
	options sidebar.OptionRepository,
	publisher shared.EventPublisher,
	l *zap.Logger,
) *AgencyService {
	if l == nil {
		l = zap.NewNop()
	}
	return &AgencyService{
		agencies:    agencies,
		subAccounts: subAccounts,
		options:     options,
		publisher:   publisher,
		logger:      l,
	}
}

// RegisterAgency creates an agency and gives it the stock sidebar
func (s *AgencyService) RegisterAgency(ctx context.Context, req RegisterAgencyRequest) (*AgencyResponse, error) {
	a, err := agency.NewAgency(req.Name, req.CompanyEmail)
	if err != nil {
		return nil, err
	}
	a.SetContact(req.CompanyPhone, req.Address, req.City, req.Country)

	if err := s.agencies.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("save agency: %w", err)
	}

	for _, opt := range sidebar.DefaultOptions() {
		if err := s.options.Save(ctx, a.ID, opt); err != nil {
			return nil, fmt.Errorf("seed sidebar option %q: %w", opt.Name, err)
		}
	}

	s.publish(ctx, a.PullEvents())

	logger.WithLogger(ctx, s.logger).Info("agency registered",
		zap.String("agency_id", a.ID.String()),
		zap.String("name", a.Name))

	return ToAgencyResponse(a), nil
}

// GetAgency returns an agency by id
func (s *AgencyService) GetAgency(ctx context.Context, agencyID uuid.UUID) (*AgencyResponse, error) {
	a, err := s.agencies.FindByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}
	return ToAgencyResponse(a), nil
}

// CreateSubAccount adds a sub-account to an existing agency
func (s *AgencyService) CreateSubAccount(ctx context.Context, agencyID uuid.UUID, req CreateSubAccountRequest) (*SubAccountResponse, error) {
	if _, err := s.agencies.FindByID(ctx, agencyID); err != nil {
		return nil, err
	}

	sub, err := agency.NewSubAccount(agencyID, req.Name, req.CompanyEmail)
	if err != nil {
		return nil, err
	}
	sub.CompanyPhone = req.CompanyPhone
	sub.Address = req.Address
	sub.City = req.City
	sub.Country = req.Country

	if err := s.subAccounts.Save(ctx, sub); err != nil {
		return nil, fmt.Errorf("save sub-account: %w", err)
	}

	s.publish(ctx, sub.PullEvents())

	resp := ToSubAccountResponse(sub)
	return &resp, nil
}

// ListSubAccounts returns the sub-accounts of an agency ordered by name
func (s *AgencyService) ListSubAccounts(ctx context.Context, agencyID uuid.UUID) ([]SubAccountResponse, error) {
	subs, err := s.subAccounts.FindAllForAgency(ctx, agencyID)
	if err != nil {
		return nil, fmt.Errorf("list sub-accounts: %w", err)
	}
	out := make([]SubAccountResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, ToSubAccountResponse(sub))
	}
	return out, nil
}

func (s *AgencyService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		logger.WithLogger(ctx, s.logger).Warn("failed to publish agency events", zap.Error(err))
	}
}
