package services

import (
	"errors"
	"fmt"
	"strings"

	"lumiere/internal/domain"
	"lumiere/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrBelowMinimum      = errors.New("requested amount is below the minimum payout")
	ErrInsufficientFunds = errors.New("requested amount exceeds available balance")
	ErrNotEnrolled       = errors.New("no referral profile for this user")
)

type ReferralService struct {
	Agents   *repos.AgentRepo
	Settings *repos.SettingsRepo
}

func NewReferralService(agents *repos.AgentRepo, settings *repos.SettingsRepo) *ReferralService {
	return &ReferralService{Agents: agents, Settings: settings}
}

// Commission computes amount x pct / 100. Called once when the sale is
// recorded; the result is stored so later rate changes never rewrite
// historical sales.
func Commission(saleAmount int64, pct float64) float64 {
	return float64(saleAmount) * pct / 100
}

// RecordSale snapshots the commission rate in effect right now. A zero pct
// falls back to the site-wide default rate.
func (s *ReferralService) RecordSale(agentID string, prop domain.Property, saleAmount int64, pct float64) (domain.AgentSale, error) {
	if _, err := s.Agents.Get(agentID); err != nil {
		return domain.AgentSale{}, fmt.Errorf("unknown agent %s: %w", agentID, err)
	}
	if pct <= 0 {
		cfg, err := s.Settings.Get()
		if err != nil {
			return domain.AgentSale{}, err
		}
		pct = cfg.DefaultCommissionPct
	}
	sale := domain.AgentSale{
		ID:               "sale-" + uuid.NewString(),
		AgentID:          agentID,
		PropertyID:       prop.ID,
		PropertyTitle:    prop.Title,
		SaleAmount:       saleAmount,
		CommissionPct:    pct,
		CommissionAmount: Commission(saleAmount, pct),
	}
	if err := s.Agents.InsertSale(sale); err != nil {
		return domain.AgentSale{}, err
	}
	return sale, nil
}

// Totals recomputes the agent summary from the sales and payouts tables.
// Available balance counts approved payouts only; pending and rejected
// requests leave it untouched.
func (s *ReferralService) Totals(agentID string) (domain.AgentTotals, error) {
	return s.Agents.Totals(agentID)
}

// RequestPayout enforces enrollment, the configured minimum and the
// available balance before a PENDING request is created.
func (s *ReferralService) RequestPayout(agentID string, amount float64) (domain.PayoutRequest, error) {
	if _, err := s.Agents.Get(agentID); err != nil {
		return domain.PayoutRequest{}, ErrNotEnrolled
	}
	cfg, err := s.Settings.Get()
	if err != nil {
		return domain.PayoutRequest{}, err
	}
	if amount < cfg.MinimumPayout {
		return domain.PayoutRequest{}, ErrBelowMinimum
	}
	totals, err := s.Agents.Totals(agentID)
	if err != nil {
		return domain.PayoutRequest{}, err
	}
	if amount > totals.AvailableBalance {
		return domain.PayoutRequest{}, ErrInsufficientFunds
	}
	p := domain.PayoutRequest{
		ID:      "payout-" + uuid.NewString(),
		AgentID: agentID,
		Amount:  amount,
		Status:  "PENDING",
	}
	if err := s.Agents.InsertPayout(p); err != nil {
		return domain.PayoutRequest{}, err
	}
	return p, nil
}

// ResolvePayout moves a request to APPROVED or REJECTED with an optional
// wire/cheque reference.
func (s *ReferralService) ResolvePayout(id, status, reference string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if status != "APPROVED" && status != "REJECTED" {
		return fmt.Errorf("unknown payout status %q", status)
	}
	return s.Agents.UpdatePayoutStatus(id, status, reference)
}

// TrackClick resolves a referral code and bumps the agent's counter.
func (s *ReferralService) TrackClick(code string) error {
	a, err := s.Agents.ByReferralCode(code)
	if err != nil {
		return err
	}
	return s.Agents.IncrementClicks(a.UserID)
}

// EnrollAgent creates the referral profile for an AGENT user. The referral
// code defaults to a short uuid fragment when not chosen by the admin.
func (s *ReferralService) EnrollAgent(userID, name, code string) (domain.Agent, error) {
	if code == "" {
		code = strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	}
	a := domain.Agent{UserID: userID, Name: name, ReferralCode: code}
	if err := s.Agents.Insert(a); err != nil {
		return domain.Agent{}, err
	}
	return a, nil
}

func (s *ReferralService) ListAgents() ([]domain.Agent, error)        { return s.Agents.List() }
func (s *ReferralService) ListSales() ([]domain.AgentSale, error)     { return s.Agents.ListSales() }
func (s *ReferralService) ListPayouts() ([]domain.PayoutRequest, error) { return s.Agents.ListPayouts() }

func (s *ReferralService) SalesByAgent(agentID string) ([]domain.AgentSale, error) {
	return s.Agents.ListSalesByAgent(agentID)
}

func (s *ReferralService) PayoutsByAgent(agentID string) ([]domain.PayoutRequest, error) {
	return s.Agents.ListPayoutsByAgent(agentID)
}
