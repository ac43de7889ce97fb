package repos

import (
	"lumiere/internal/domain"

	"github.com/jmoiron/sqlx"
)

type AgentRepo struct{ db *sqlx.DB }

func NewAgentRepo(db *sqlx.DB) *AgentRepo { return &AgentRepo{db: db} }

func (r *AgentRepo) List() ([]domain.Agent, error) {
	var out []domain.Agent
	err := r.db.Select(&out, `
	  SELECT user_id, name, referral_code, clicks, created_at
	  FROM agents
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *AgentRepo) Get(userID string) (domain.Agent, error) {
	var a domain.Agent
	err := r.db.Get(&a, `SELECT user_id, name, referral_code, clicks, created_at FROM agents WHERE user_id = ?`, userID)
	return a, err
}

func (r *AgentRepo) ByReferralCode(code string) (domain.Agent, error) {
	var a domain.Agent
	err := r.db.Get(&a, `SELECT user_id, name, referral_code, clicks, created_at FROM agents WHERE referral_code = ?`, code)
	return a, err
}

func (r *AgentRepo) Insert(a domain.Agent) error {
	_, err := r.db.Exec(`INSERT INTO agents(user_id,name,referral_code) VALUES(?,?,?)`,
		a.UserID, a.Name, a.ReferralCode)
	return err
}

// IncrementClicks is a single atomic statement; no read-modify-write race.
func (r *AgentRepo) IncrementClicks(userID string) error {
	_, err := r.db.Exec(`UPDATE agents SET clicks = clicks + 1 WHERE user_id = ?`, userID)
	return err
}

// ---- Sales ----

func (r *AgentRepo) ListSales() ([]domain.AgentSale, error) {
	var out []domain.AgentSale
	err := r.db.Select(&out, `
	  SELECT id, agent_id,
	    COALESCE(property_id,'')    AS property_id,
	    COALESCE(property_title,'') AS property_title,
	    sale_amount, commission_pct, commission_amount, created_at
	  FROM sales
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *AgentRepo) ListSalesByAgent(agentID string) ([]domain.AgentSale, error) {
	var out []domain.AgentSale
	err := r.db.Select(&out, `
	  SELECT id, agent_id,
	    COALESCE(property_id,'')    AS property_id,
	    COALESCE(property_title,'') AS property_title,
	    sale_amount, commission_pct, commission_amount, created_at
	  FROM sales
	  WHERE agent_id = ?
	  ORDER BY created_at DESC, rowid DESC
	`, agentID)
	return out, err
}

func (r *AgentRepo) InsertSale(s domain.AgentSale) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO sales(id,agent_id,property_id,property_title,sale_amount,commission_pct,commission_amount)
	  VALUES(:id,:agent_id,:property_id,:property_title,:sale_amount,:commission_pct,:commission_amount)
	`, s)
	return err
}

// ---- Payouts ----

func (r *AgentRepo) ListPayouts() ([]domain.PayoutRequest, error) {
	var out []domain.PayoutRequest
	err := r.db.Select(&out, `
	  SELECT id, agent_id, amount, status, COALESCE(reference,'') AS reference, created_at
	  FROM payouts
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *AgentRepo) ListPayoutsByAgent(agentID string) ([]domain.PayoutRequest, error) {
	var out []domain.PayoutRequest
	err := r.db.Select(&out, `
	  SELECT id, agent_id, amount, status, COALESCE(reference,'') AS reference, created_at
	  FROM payouts
	  WHERE agent_id = ?
	  ORDER BY created_at DESC, rowid DESC
	`, agentID)
	return out, err
}

func (r *AgentRepo) InsertPayout(p domain.PayoutRequest) error {
	_, err := r.db.Exec(`INSERT INTO payouts(id,agent_id,amount,status,reference) VALUES(?,?,?,?,?)`,
		p.ID, p.AgentID, p.Amount, p.Status, p.Reference)
	return err
}

func (r *AgentRepo) UpdatePayoutStatus(id, status, reference string) error {
	_, err := r.db.Exec(`UPDATE payouts SET status = ?, reference = ? WHERE id = ?`, status, reference, id)
	return err
}

// Totals derives the referral summary from the sales and payouts tables;
// always consistent with current rows, never maintained as running state.
func (r *AgentRepo) Totals(agentID string) (domain.AgentTotals, error) {
	var t domain.AgentTotals
	err := r.db.Get(&t.SalesCount, `SELECT COUNT(*) FROM sales WHERE agent_id = ?`, agentID)
	if err != nil {
		return t, err
	}
	if err := r.db.Get(&t.SalesVolume, `SELECT COALESCE(SUM(sale_amount),0) FROM sales WHERE agent_id = ?`, agentID); err != nil {
		return t, err
	}
	if err := r.db.Get(&t.TotalCommission, `SELECT COALESCE(SUM(commission_amount),0) FROM sales WHERE agent_id = ?`, agentID); err != nil {
		return t, err
	}
	if err := r.db.Get(&t.ApprovedPayouts, `SELECT COALESCE(SUM(amount),0) FROM payouts WHERE agent_id = ? AND status = 'APPROVED'`, agentID); err != nil {
		return t, err
	}
	if err := r.db.Get(&t.PendingPayouts, `SELECT COALESCE(SUM(amount),0) FROM payouts WHERE agent_id = ? AND status = 'PENDING'`, agentID); err != nil {
		return t, err
	}
	t.AvailableBalance = t.TotalCommission - t.ApprovedPayouts
	return t, nil
}
