package domain

type User struct {
	ID    string `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
	Hash  string `db:"password_hash"`
	Role  string `db:"role"` // ADMIN | AGENT
}

// Agent holds the referral profile attached to an AGENT user.
type Agent struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	ReferralCode string `db:"referral_code"`
	Clicks       int    `db:"clicks"`
	CreatedAt    string `db:"created_at"`
}

// AgentSale snapshots the commission rate in effect when the sale was
// recorded; later rate changes never alter historical rows.
type AgentSale struct {
	ID               string  `db:"id"`
	AgentID          string  `db:"agent_id"`
	PropertyID       string  `db:"property_id"`
	PropertyTitle    string  `db:"property_title"`
	SaleAmount       int64   `db:"sale_amount"`
	CommissionPct    float64 `db:"commission_pct"`
	CommissionAmount float64 `db:"commission_amount"`
	CreatedAt        string  `db:"created_at"`
}

type PayoutRequest struct {
	ID        string  `db:"id"`
	AgentID   string  `db:"agent_id"`
	Amount    float64 `db:"amount"`
	Status    string  `db:"status"` // PENDING | APPROVED | REJECTED
	Reference string  `db:"reference"`
	CreatedAt string  `db:"created_at"`
}

// AgentTotals is the derived referral summary shown on the portal
// dashboard; recomputed from sales and payouts on every request.
type AgentTotals struct {
	SalesCount       int
	SalesVolume      int64
	TotalCommission  float64
	ApprovedPayouts  float64
	PendingPayouts   float64
	AvailableBalance float64
}
