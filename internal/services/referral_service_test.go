package services_test

import (
	"errors"
	"testing"

	"lumiere/internal/domain"
	"lumiere/internal/repos"
	"lumiere/internal/services"
)

func TestCommission(t *testing.T) {
	if got := services.Commission(1000000, 2.5); got != 25000 {
		t.Fatalf("want 25000, got %v", got)
	}
	if got := services.Commission(0, 10); got != 0 {
		t.Fatalf("want 0, got %v", got)
	}
}

func TestRecordSale_SnapshotsRate(t *testing.T) {
	db := memdb(t)
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('agent-1','noor@lumiere.test','Noor','x','AGENT')`)
	agents := repos.NewAgentRepo(db)
	settings := repos.NewSettingsRepo(db)
	svc := services.NewReferralService(agents, settings)
	if _, err := svc.EnrollAgent("agent-1", "Noor Haddad", "NOOR2026"); err != nil {
		t.Fatal(err)
	}

	sale, err := svc.RecordSale("agent-1", domain.Property{ID: "p1", Title: "Villa Sol"}, 2000000, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sale.CommissionAmount != 60000 {
		t.Fatalf("want commission 60000, got %v", sale.CommissionAmount)
	}

	// Changing the default rate must not rewrite recorded sales.
	cfg, _ := settings.Get()
	cfg.DefaultCommissionPct = 10
	if err := settings.Save(cfg); err != nil {
		t.Fatal(err)
	}
	sales, err := svc.SalesByAgent("agent-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(sales) != 1 || sales[0].CommissionPct != 3 || sales[0].CommissionAmount != 60000 {
		t.Fatalf("historical sale mutated: %+v", sales)
	}
}

func TestRecordSale_DefaultRateFallback(t *testing.T) {
	db := memdb(t)
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('agent-1','noor@lumiere.test','Noor','x','AGENT')`)
	settings := repos.NewSettingsRepo(db)
	svc := services.NewReferralService(repos.NewAgentRepo(db), settings)
	if _, err := svc.EnrollAgent("agent-1", "Noor Haddad", ""); err != nil {
		t.Fatal(err)
	}

	// Seeded default rate is 2.5.
	sale, err := svc.RecordSale("agent-1", domain.Property{}, 1000000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if sale.CommissionPct != 2.5 || sale.CommissionAmount != 25000 {
		t.Fatalf("want default 2.5%% = 25000, got %+v", sale)
	}
}

func TestAvailableBalance_ApprovedPayoutsOnly(t *testing.T) {
	db := memdb(t)
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('agent-1','noor@lumiere.test','Noor','x','AGENT')`)
	agents := repos.NewAgentRepo(db)
	svc := services.NewReferralService(agents, repos.NewSettingsRepo(db))
	if _, err := svc.EnrollAgent("agent-1", "Noor Haddad", "NOOR2026"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordSale("agent-1", domain.Property{}, 4000000, 2.5); err != nil { // 100000
		t.Fatal(err)
	}

	mk := func(id string, amount float64, status string) {
		if err := agents.InsertPayout(domain.PayoutRequest{ID: id, AgentID: "agent-1", Amount: amount, Status: status}); err != nil {
			t.Fatal(err)
		}
	}
	mk("po-1", 30000, "APPROVED")
	mk("po-2", 20000, "PENDING")
	mk("po-3", 15000, "REJECTED")

	totals, err := svc.Totals("agent-1")
	if err != nil {
		t.Fatal(err)
	}
	if totals.TotalCommission != 100000 {
		t.Fatalf("want total commission 100000, got %v", totals.TotalCommission)
	}
	if totals.AvailableBalance != 70000 {
		t.Fatalf("pending/rejected must not affect balance: want 70000, got %v", totals.AvailableBalance)
	}
}

func TestRequestPayout_Guards(t *testing.T) {
	db := memdb(t)
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('agent-1','noor@lumiere.test','Noor','x','AGENT')`)
	svc := services.NewReferralService(repos.NewAgentRepo(db), repos.NewSettingsRepo(db))
	if _, err := svc.EnrollAgent("agent-1", "Noor Haddad", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordSale("agent-1", domain.Property{}, 40000, 2.5); err != nil { // 1000 commission
		t.Fatal(err)
	}

	// Below the seeded 500 minimum.
	if _, err := svc.RequestPayout("agent-1", 100); !errors.Is(err, services.ErrBelowMinimum) {
		t.Fatalf("want ErrBelowMinimum, got %v", err)
	}
	// Above the available balance.
	if _, err := svc.RequestPayout("agent-1", 5000); !errors.Is(err, services.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}
	// Within bounds.
	p, err := svc.RequestPayout("agent-1", 800)
	if err != nil {
		t.Fatal(err)
	}
	if p.Status != "PENDING" {
		t.Fatalf("new requests must be PENDING, got %s", p.Status)
	}
}

func TestRequestPayout_RequiresEnrollment(t *testing.T) {
	db := memdb(t)
	// An ADMIN reviewing the portal has no referral profile.
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('u-admin','admin@lumiere.test','Back Office','x','ADMIN')`)
	svc := services.NewReferralService(repos.NewAgentRepo(db), repos.NewSettingsRepo(db))

	if _, err := svc.RequestPayout("u-admin", 800); !errors.Is(err, services.ErrNotEnrolled) {
		t.Fatalf("want ErrNotEnrolled, got %v", err)
	}
}

func TestTrackClick(t *testing.T) {
	db := memdb(t)
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('agent-1','noor@lumiere.test','Noor','x','AGENT')`)
	agents := repos.NewAgentRepo(db)
	svc := services.NewReferralService(agents, repos.NewSettingsRepo(db))
	if _, err := svc.EnrollAgent("agent-1", "Noor Haddad", "NOOR2026"); err != nil {
		t.Fatal(err)
	}

	if err := svc.TrackClick("NOOR2026"); err != nil {
		t.Fatal(err)
	}
	if err := svc.TrackClick("NOOR2026"); err != nil {
		t.Fatal(err)
	}
	a, err := agents.Get("agent-1")
	if err != nil {
		t.Fatal(err)
	}
	if a.Clicks != 2 {
		t.Fatalf("want 2 clicks, got %d", a.Clicks)
	}
	if err := svc.TrackClick("UNKNOWN1"); err == nil {
		t.Fatal("unknown code must error")
	}
}
