package services_test

import (
	"testing"

	"lumiere/internal/domain"
	"lumiere/internal/repos"
	"lumiere/internal/services"
)

func TestSettings_SaveReplacesWholeRecord(t *testing.T) {
	db := memdb(t)
	svc := services.NewSettingsService(repos.NewSettingsRepo(db))

	cfg := domain.SiteSettings{
		ContactEmail:         "hello@lumiere.test",
		ContactPhone:         "+1 310 555 0199",
		TeamJSON:             `[{"name":"Iris Chen","role":"Managing Broker","image":""}]`,
		DefaultCommissionPct: 3,
		MinimumPayout:        750,
	}
	if err := svc.Save(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got.ContactEmail != "hello@lumiere.test" || got.DefaultCommissionPct != 3 || got.MinimumPayout != 750 {
		t.Fatalf("settings not replaced: %+v", got)
	}
	// Fields omitted from the save are gone, not merged.
	if got.ContactAddress != "" {
		t.Fatalf("save must replace, not merge; address=%q", got.ContactAddress)
	}

	team, err := svc.Team()
	if err != nil {
		t.Fatal(err)
	}
	if len(team) != 1 || team[0].Name != "Iris Chen" {
		t.Fatalf("team decode failed: %+v", team)
	}
}

func TestSettings_RejectsBadTeamJSON(t *testing.T) {
	db := memdb(t)
	svc := services.NewSettingsService(repos.NewSettingsRepo(db))

	if err := svc.Save(domain.SiteSettings{ContactEmail: "x@y.com", TeamJSON: "{not json"}); err == nil {
		t.Fatal("invalid team JSON must be rejected")
	}
}

func TestSettings_DefaultsWhenUnset(t *testing.T) {
	db := memdb(t)
	// Remove the seeded singleton to exercise the defaults path.
	db.MustExec(`DELETE FROM site_settings`)
	svc := services.NewSettingsService(repos.NewSettingsRepo(db))

	got, err := svc.Get()
	if err != nil {
		t.Fatal(err)
	}
	if got.DefaultCommissionPct != 2.5 || got.MinimumPayout != 500 {
		t.Fatalf("defaults not applied: %+v", got)
	}
}
