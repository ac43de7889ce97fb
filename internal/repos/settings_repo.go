package repos

import (
	"database/sql"

	"lumiere/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Defaults applied when the row is missing or a field was never written.
func defaultSettings() domain.SiteSettings {
	return domain.SiteSettings{
		ID:                   1,
		TeamJSON:             "[]",
		DefaultCommissionPct: 2.5,
		MinimumPayout:        500,
	}
}

// Get always returns a usable settings object; missing fields fall back to
// defaults so templates never see empty commission or payout values.
func (r *SettingsRepo) Get() (domain.SiteSettings, error) {
	var s domain.SiteSettings
	err := r.db.Get(&s, `
	  SELECT id,
	    COALESCE(contact_email,'')        AS contact_email,
	    COALESCE(contact_phone,'')        AS contact_phone,
	    COALESCE(contact_address,'')      AS contact_address,
	    COALESCE(team_json,'[]')          AS team_json,
	    COALESCE(default_agent_name,'')   AS default_agent_name,
	    COALESCE(default_agent_phone,'')  AS default_agent_phone,
	    COALESCE(default_agent_image,'')  AS default_agent_image,
	    default_commission_pct, minimum_payout,
	    COALESCE(community_url,'')        AS community_url,
	    COALESCE(updated_at,'')           AS updated_at
	  FROM site_settings WHERE id = 1
	`)
	if err == sql.ErrNoRows {
		return defaultSettings(), nil
	}
	if err != nil {
		return domain.SiteSettings{}, err
	}
	if s.DefaultCommissionPct <= 0 {
		s.DefaultCommissionPct = 2.5
	}
	if s.MinimumPayout <= 0 {
		s.MinimumPayout = 500
	}
	return s, nil
}

// Save replaces the whole singleton record at id 1; no partial merge.
func (r *SettingsRepo) Save(s domain.SiteSettings) error {
	s.ID = 1
	_, err := r.db.NamedExec(`
	  INSERT INTO site_settings(id, contact_email, contact_phone, contact_address, team_json,
	    default_agent_name, default_agent_phone, default_agent_image,
	    default_commission_pct, minimum_payout, community_url, updated_at)
	  VALUES(1, :contact_email, :contact_phone, :contact_address, :team_json,
	    :default_agent_name, :default_agent_phone, :default_agent_image,
	    :default_commission_pct, :minimum_payout, :community_url, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET
	    contact_email=excluded.contact_email,
	    contact_phone=excluded.contact_phone,
	    contact_address=excluded.contact_address,
	    team_json=excluded.team_json,
	    default_agent_name=excluded.default_agent_name,
	    default_agent_phone=excluded.default_agent_phone,
	    default_agent_image=excluded.default_agent_image,
	    default_commission_pct=excluded.default_commission_pct,
	    minimum_payout=excluded.minimum_payout,
	    community_url=excluded.community_url,
	    updated_at=CURRENT_TIMESTAMP
	`, s)
	return err
}
