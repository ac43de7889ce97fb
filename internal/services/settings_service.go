package services

import (
	"encoding/json"

	"lumiere/internal/domain"
	"lumiere/internal/repos"
)

type SettingsService struct {
	Settings *repos.SettingsRepo
}

func NewSettingsService(settings *repos.SettingsRepo) *SettingsService {
	return &SettingsService{Settings: settings}
}

func (s *SettingsService) Get() (domain.SiteSettings, error) {
	return s.Settings.Get()
}

// Save replaces the whole settings record; the team list is validated as
// JSON before it is written so templates never choke on a bad payload.
func (s *SettingsService) Save(cfg domain.SiteSettings) error {
	if cfg.TeamJSON == "" {
		cfg.TeamJSON = "[]"
	}
	var team []domain.TeamMember
	if err := json.Unmarshal([]byte(cfg.TeamJSON), &team); err != nil {
		return err
	}
	return s.Settings.Save(cfg)
}

// Team decodes the stored team list for the about page.
func (s *SettingsService) Team() ([]domain.TeamMember, error) {
	cfg, err := s.Settings.Get()
	if err != nil {
		return nil, err
	}
	var team []domain.TeamMember
	if err := json.Unmarshal([]byte(cfg.TeamJSON), &team); err != nil {
		return nil, err
	}
	return team, nil
}
