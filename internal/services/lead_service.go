package services

import (
	"fmt"
	"strings"

	"lumiere/internal/domain"
	"lumiere/internal/repos"
	"lumiere/internal/validate"

	"github.com/google/uuid"
)

type LeadService struct {
	Leads *repos.LeadRepo
}

func NewLeadService(leads *repos.LeadRepo) *LeadService {
	return &LeadService{Leads: leads}
}

// CreateGeneral records a contact-form inquiry. First and last name are
// joined with a single space; new leads always enter the CRM as NEW.
func (s *LeadService) CreateGeneral(firstName, lastName, email, phone, message string) (domain.Lead, error) {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	l := domain.Lead{
		ID:      "lead-" + uuid.NewString(),
		Name:    name,
		Email:   email,
		Phone:   phone,
		Message: message,
		Status:  "NEW",
		Type:    "GENERAL_INQUIRY",
	}
	if err := s.Leads.Insert(l); err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}

// CreateForProperty records a viewing request or offer from a listing page.
func (s *LeadService) CreateForProperty(leadType, name, email, phone, message string, prop domain.Property) (domain.Lead, error) {
	if _, ok := validate.LeadType(leadType); !ok {
		return domain.Lead{}, fmt.Errorf("unknown lead type %q", leadType)
	}
	l := domain.Lead{
		ID:            "lead-" + uuid.NewString(),
		Name:          strings.TrimSpace(name),
		Email:         email,
		Phone:         phone,
		Message:       message,
		PropertyID:    prop.ID,
		PropertyTitle: prop.Title,
		Status:        "NEW",
		Type:          leadType,
	}
	if err := s.Leads.Insert(l); err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}

func (s *LeadService) List() ([]domain.Lead, error) {
	return s.Leads.List()
}

func (s *LeadService) ListByStatus(status string) ([]domain.Lead, error) {
	if status == "" {
		return s.Leads.List()
	}
	if _, ok := validate.LeadStatus(status); !ok {
		return nil, fmt.Errorf("unknown lead status %q", status)
	}
	return s.Leads.ListByStatus(status)
}

// UpdateStatus is the only CRM mutation; leads are never deleted.
func (s *LeadService) UpdateStatus(id, status string) error {
	if _, ok := validate.LeadStatus(status); !ok {
		return fmt.Errorf("unknown lead status %q", status)
	}
	return s.Leads.UpdateStatus(id, status)
}

func (s *LeadService) CountByStatus() (map[string]int, error) {
	return s.Leads.CountByStatus()
}
