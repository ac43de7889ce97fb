package services

import (
	"database/sql"
	"strings"

	"lumiere/internal/domain"
	"lumiere/internal/repos"

	"github.com/google/uuid"
)

type ListingService struct {
	Props *repos.PropertyRepo
}

func NewListingService(props *repos.PropertyRepo) *ListingService {
	return &ListingService{Props: props}
}

func (s *ListingService) List() ([]domain.Property, error) {
	return s.Props.List()
}

func (s *ListingService) Search(f repos.PropertyFilter, page, pageSize int) ([]domain.Property, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 12
	}
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	offset := (page - 1) * pageSize
	return s.Props.Search(f, pageSize, offset)
}

func (s *ListingService) Featured(limit int) ([]domain.Property, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.Props.Search(repos.PropertyFilter{Featured: true}, limit, 0)
}

// Get returns an absence flag rather than an error for unknown ids; a bad
// URL parameter renders a not-found page, never a failure banner.
func (s *ListingService) Get(id string) (domain.Property, bool, error) {
	p, err := s.Props.Get(id)
	if err == sql.ErrNoRows {
		return domain.Property{}, false, nil
	}
	if err != nil {
		return domain.Property{}, false, err
	}
	return p, true, nil
}

func (s *ListingService) Create(p domain.Property) (domain.Property, error) {
	if p.ID == "" {
		p.ID = "prop-" + uuid.NewString()
	}
	if p.ImagesJSON == "" {
		p.ImagesJSON = "[]"
	}
	if p.Features == "" {
		p.Features = "[]"
	}
	if err := s.Props.Insert(p); err != nil {
		return domain.Property{}, err
	}
	return p, nil
}

func (s *ListingService) Update(p domain.Property) error {
	return s.Props.Update(p)
}

func (s *ListingService) Delete(id string) error {
	return s.Props.Delete(id)
}
