package services

import (
	"database/sql"
	"regexp"
	"strings"

	"lumiere/internal/domain"
	"lumiere/internal/repos"

	"github.com/google/uuid"
)

type BlogService struct {
	Posts *repos.PostRepo
}

func NewBlogService(posts *repos.PostRepo) *BlogService {
	return &BlogService{Posts: posts}
}

var reSlugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title when none was supplied.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = reSlugStrip.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func (s *BlogService) ListAll() ([]domain.BlogPost, error) {
	return s.Posts.List()
}

func (s *BlogService) ListPublished() ([]domain.BlogPost, error) {
	return s.Posts.ListPublished()
}

// Find resolves a public blog URL by slug first, then by id.
func (s *BlogService) Find(slugOrID string) (domain.BlogPost, bool, error) {
	p, err := s.Posts.BySlug(slugOrID)
	if err == nil {
		return p, true, nil
	}
	if err != sql.ErrNoRows {
		return domain.BlogPost{}, false, err
	}
	p, err = s.Posts.Get(slugOrID)
	if err == sql.ErrNoRows {
		return domain.BlogPost{}, false, nil
	}
	if err != nil {
		return domain.BlogPost{}, false, err
	}
	return p, true, nil
}

func (s *BlogService) Get(id string) (domain.BlogPost, bool, error) {
	p, err := s.Posts.Get(id)
	if err == sql.ErrNoRows {
		return domain.BlogPost{}, false, nil
	}
	if err != nil {
		return domain.BlogPost{}, false, err
	}
	return p, true, nil
}

func (s *BlogService) Create(p domain.BlogPost) (domain.BlogPost, error) {
	if p.ID == "" {
		p.ID = "post-" + uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Categories == "" {
		p.Categories = "[]"
	}
	if p.Status == "" {
		p.Status = "DRAFT"
	}
	if err := s.Posts.Insert(p); err != nil {
		return domain.BlogPost{}, err
	}
	return p, nil
}

func (s *BlogService) Update(p domain.BlogPost) error {
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	return s.Posts.Update(p)
}

func (s *BlogService) Delete(id string) error {
	return s.Posts.Delete(id)
}
