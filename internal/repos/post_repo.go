package repos

import (
	"lumiere/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PostRepo struct{ db *sqlx.DB }

func NewPostRepo(db *sqlx.DB) *PostRepo { return &PostRepo{db: db} }

const postCols = `
  id, title,
  COALESCE(slug,'')             AS slug,
  COALESCE(content,'')          AS content,
  COALESCE(excerpt,'')          AS excerpt,
  COALESCE(keyphrase,'')        AS keyphrase,
  COALESCE(meta_description,'') AS meta_description,
  COALESCE(categories_json,'[]') AS categories_json,
  COALESCE(cover_image,'')      AS cover_image,
  status,
  COALESCE(author,'')           AS author,
  created_at, COALESCE(updated_at,'') AS updated_at`

func (r *PostRepo) List() ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := r.db.Select(&out, `
	  SELECT `+postCols+`
	  FROM posts
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *PostRepo) ListPublished() ([]domain.BlogPost, error) {
	var out []domain.BlogPost
	err := r.db.Select(&out, `
	  SELECT `+postCols+`
	  FROM posts
	  WHERE status = 'PUBLISHED'
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *PostRepo) Get(id string) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.Get(&p, `SELECT `+postCols+` FROM posts WHERE id = ?`, id)
	return p, err
}

// BySlug resolves public blog URLs; falls back to id lookup at the handler.
func (r *PostRepo) BySlug(slug string) (domain.BlogPost, error) {
	var p domain.BlogPost
	err := r.db.Get(&p, `SELECT `+postCols+` FROM posts WHERE slug = ?`, slug)
	return p, err
}

func (r *PostRepo) Insert(p domain.BlogPost) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO posts(id,title,slug,content,excerpt,keyphrase,meta_description,categories_json,cover_image,status,author)
	  VALUES(:id,:title,:slug,:content,:excerpt,:keyphrase,:meta_description,:categories_json,:cover_image,:status,:author)
	`, p)
	return err
}

func (r *PostRepo) Update(p domain.BlogPost) error {
	_, err := r.db.NamedExec(`
	  UPDATE posts SET
	    title=:title, slug=:slug, content=:content, excerpt=:excerpt,
	    keyphrase=:keyphrase, meta_description=:meta_description,
	    categories_json=:categories_json, cover_image=:cover_image,
	    status=:status, author=:author, updated_at=CURRENT_TIMESTAMP
	  WHERE id=:id
	`, p)
	return err
}

func (r *PostRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	return err
}
