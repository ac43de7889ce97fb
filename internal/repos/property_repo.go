package repos

import (
	"lumiere/internal/domain"

	"github.com/jmoiron/sqlx"
)

type PropertyRepo struct{ db *sqlx.DB }

func NewPropertyRepo(db *sqlx.DB) *PropertyRepo { return &PropertyRepo{db: db} }

// PropertyFilter criteria left at their zero value impose no constraint.
type PropertyFilter struct {
	Query    string // case-insensitive substring on title or location
	Type     string
	Status   string
	MinPrice int64
	MaxPrice int64
	MinBeds  int
	Featured bool
}

const propertyCols = `
  id, title, description, price, location, bedrooms, bathrooms, area_sq_ft,
  type, status,
  COALESCE(images_json,'[]')   AS images_json,
  COALESCE(features_json,'[]') AS features_json,
  COALESCE(agent_name,'')  AS agent_name,
  COALESCE(agent_photo,'') AS agent_photo,
  COALESCE(agent_phone,'') AS agent_phone,
  featured, created_at, COALESCE(updated_at,'') AS updated_at`

// List returns every property, most recently added first.
func (r *PropertyRepo) List() ([]domain.Property, error) {
	var out []domain.Property
	err := r.db.Select(&out, `
	  SELECT `+propertyCols+`
	  FROM properties
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *PropertyRepo) Search(f PropertyFilter, limit, offset int) ([]domain.Property, error) {
	where := `1=1`
	args := []any{}
	if f.Query != "" {
		where += ` AND (LOWER(title) LIKE ? OR LOWER(location) LIKE ?)`
		q := "%" + f.Query + "%"
		args = append(args, q, q)
	}
	if f.Type != "" {
		where += ` AND type = ?`
		args = append(args, f.Type)
	}
	if f.Status != "" {
		where += ` AND status = ?`
		args = append(args, f.Status)
	}
	if f.MinPrice > 0 {
		where += ` AND price >= ?`
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where += ` AND price <= ?`
		args = append(args, f.MaxPrice)
	}
	if f.MinBeds > 0 {
		where += ` AND bedrooms >= ?`
		args = append(args, f.MinBeds)
	}
	if f.Featured {
		where += ` AND featured = 1`
	}

	sql := `
	  SELECT ` + propertyCols + `
	  FROM properties
	  WHERE ` + where + `
	  ORDER BY created_at DESC, rowid DESC
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Property
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *PropertyRepo) Get(id string) (domain.Property, error) {
	var p domain.Property
	err := r.db.Get(&p, `
	  SELECT `+propertyCols+`
	  FROM properties
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *PropertyRepo) Insert(p domain.Property) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO properties(id,title,description,price,location,bedrooms,bathrooms,area_sq_ft,
	    type,status,images_json,features_json,agent_name,agent_photo,agent_phone,featured)
	  VALUES(:id,:title,:description,:price,:location,:bedrooms,:bathrooms,:area_sq_ft,
	    :type,:status,:images_json,:features_json,:agent_name,:agent_photo,:agent_phone,:featured)
	`, p)
	return err
}

// Update replaces the full row keyed by id; concurrent saves resolve to
// the last write.
func (r *PropertyRepo) Update(p domain.Property) error {
	_, err := r.db.NamedExec(`
	  UPDATE properties SET
	    title=:title, description=:description, price=:price, location=:location,
	    bedrooms=:bedrooms, bathrooms=:bathrooms, area_sq_ft=:area_sq_ft,
	    type=:type, status=:status, images_json=:images_json, features_json=:features_json,
	    agent_name=:agent_name, agent_photo=:agent_photo, agent_phone=:agent_phone,
	    featured=:featured, updated_at=CURRENT_TIMESTAMP
	  WHERE id=:id
	`, p)
	return err
}

func (r *PropertyRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM properties WHERE id = ?`, id)
	return err
}
