package repos

import (
	"lumiere/internal/domain"

	"github.com/jmoiron/sqlx"
)

type LeadRepo struct{ db *sqlx.DB }

func NewLeadRepo(db *sqlx.DB) *LeadRepo { return &LeadRepo{db: db} }

const leadCols = `
  id, name, email,
  COALESCE(phone,'')          AS phone,
  COALESCE(message,'')        AS message,
  COALESCE(property_id,'')    AS property_id,
  COALESCE(property_title,'') AS property_title,
  status, type, created_at`

func (r *LeadRepo) List() ([]domain.Lead, error) {
	var out []domain.Lead
	err := r.db.Select(&out, `
	  SELECT `+leadCols+`
	  FROM leads
	  ORDER BY created_at DESC, rowid DESC
	`)
	return out, err
}

func (r *LeadRepo) ListByStatus(status string) ([]domain.Lead, error) {
	var out []domain.Lead
	err := r.db.Select(&out, `
	  SELECT `+leadCols+`
	  FROM leads
	  WHERE status = ?
	  ORDER BY created_at DESC, rowid DESC
	`, status)
	return out, err
}

func (r *LeadRepo) Get(id string) (domain.Lead, error) {
	var l domain.Lead
	err := r.db.Get(&l, `SELECT `+leadCols+` FROM leads WHERE id = ?`, id)
	return l, err
}

func (r *LeadRepo) Insert(l domain.Lead) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO leads(id,name,email,phone,message,property_id,property_title,status,type)
	  VALUES(:id,:name,:email,:phone,:message,:property_id,:property_title,:status,:type)
	`, l)
	return err
}

// UpdateStatus is the only mutation the CRM performs; leads are never deleted.
func (r *LeadRepo) UpdateStatus(id, status string) error {
	_, err := r.db.Exec(`UPDATE leads SET status = ? WHERE id = ?`, status, id)
	return err
}

func (r *LeadRepo) CountByStatus() (map[string]int, error) {
	rows := []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}{}
	if err := r.db.Select(&rows, `SELECT status, COUNT(*) AS n FROM leads GROUP BY status`); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}
