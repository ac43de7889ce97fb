package repos

import (
	"lumiere/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SubscriberRepo struct{ db *sqlx.DB }

func NewSubscriberRepo(db *sqlx.DB) *SubscriberRepo { return &SubscriberRepo{db: db} }

func (r *SubscriberRepo) List() ([]domain.Subscriber, error) {
	var out []domain.Subscriber
	err := r.db.Select(&out, `
	  SELECT id, email, subscribed_at
	  FROM subscribers
	  ORDER BY subscribed_at DESC, rowid DESC
	`)
	return out, err
}

// Insert is a silent no-op when the email is already registered; the unique
// index carries the guarantee, so two racing subscribes still yield one row.
func (r *SubscriberRepo) Insert(s domain.Subscriber) (bool, error) {
	res, err := r.db.Exec(`
	  INSERT INTO subscribers(id, email)
	  VALUES(?, ?)
	  ON CONFLICT DO NOTHING
	`, s.ID, s.Email)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *SubscriberRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM subscribers`)
	return n, err
}
