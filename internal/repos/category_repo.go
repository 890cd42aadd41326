package repos

import (
	"shoptrack/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `
	  SELECT id, name, created_at
	  FROM categories
	  ORDER BY name
	`)
	return out, err
}

func (r *CategoryRepo) Get(id string) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name, created_at FROM categories WHERE id = ?`, id)
	return c, err
}

func (r *CategoryRepo) Create(name string) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`INSERT INTO categories(id,name) VALUES(?,?)`, id, name)
	return id, err
}

// Delete removes a category; items (and their sales/alerts) cascade.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}

func (r *CategoryRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM categories`)
	return n, err
}
