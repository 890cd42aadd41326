package repos

import (
	"shoptrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SaleRepo struct{ db *sqlx.DB }

func NewSaleRepo(db *sqlx.DB) *SaleRepo { return &SaleRepo{db: db} }

const saleColumns = `
  s.id, s.item_id, i.name AS item_name, s.quantity_sold,
  s.selling_price, s.buying_price, s.sold_at`

// Recent returns the newest sales first (dashboard last-10 list).
func (r *SaleRepo) Recent(limit int) ([]domain.Sale, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleColumns+`
	  FROM sales s JOIN items i ON i.id = s.item_id
	  ORDER BY datetime(s.sold_at) DESC
	  LIMIT ?
	`, limit)
	return out, err
}

// Between returns sales whose sold_at falls inside [from, to], bounds in
// the storage layout (start of day .. end of day inclusive).
func (r *SaleRepo) Between(from, to string) ([]domain.Sale, error) {
	var out []domain.Sale
	err := r.db.Select(&out, `
	  SELECT `+saleColumns+`
	  FROM sales s JOIN items i ON i.id = s.item_id
	  WHERE s.sold_at >= ? AND s.sold_at <= ?
	  ORDER BY datetime(s.sold_at) DESC
	`, from, to)
	return out, err
}

func (r *SaleRepo) CountForItem(itemID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM sales WHERE item_id = ?`, itemID)
	return n, err
}
