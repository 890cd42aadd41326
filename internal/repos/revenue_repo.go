package repos

import (
	"shoptrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type RevenueRepo struct{ db *sqlx.DB }

func NewRevenueRepo(db *sqlx.DB) *RevenueRepo { return &RevenueRepo{db: db} }

func (r *RevenueRepo) ByRepair(repairID string) (domain.Revenue, error) {
	var rev domain.Revenue
	err := r.db.Get(&rev, `
	  SELECT v.repair_id, p.owner_name, v.amount, v.collected_at
	  FROM revenues v JOIN repairs p ON p.id = v.repair_id
	  WHERE v.repair_id = ?
	`, repairID)
	return rev, err
}

func (r *RevenueRepo) CountForRepair(repairID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM revenues WHERE repair_id = ?`, repairID)
	return n, err
}

// Between returns revenue rows collected inside [from, to].
func (r *RevenueRepo) Between(from, to string) ([]domain.Revenue, error) {
	var out []domain.Revenue
	err := r.db.Select(&out, `
	  SELECT v.repair_id, p.owner_name, v.amount, v.collected_at
	  FROM revenues v JOIN repairs p ON p.id = v.repair_id
	  WHERE v.collected_at >= ? AND v.collected_at <= ?
	  ORDER BY datetime(v.collected_at) DESC
	`, from, to)
	return out, err
}
