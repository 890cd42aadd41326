package repos

import (
	"shoptrack/internal/domain"

	"github.com/jmoiron/sqlx"
)

type StockAlertRepo struct{ db *sqlx.DB }

func NewStockAlertRepo(db *sqlx.DB) *StockAlertRepo { return &StockAlertRepo{db: db} }

// reconcileAlert recomputes the alert flag for one item inside the caller's
// transaction: get-or-create the row, then set active iff quantity has
// fallen to or under the threshold.
func reconcileAlert(tx *sqlx.Tx, itemID string) error {
	_, err := tx.Exec(`
	  INSERT INTO stock_alerts(item_id, is_alert_active)
	  SELECT id, CASE WHEN quantity <= low_stock_threshold THEN 1 ELSE 0 END
	  FROM items WHERE id = ?
	  ON CONFLICT(item_id) DO UPDATE SET is_alert_active = excluded.is_alert_active
	`, itemID)
	return err
}

// Reconcile is the standalone variant for callers outside a sale/update tx.
func (r *StockAlertRepo) Reconcile(itemID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if err := reconcileAlert(tx, itemID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *StockAlertRepo) Get(itemID string) (domain.StockAlert, error) {
	var a domain.StockAlert
	err := r.db.Get(&a, `SELECT item_id, is_alert_active FROM stock_alerts WHERE item_id = ?`, itemID)
	return a, err
}

// Active lists item ids with an active alert (admin views).
func (r *StockAlertRepo) Active() ([]domain.StockAlert, error) {
	var out []domain.StockAlert
	err := r.db.Select(&out, `SELECT item_id, is_alert_active FROM stock_alerts WHERE is_alert_active = 1`)
	return out, err
}
