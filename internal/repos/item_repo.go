package repos

import (
	"errors"

	"shoptrack/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ErrInsufficientStock is returned by Sell when the guarded decrement
// touches no row, i.e. the item does not have quantity_sold units left.
var ErrInsufficientStock = errors.New("insufficient stock")

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = `
  i.id, i.category_id, c.name AS category_name, i.name,
  i.buying_price, i.selling_price, i.quantity, i.low_stock_threshold,
  i.created_at, COALESCE(i.updated_at,'') AS updated_at`

func (r *ItemRepo) Get(id string) (domain.Item, error) {
	var it domain.Item
	err := r.db.Get(&it, `
	  SELECT `+itemColumns+`
	  FROM items i JOIN categories c ON c.id = i.category_id
	  WHERE i.id = ?
	`, id)
	return it, err
}

// Search filters by item/category name substring and an optional category id.
// Both filters empty means "everything".
func (r *ItemRepo) Search(query, categoryID string) ([]domain.Item, error) {
	where := `1=1`
	args := []any{}
	if query != "" {
		where += ` AND (LOWER(i.name) LIKE ? OR LOWER(c.name) LIKE ?)`
		like := "%" + query + "%"
		args = append(args, like, like)
	}
	if categoryID != "" {
		where += ` AND i.category_id = ?`
		args = append(args, categoryID)
	}

	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemColumns+`
	  FROM items i JOIN categories c ON c.id = i.category_id
	  WHERE `+where+`
	  ORDER BY i.name
	`, args...)
	return out, err
}

func (r *ItemRepo) Create(it *domain.Item) error {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO items(id,category_id,name,buying_price,selling_price,quantity,low_stock_threshold)
	  VALUES(?,?,?,?,?,?,?)
	`, it.ID, it.CategoryID, it.Name, it.BuyingPrice, it.SellingPrice, it.Quantity, it.LowStockThreshold); err != nil {
		return err
	}
	if err := reconcileAlert(tx, it.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ItemRepo) Update(it *domain.Item) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  UPDATE items
	  SET category_id=?, name=?, buying_price=?, selling_price=?, quantity=?,
	      low_stock_threshold=?, updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, it.CategoryID, it.Name, it.BuyingPrice, it.SellingPrice, it.Quantity, it.LowStockThreshold, it.ID); err != nil {
		return err
	}
	if err := reconcileAlert(tx, it.ID); err != nil {
		return err
	}
	return tx.Commit()
}

// Delete removes an item; its sales and alert row cascade.
func (r *ItemRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	return err
}

// Sell decrements stock and records the sale in one transaction. The
// decrement is guarded (quantity >= ?) so a concurrent oversell touches no
// row and the whole operation rolls back with ErrInsufficientStock.
// overridePrice nil means "sell at the item's current selling price".
func (r *ItemRepo) Sell(itemID string, qtySold int, overridePrice *decimal.Decimal) (domain.Sale, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return domain.Sale{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE items SET quantity = quantity - ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ? AND quantity >= ?
	`, qtySold, itemID, qtySold)
	if err != nil {
		return domain.Sale{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Sale{}, ErrInsufficientStock
	}

	var it domain.Item
	if err := tx.Get(&it, `
	  SELECT id, category_id, '' AS category_name, name, buying_price, selling_price,
	         quantity, low_stock_threshold, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM items WHERE id = ?
	`, itemID); err != nil {
		return domain.Sale{}, err
	}

	price := it.SellingPrice
	if overridePrice != nil {
		price = *overridePrice
	}
	sale := domain.Sale{
		ID:           uuid.NewString(),
		ItemID:       itemID,
		ItemName:     it.Name,
		QuantitySold: qtySold,
		SellingPrice: price,
		BuyingPrice:  it.BuyingPrice,
		SoldAt:       Now(),
	}
	if _, err := tx.Exec(`
	  INSERT INTO sales(id,item_id,quantity_sold,selling_price,buying_price,sold_at)
	  VALUES(?,?,?,?,?,?)
	`, sale.ID, sale.ItemID, sale.QuantitySold, sale.SellingPrice, sale.BuyingPrice, sale.SoldAt); err != nil {
		return domain.Sale{}, err
	}

	if err := reconcileAlert(tx, itemID); err != nil {
		return domain.Sale{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Sale{}, err
	}
	return sale, nil
}

func (r *ItemRepo) Count() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM items`)
	return n, err
}

// TotalBuyingValue sums buying_price over all items (dashboard "stock worth").
func (r *ItemRepo) TotalBuyingValue() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.Get(&total, `SELECT COALESCE(SUM(buying_price),0) FROM items`)
	return total, err
}

// LowStock lists items at or below their threshold.
func (r *ItemRepo) LowStock() ([]domain.Item, error) {
	var out []domain.Item
	err := r.db.Select(&out, `
	  SELECT `+itemColumns+`
	  FROM items i JOIN categories c ON c.id = i.category_id
	  WHERE i.quantity <= i.low_stock_threshold
	  ORDER BY i.quantity ASC
	`)
	return out, err
}

// ResetAll is the admin bulk action: quantities to zero, sales wiped, alerts
// forced inactive. Alerts are deliberately not reconciled here; bulk updates
// sit outside the tracked mutation paths.
func (r *ItemRepo) ResetAll() error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE items SET quantity = 0, updated_at = CURRENT_TIMESTAMP`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sales`); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE stock_alerts SET is_alert_active = 0`); err != nil {
		return err
	}
	return tx.Commit()
}
