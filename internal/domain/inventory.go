package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	CreatedAt string `db:"created_at"`
}

type Item struct {
	ID                string          `db:"id"`
	CategoryID        string          `db:"category_id"`
	CategoryName      string          `db:"category_name"`
	Name              string          `db:"name"`
	BuyingPrice       decimal.Decimal `db:"buying_price"`
	SellingPrice      decimal.Decimal `db:"selling_price"`
	Quantity          int             `db:"quantity"`
	LowStockThreshold int             `db:"low_stock_threshold"`
	CreatedAt         string          `db:"created_at"`
	UpdatedAt         string          `db:"updated_at"`
}

// IsLowStock reports whether the item sits at or below its threshold.
func (i Item) IsLowStock() bool {
	return i.Quantity <= i.LowStockThreshold
}

type Sale struct {
	ID           string          `db:"id"`
	ItemID       string          `db:"item_id"`
	ItemName     string          `db:"item_name"`
	QuantitySold int             `db:"quantity_sold"`
	SellingPrice decimal.Decimal `db:"selling_price"`
	// BuyingPrice is snapshotted from the item at sale time so profit on
	// past sales does not move when the item is repriced.
	BuyingPrice decimal.Decimal `db:"buying_price"`
	SoldAt      string          `db:"sold_at"`
}

// Profit for this sale line: (selling - buying) * quantity.
func (s Sale) Profit() decimal.Decimal {
	return s.SellingPrice.Sub(s.BuyingPrice).Mul(decimal.NewFromInt(int64(s.QuantitySold)))
}

type StockAlert struct {
	ItemID        string `db:"item_id"`
	IsAlertActive bool   `db:"is_alert_active"`
}
