package services

import (
	"errors"

	"shoptrack/internal/domain"
	"shoptrack/internal/repos"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientStock = repos.ErrInsufficientStock
	ErrPriceBelowCost    = errors.New("selling price should not be below buying price")
	ErrBadQuantity       = errors.New("quantity sold must be greater than zero")
)

type InventoryService struct {
	Items  *repos.ItemRepo
	Sales  *repos.SaleRepo
	Alerts *repos.StockAlertRepo
	Cats   *repos.CategoryRepo
}

func NewInventoryService(items *repos.ItemRepo, sales *repos.SaleRepo, alerts *repos.StockAlertRepo, cats *repos.CategoryRepo) *InventoryService {
	return &InventoryService{Items: items, Sales: sales, Alerts: alerts, Cats: cats}
}

// SaveItem creates or updates an item and reconciles its stock alert.
// Selling below cost is rejected here, matching the form rule.
func (s *InventoryService) SaveItem(it *domain.Item) error {
	if it.SellingPrice.LessThan(it.BuyingPrice) {
		return ErrPriceBelowCost
	}
	if it.ID == "" {
		return s.Items.Create(it)
	}
	return s.Items.Update(it)
}

// SellItem runs the sale contract: positive quantity, at most the stock on
// hand, decrement + sale insert + alert refresh in one transaction. The
// price override, when nil, falls back to the item's current selling price.
func (s *InventoryService) SellItem(itemID string, qtySold int, overridePrice *decimal.Decimal) (domain.Sale, error) {
	if qtySold <= 0 {
		return domain.Sale{}, ErrBadQuantity
	}
	return s.Items.Sell(itemID, qtySold, overridePrice)
}

// StockStatus is the JSON shape served by /api/check-stock.
type StockStatus struct {
	Quantity   int  `json:"quantity"`
	IsLowStock bool `json:"is_low_stock"`
}

func (s *InventoryService) CheckStock(itemID string) (StockStatus, error) {
	it, err := s.Items.Get(itemID)
	if err != nil {
		return StockStatus{}, err
	}
	return StockStatus{Quantity: it.Quantity, IsLowStock: it.IsLowStock()}, nil
}

// Dashboard bundles the numbers the landing page shows.
type Dashboard struct {
	TotalItems      int
	TotalCategories int
	TotalWorth      decimal.Decimal
	LowStockItems   []domain.Item
	RecentSales     []domain.Sale
}

func (s *InventoryService) Dashboard() (Dashboard, error) {
	var d Dashboard
	var err error
	if d.TotalItems, err = s.Items.Count(); err != nil {
		return d, err
	}
	if d.TotalCategories, err = s.Cats.Count(); err != nil {
		return d, err
	}
	if d.TotalWorth, err = s.Items.TotalBuyingValue(); err != nil {
		return d, err
	}
	if d.LowStockItems, err = s.Items.LowStock(); err != nil {
		return d, err
	}
	if d.RecentSales, err = s.Sales.Recent(10); err != nil {
		return d, err
	}
	return d, nil
}
