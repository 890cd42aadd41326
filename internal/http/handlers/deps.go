package handlers

import (
	"shoptrack/internal/repos"
	"shoptrack/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	DashboardHandler *DashboardHandler
	ItemHandler      *ItemHandler
	CategoryHandler  *CategoryHandler
	StockAPIHandler  *StockAPIHandler
	ReportHandler    *ReportHandler
	RepairHandler    *RepairHandler
	AdminHandler     *AdminHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	itemRepo := repos.NewItemRepo(db)
	saleRepo := repos.NewSaleRepo(db)
	alertRepo := repos.NewStockAlertRepo(db)
	repairRepo := repos.NewRepairRepo(db)
	revenueRepo := repos.NewRevenueRepo(db)

	invSvc := services.NewInventoryService(itemRepo, saleRepo, alertRepo, catRepo)
	repairSvc := services.NewRepairService(repairRepo, revenueRepo)
	reportSvc := services.NewReportService(saleRepo, repairRepo)

	return &Deps{
		DashboardHandler: &DashboardHandler{Inv: invSvc},
		ItemHandler:      &ItemHandler{Inv: invSvc, Cats: catRepo, Items: itemRepo},
		CategoryHandler:  &CategoryHandler{Cats: catRepo},
		StockAPIHandler:  &StockAPIHandler{Inv: invSvc},
		ReportHandler:    &ReportHandler{Reports: reportSvc},
		RepairHandler:    &RepairHandler{Repairs: repairSvc, Reports: reportSvc},
		AdminHandler:     &AdminHandler{Items: itemRepo, Repairs: repairSvc},
	}
}
