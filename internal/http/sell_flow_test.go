package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"shoptrack/internal/http/handlers"
	"shoptrack/internal/repos"
)

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func newSellApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db)
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))
	app.Get("/items/:id/sell", deps.ItemHandler.SellForm)
	app.Post("/items/:id/sell", deps.ItemHandler.Sell)
	return app, db
}

func postSale(t *testing.T, app *fiber.App, csrfTok, itemID, form string) *http.Response {
	t.Helper()
	body := strings.NewReader("csrf=" + csrfTok + "&" + form)
	req := httptest.NewRequest("POST", "/items/"+itemID+"/sell", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestSellFlowDecrementsStock(t *testing.T) {
	app, db := newSellApp(t)

	respForm, err := app.Test(httptest.NewRequest("GET", "/items/itm-usb-c/sell", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respForm.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on sell form, got %d", respForm.StatusCode)
	}
	csrfTok := extractCookie(respForm, "csrf_")
	if csrfTok == "" {
		t.Fatal("csrf token missing")
	}

	resp := postSale(t, app, csrfTok, "itm-usb-c", "quantity_sold=3")
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect after sale, got %d", resp.StatusCode)
	}

	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM items WHERE id = 'itm-usb-c'`); err != nil {
		t.Fatal(err)
	}
	if qty != 37 {
		t.Fatalf("expected 40-3=37 left, got %d", qty)
	}
	var sales int
	if err := db.Get(&sales, `SELECT COUNT(*) FROM sales WHERE item_id = 'itm-usb-c'`); err != nil {
		t.Fatal(err)
	}
	if sales != 1 {
		t.Fatalf("expected one sale row, got %d", sales)
	}
}

func TestSellFlowRejectsOverselling(t *testing.T) {
	app, db := newSellApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/items/itm-scr-a52/sell", nil))
	csrfTok := extractCookie(respForm, "csrf_")

	// seeded screen stock is 6
	resp := postSale(t, app, csrfTok, "itm-scr-a52", "quantity_sold=7")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 when overselling, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Cannot sell more than available quantity.") {
		t.Fatal("expected the oversell message on the form")
	}

	var qty int
	if err := db.Get(&qty, `SELECT quantity FROM items WHERE id = 'itm-scr-a52'`); err != nil {
		t.Fatal(err)
	}
	if qty != 6 {
		t.Fatalf("stock changed on a rejected sale: %d", qty)
	}
}

func TestSellFlowRejectsZeroQuantity(t *testing.T) {
	app, _ := newSellApp(t)

	respForm, _ := app.Test(httptest.NewRequest("GET", "/items/itm-usb-c/sell", nil))
	csrfTok := extractCookie(respForm, "csrf_")

	resp := postSale(t, app, csrfTok, "itm-usb-c", "quantity_sold=0")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for zero quantity, got %d", resp.StatusCode)
	}
}

func TestSellFlowUnknownItem(t *testing.T) {
	app, _ := newSellApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/items/itm-nope/sell", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown item, got %d", resp.StatusCode)
	}
}

func TestSellFlowRequiresCSRF(t *testing.T) {
	app, _ := newSellApp(t)

	body := strings.NewReader("quantity_sold=1")
	req := httptest.NewRequest("POST", "/items/itm-usb-c/sell", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without csrf token, got %d", resp.StatusCode)
	}
}
