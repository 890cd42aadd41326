package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	"shoptrack/internal/http/handlers"
	"shoptrack/internal/repos"
)

func newReportApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db)
	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Get("/report", deps.ReportHandler.Page)
	app.Get("/report/download/:timeframe", deps.ReportHandler.Download)
	app.Get("/repairs/report/download/:timeframe", deps.RepairHandler.Download)
	return app
}

func TestReportDownloadServesPDF(t *testing.T) {
	app := newReportApp(t)

	for _, tf := range []string{"daily", "weekly", "monthly"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/report/download/"+tf, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("timeframe %s: expected 200, got %d", tf, resp.StatusCode)
		}
		if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("timeframe %s: expected application/pdf, got %q", tf, ct)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, tf) {
			t.Fatalf("timeframe %s: attachment filename missing timeframe, got %q", tf, cd)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatal(err)
		}
		if len(body) < 4 || string(body[:4]) != "%PDF" {
			t.Fatalf("timeframe %s: body is not a PDF", tf)
		}
	}
}

func TestReportDownloadRejectsUnknownTimeframe(t *testing.T) {
	app := newReportApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/report/download/yearly", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for yearly, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Invalid timeframe") {
		t.Fatalf("expected invalid timeframe message, got %q", string(body))
	}
}

func TestRepairReportDownloadServesPDF(t *testing.T) {
	app := newReportApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/repairs/report/download/monthly", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if len(body) < 4 || string(body[:4]) != "%PDF" {
		t.Fatal("body is not a PDF")
	}
}

func TestReportPageRendersAllSections(t *testing.T) {
	app := newReportApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/report", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	page := strings.ToLower(string(body))
	for _, tf := range []string{"daily", "weekly", "monthly"} {
		if !strings.Contains(page, tf) {
			t.Fatalf("report page missing %s section", tf)
		}
	}
}
