package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"shoptrack/internal/config"
	"shoptrack/internal/http/handlers"
	applog "shoptrack/internal/log"
	"shoptrack/internal/repos"
	"shoptrack/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	// Auth wiring
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	// Templates & app
	engine := html.New(cfg.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- App handlers ----------
	deps := handlers.NewDeps(db)
	loggedIn := handlers.RequireUser(authSvc)

	// Auth routes (login throttled)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), authH.Login)
	app.Post("/logout", authH.Logout)

	// Dashboard
	app.Get("/", loggedIn, deps.DashboardHandler.Home)

	// Inventory
	app.Get("/items", loggedIn, deps.ItemHandler.List)
	app.Get("/items/add", loggedIn, deps.ItemHandler.Form)
	app.Post("/items/add", loggedIn, deps.ItemHandler.Create)
	app.Get("/items/:id/edit", loggedIn, deps.ItemHandler.Form)
	app.Post("/items/:id/edit", loggedIn, deps.ItemHandler.Update)
	app.Post("/items/:id/delete", loggedIn, deps.ItemHandler.Delete)
	app.Get("/items/:id/sell", loggedIn, deps.ItemHandler.SellForm)
	app.Post("/items/:id/sell", loggedIn, deps.ItemHandler.Sell)
	app.Get("/categories/add", loggedIn, deps.CategoryHandler.Form)
	app.Post("/categories/add", loggedIn, deps.CategoryHandler.Create)

	// JSON stock probe used by the sell form
	api := app.Group("/api", loggedIn)
	api.Get("/check-stock", deps.StockAPIHandler.Check)

	// Sales reports
	app.Get("/report", loggedIn, deps.ReportHandler.Page)
	app.Get("/report/download/:timeframe", loggedIn, deps.ReportHandler.Download)

	// Repair tracker
	app.Get("/repairs", loggedIn, deps.RepairHandler.List)
	app.Get("/repairs/new", loggedIn, deps.RepairHandler.Form)
	app.Post("/repairs/new", loggedIn, deps.RepairHandler.Create)
	app.Get("/repairs/:id/edit", loggedIn, deps.RepairHandler.Form)
	app.Post("/repairs/:id/edit", loggedIn, deps.RepairHandler.Update)
	app.Get("/repairs/report", loggedIn, deps.RepairHandler.Report)
	app.Get("/repairs/report/download/:timeframe", loggedIn, deps.RepairHandler.Download)

	// Admin bulk actions
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Post("/inventory/reset", deps.AdminHandler.ResetInventory)
	admin.Post("/repairs/reset", deps.AdminHandler.ResetRepairs)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
