package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	TemplatesDir string
}

func Load() Config {
	// Local development keeps settings in a .env file; absence is fine.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "shoptrack.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./shoptrack.log"
	}
	tpl := os.Getenv("TEMPLATES_DIR")
	if tpl == "" {
		tpl = "./web/templates"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, TemplatesDir: tpl}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TEMPLATES_DIR=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TemplatesDir)
	return cfg
}
