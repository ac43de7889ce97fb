package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	LogFile       string
	GeminiAPIKey  string
	GeminiModel   string
	AdminEmail    string
	AdminPassword string
	ListSyncURL   string
	ListSyncKey   string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDSN:         getenv("DB_DSN", "lumiere.db"),
		MediaDir:      getenv("MEDIA_DIR", "./web/media"),
		LogFile:       getenv("LOG_FILE", "./lumiere.log"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@lumiere.test"),
		AdminPassword: getenv("ADMIN_PASSWORD", "ChangeMe1!"),
		ListSyncURL:   os.Getenv("LIST_SYNC_URL"),
		ListSyncKey:   os.Getenv("LIST_SYNC_KEY"),
	}

	// Never echo secrets.
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s GEMINI=%v LIST_SYNC=%v",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.GeminiAPIKey != "", cfg.ListSyncURL != "")
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
