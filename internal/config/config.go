package config

import (
	"encoding/json"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `json:"port"`
	DBURL       string `json:"dbUrl"`
	AutoMigrate bool   `json:"autoMigrate"`
	SeedPath    string `json:"seedPath"` // файл или папка с YAML-фикстурами; пусто — не сидируем

	LogLevel   string `json:"logLevel"`   // debug | info | warn | error
	GinMode    string `json:"ginMode"`    // debug | release | test
	BcryptCost int    `json:"bcryptCost"` // стоимость bcrypt для паролей
}

func def() Config {
	return Config{
		Port:        "3001",
		DBURL:       "postgres://localhost:5432/jobly?sslmode=disable",
		AutoMigrate: false,
		SeedPath:    "",

		LogLevel:   "info",
		GinMode:    "release",
		BcryptCost: 12,
	}
}

func loadJSON(path string, c Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func parseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

// Load собирает конфиг: дефолты → JSON (если файл есть) → .env → ENV → флаги из args.
// Флаг -config с другим путём перечитывает всё с этого файла.
func Load(jsonPath string, args []string) (Config, error) {
	cfg := def()

	if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
		c2, err := loadJSON(jsonPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = c2
	}

	// .env не перетирает уже выставленные переменные окружения
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return cfg, err
		}
	}

	// ENV overrides
	cfg.Port = getenv("JOBLY_PORT", getenv("PORT", cfg.Port))
	cfg.DBURL = getenv("JOBLY_DB_URL", getenv("DATABASE_URL", cfg.DBURL))
	cfg.AutoMigrate = getenvBool("JOBLY_AUTO_MIGRATE", cfg.AutoMigrate)
	cfg.SeedPath = getenv("JOBLY_SEED_PATH", cfg.SeedPath)
	cfg.LogLevel = getenv("JOBLY_LOG_LEVEL", cfg.LogLevel)
	cfg.GinMode = getenv("JOBLY_GIN_MODE", cfg.GinMode)
	cfg.BcryptCost = getenvInt("JOBLY_BCRYPT_COST", cfg.BcryptCost)

	// Flags overrides
	fs := flag.NewFlagSet("jobly", flag.ContinueOnError)
	configPath := fs.String("config", jsonPath, "Path to config JSON")
	port := fs.String("port", cfg.Port, "HTTP port")
	db := fs.String("db", cfg.DBURL, "Postgres URL")
	auto := fs.String("auto-migrate", strconv.FormatBool(cfg.AutoMigrate), "Create tables if missing (true/false)")
	seed := fs.String("seed", cfg.SeedPath, "YAML fixtures file or directory")
	logLevel := fs.String("log-level", cfg.LogLevel, "Log level (debug/info/warn/error)")
	ginMode := fs.String("gin-mode", cfg.GinMode, "Gin mode (debug/release/test)")
	cost := fs.Int("bcrypt-cost", cfg.BcryptCost, "bcrypt cost for password hashes")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if *configPath != jsonPath {
		return Load(*configPath, args)
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.DBURL = strings.TrimSpace(*db)
	if b, ok := parseBool(*auto); ok {
		cfg.AutoMigrate = b
	}
	cfg.SeedPath = strings.TrimSpace(*seed)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
	cfg.GinMode = strings.ToLower(strings.TrimSpace(*ginMode))
	cfg.BcryptCost = *cost

	return cfg, nil
}
