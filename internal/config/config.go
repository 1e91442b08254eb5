package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	WallAPIBaseURL  string
	WallAPIVersion  string
	WallIntervalMs  int
	WallTimeoutMs   int
	WallRetryMax    int

	TitleThreshold float64
	GroupMode      string

	StrictPhones bool
	HomeAreaCode string

	HideCompanyName bool
	HideAddress     bool
	HideEmail       bool
	IncludeDetails  bool
	MinSalary       int
	HashtagFooter   string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		WallAPIBaseURL: getEnv("WALL_API_BASE_URL", "https://api.vk.com/method"),
		WallAPIVersion: getEnv("WALL_API_VERSION", "5.131"),
		WallIntervalMs: getEnvInt("WALL_INTERVAL_MS", 1200),
		WallTimeoutMs:  getEnvInt("WALL_TIMEOUT_MS", 15000),
		WallRetryMax:   getEnvInt("WALL_RETRY_MAX", 3),

		TitleThreshold: getEnvFloat("TITLE_SIMILARITY_THRESHOLD", 0.4),
		GroupMode:      getEnv("GROUP_MODE", "title"),

		StrictPhones: getEnvBool("STRICT_PHONES", true),
		HomeAreaCode: getEnv("HOME_AREA_CODE", "342"),

		HideCompanyName: getEnvBool("POST_HIDE_COMPANY", false),
		HideAddress:     getEnvBool("POST_HIDE_ADDRESS", false),
		HideEmail:       getEnvBool("POST_HIDE_EMAIL", false),
		IncludeDetails:  getEnvBool("POST_INCLUDE_DETAILS", true),
		MinSalary:       getEnvInt("POST_MIN_SALARY", 0),
		HashtagFooter:   getEnv("POST_HASHTAGS", "#работа #вакансии"),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
