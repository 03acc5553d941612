package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultScanPackage is the package tree scanned for components when
// IOC_SCAN_PACKAGE is not set.
const DefaultScanPackage = "github.com/km-arc/go-ioc/app"

// Config is the central typed configuration struct.
type Config struct {
	App AppConfig
	Log LogConfig
	IoC IoCConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

type LogConfig struct {
	Level string // debug | info | warn | error
}

type IoCConfig struct {
	// ScanPackage is the base package path handed to the container's Scan.
	ScanPackage string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	port := GetInt("APP_PORT", defaultPort)
	if port < 1 || port > 65535 {
		port = defaultPort
	}

	return &Config{
		App: AppConfig{
			Name:  Get("APP_NAME", "GoIoC"),
			Env:   Get("APP_ENV", "local"),
			Debug: GetBool("APP_DEBUG", true),
			Port:  strconv.Itoa(port),
		},
		Log: LogConfig{
			Level: Get("LOG_LEVEL", "info"),
		},
		IoC: IoCConfig{
			ScanPackage: Get("IOC_SCAN_PACKAGE", DefaultScanPackage),
		},
	}
}

const defaultPort = 8000

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
