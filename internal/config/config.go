package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// AdminCredential - одна пара логин/пароль из allow-list администраторов.
// Password может быть либо bcrypt-хешем ($2a$...), либо открытым текстом.
type AdminCredential struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret   string            `yaml:"jwt_secret"`
		TokenTTLMin int               `yaml:"token_ttl_minutes"`
		Admins      []AdminCredential `yaml:"admins"`
	} `yaml:"auth"`

	Tracking struct {
		// Хосты, на которых телеметрия и аудит-логи подавляются
		// (локальная разработка и preview-деплои).
		RestrictedHosts []string `yaml:"restricted_hosts"`
		GeoEndpoint     string   `yaml:"geo_endpoint"`
		GeoTimeoutSec   int      `yaml:"geo_timeout_seconds"`
		QueueSize       int      `yaml:"queue_size"`
	} `yaml:"tracking"`
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения (режим теста)")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")

	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "ulp@2024"
	}
	cfg.Auth.Admins = []AdminCredential{{Username: username, Password: password}}

	if hosts := os.Getenv("RESTRICTED_HOSTS"); hosts != "" {
		cfg.Tracking.RestrictedHosts = strings.Split(hosts, ",")
	}

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-only-secret"
	}
	if cfg.Auth.TokenTTLMin <= 0 {
		cfg.Auth.TokenTTLMin = 8 * 60 // рабочая смена
	}
	if len(cfg.Tracking.RestrictedHosts) == 0 {
		cfg.Tracking.RestrictedHosts = []string{"localhost", "vercel.app"}
	}
	if cfg.Tracking.GeoEndpoint == "" {
		cfg.Tracking.GeoEndpoint = "https://ipapi.co"
	}
	if cfg.Tracking.GeoTimeoutSec <= 0 {
		cfg.Tracking.GeoTimeoutSec = 3
	}
	if cfg.Tracking.QueueSize <= 0 {
		cfg.Tracking.QueueSize = 256
	}
}

// IsRestrictedHost проверяет, относится ли host к "ограниченным" —
// локальная разработка или preview-домен, где трекинг не пишется.
// Сравнение подстрокой, как в исходной проверке host.includes(...).
func (c *Config) IsRestrictedHost(host string) bool {
	for _, restricted := range c.Tracking.RestrictedHosts {
		if restricted == "" {
			continue
		}
		if strings.Contains(host, strings.TrimSpace(restricted)) {
			return true
		}
	}
	return false
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
