package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config agrupa tudo que o painel precisa para subir. Os valores vêm do
// config.yaml (opcional) e as variáveis de ambiente sempre têm prioridade.
type Config struct {
	Debug bool `yaml:"debug"`

	HTTP struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
		RateLimit      float64  `yaml:"rate_limit"`
		RateBurst      int      `yaml:"rate_burst"`
	} `yaml:"http"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	RabbitMQ struct {
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
	} `yaml:"rabbitmq"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Meilisearch struct {
		Host  string `yaml:"host"`
		Key   string `yaml:"key"`
		Index string `yaml:"index"`
	} `yaml:"meilisearch"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
		LoginURL  string `yaml:"login_url"`
	} `yaml:"auth"`

	Mail struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"mail"`

	WhatsApp struct {
		AccessToken string `yaml:"access_token"`
		PhoneID     string `yaml:"phone_id"`
		BaseURL     string `yaml:"base_url"`
	} `yaml:"whatsapp"`

	Kommo struct {
		Token   string `yaml:"token"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"kommo"`

	FollowUp struct {
		Tick       time.Duration `yaml:"tick"`
		ReportHour int           `yaml:"report_hour"`
	} `yaml:"followup"`

	Log struct {
		Level     string `yaml:"level"`
		File      string `yaml:"file"`
		Console   bool   `yaml:"console"`
		MaxSizeMB int    `yaml:"max_size_mb"`
	} `yaml:"log"`
}

// Load lê .env, depois o yaml (CONFIG_PATH ou ./config.yaml) e por fim aplica o ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.HTTP.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.HTTP.RateLimit = 20
	cfg.HTTP.RateBurst = 40
	cfg.RabbitMQ.User = "guest"
	cfg.RabbitMQ.Password = "guest"
	cfg.RabbitMQ.Host = "localhost"
	cfg.RabbitMQ.Port = "5672"
	cfg.Meilisearch.Index = "documentos"
	cfg.Mail.Port = 587
	cfg.Mail.From = "nao-responda@painel.app"
	cfg.WhatsApp.BaseURL = "https://graph.facebook.com/v18.0"
	cfg.FollowUp.Tick = time.Minute
	cfg.FollowUp.ReportHour = 20
	cfg.Log.Level = "info"
	cfg.Log.Console = true
	cfg.Log.MaxSizeMB = 10
	return cfg
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("erro ao ler config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("erro ao decodificar config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Debug = getEnvAsBool("DEBUG", cfg.Debug)

	cfg.HTTP.Port = getEnv("PORT", cfg.HTTP.Port)
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.HTTP.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.HTTP.RateLimit = getEnvAsFloat("RATE_LIMIT", cfg.HTTP.RateLimit)
	cfg.HTTP.RateBurst = getEnvAsInt("RATE_BURST", cfg.HTTP.RateBurst)

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)

	cfg.RabbitMQ.User = getEnv("RABBITMQ_USER", cfg.RabbitMQ.User)
	cfg.RabbitMQ.Password = getEnv("RABBITMQ_PASS", cfg.RabbitMQ.Password)
	cfg.RabbitMQ.Host = getEnv("RABBITMQ_HOST", cfg.RabbitMQ.Host)
	cfg.RabbitMQ.Port = getEnv("RABBITMQ_PORT", cfg.RabbitMQ.Port)

	cfg.Redis.Address = getEnv("REDIS_ADDR", cfg.Redis.Address)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)

	cfg.Meilisearch.Host = getEnv("MEILI_HOST", cfg.Meilisearch.Host)
	cfg.Meilisearch.Key = getEnv("MEILI_KEY", cfg.Meilisearch.Key)
	cfg.Meilisearch.Index = getEnv("MEILI_INDEX", cfg.Meilisearch.Index)

	cfg.Auth.JWTSecret = getEnv("SUPABASE_JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.LoginURL = getEnv("LOGIN_URL", cfg.Auth.LoginURL)

	cfg.Mail.Host = getEnv("MAIL_HOST", cfg.Mail.Host)
	cfg.Mail.Port = getEnvAsInt("MAIL_PORT", cfg.Mail.Port)
	cfg.Mail.User = getEnv("MAIL_USER", cfg.Mail.User)
	cfg.Mail.Password = getEnv("MAIL_PASS", cfg.Mail.Password)
	cfg.Mail.From = getEnv("MAIL_FROM", cfg.Mail.From)

	cfg.WhatsApp.AccessToken = getEnv("WHATSAPP_ACCESS_TOKEN", cfg.WhatsApp.AccessToken)
	cfg.WhatsApp.PhoneID = getEnv("WHATSAPP_PHONE_ID", cfg.WhatsApp.PhoneID)
	cfg.WhatsApp.BaseURL = getEnv("WHATSAPP_BASE_URL", cfg.WhatsApp.BaseURL)

	cfg.Kommo.Token = getEnv("KOMMO_API_TOKEN", cfg.Kommo.Token)
	cfg.Kommo.BaseURL = getEnv("KOMMO_BASE_URL", cfg.Kommo.BaseURL)

	cfg.FollowUp.Tick = getEnvAsDuration("FOLLOWUP_TICK", cfg.FollowUp.Tick)
	cfg.FollowUp.ReportHour = getEnvAsInt("REPORT_HOUR", cfg.FollowUp.ReportHour)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Log.Console = getEnvAsBool("LOG_CONSOLE", cfg.Log.Console)
}

// Validate barra configurações que impedem a API de funcionar.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL não definido"))
	}
	if c.Auth.JWTSecret == "" && !c.Debug {
		errs = append(errs, errors.New("SUPABASE_JWT_SECRET não definido"))
	}
	if c.FollowUp.ReportHour < 0 || c.FollowUp.ReportHour > 23 {
		errs = append(errs, fmt.Errorf("REPORT_HOUR inválido: %d", c.FollowUp.ReportHour))
	}
	if c.FollowUp.Tick <= 0 {
		errs = append(errs, errors.New("FOLLOWUP_TICK deve ser positivo"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}
