package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	usecasecontract "github.com/mikiasgoitom/BookSocialNetwork/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	Port        string `envconfig:"PORT" default:"8080"`
	AppBaseURL  string `envconfig:"APP_BASE_URL" default:"http://localhost:8080"`

	MongoURI    string `envconfig:"MONGODB_URI" required:"true"`
	MongoDBName string `envconfig:"MONGODB_DB_NAME" default:"book_social_network"`
	RedisURL    string `envconfig:"REDIS_URL"`

	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTExpiration time.Duration `envconfig:"JWT_EXPIRATION" default:"24h"`

	ActivationURL        string        `envconfig:"ACTIVATION_URL" default:"http://localhost:4200/activate-account"`
	ActivationCodeLength int           `envconfig:"ACTIVATION_CODE_LENGTH" default:"6"`
	ActivationTokenTTL   time.Duration `envconfig:"ACTIVATION_TOKEN_TTL" default:"15m"`

	SMTPHost     string `envconfig:"EMAIL_HOST" default:"localhost"`
	SMTPPort     string `envconfig:"EMAIL_PORT" default:"1025"`
	SMTPUsername string `envconfig:"EMAIL_USERNAME"`
	SMTPPassword string `envconfig:"EMAIL_APP_PASSWORD"`
	SMTPFrom     string `envconfig:"EMAIL_FROM" default:"no-reply@booksocial.network"`
	MailWorkers  int    `envconfig:"MAIL_WORKERS" default:"2"`
	MailQueue    int    `envconfig:"MAIL_QUEUE_SIZE" default:"100"`

	UploadPath string `envconfig:"UPLOAD_PATH" default:"./uploads"`

	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"10"`
	CORSAllowedOrigins string  `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:4200"`

	GoogleClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
}

var _ usecasecontract.IConfigProvider = (*Config)(nil)

// LoadConfig reads an optional env file and then the process environment.
func LoadConfig(envFilePath string) (*Config, error) {
	if _, err := os.Stat(envFilePath); err == nil {
		if err := godotenv.Load(envFilePath); err != nil {
			log.Printf("Warning: Could not load %s file: %v", envFilePath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Warning: Error checking %s file: %v", envFilePath, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config from env: %w", err)
	}
	if cfg.ActivationCodeLength < 4 {
		return nil, fmt.Errorf("ACTIVATION_CODE_LENGTH must be at least 4, got %d", cfg.ActivationCodeLength)
	}
	return &cfg, nil
}

// GetAllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetActivationURL returns the frontend page where users type their activation code.
func (c *Config) GetActivationURL() string {
	return c.ActivationURL
}

func (c *Config) GetActivationCodeLength() int {
	return c.ActivationCodeLength
}

func (c *Config) GetActivationTokenTTL() time.Duration {
	return c.ActivationTokenTTL
}
