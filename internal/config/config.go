package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	NOTIFICATION_TRANSPORT_SES      = "ses"
	NOTIFICATION_TRANSPORT_RABBITMQ = "rabbitmq"
)

type Config struct {
	IsTestMode     bool     `env:"TEST_MODE" envDefault:"false"`
	Port           uint16   `env:"PORT" envDefault:"9090"`
	PublicBaseURL  string   `env:"PUBLIC_BASE_URL"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	SentryDsn      *url.URL `env:"SENTRY_DSN"`

	Secret           string `env:"SECRET"`
	BcryptHasherCost int    `env:"BCRYPT_HASHER_COST" envDefault:"10"`

	PostgresqlURL  string `env:"POSTGRESQL_URL"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"false"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`
	RedisURL       string `env:"REDIS_URL"`

	ConfirmEmailValidDurationHours  int           `env:"CONFIRM_EMAIL_VALID_DURATION_HOURS" envDefault:"24"`
	PasswordResetValidDurationHours int           `env:"PASSWORD_RESET_VALID_DURATION_HOURS" envDefault:"2"`
	SessionLifetime                 time.Duration `env:"SESSION_LIFETIME" envDefault:"336h"`
	SessionCleanupInterval          time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`

	NotificationTransport string `env:"NOTIFICATION_TRANSPORT" envDefault:"ses"`

	RabbitmqURL                  string `env:"RABBITMQ_URL"`
	RabbitmqNotificationExchange string `env:"RABBITMQ_NOTIFICATION_EXCHANGE" envDefault:"notifications"`
	RabbitmqNotificationQueue    string `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"account-emails"`
	RabbitmqNotificationRK       string `env:"RABBITMQ_NOTIFICATION_ROUTING_KEY" envDefault:"account-email"`

	AwsRegion                     string `env:"AWS_REGION" envDefault:"eu-central-1"`
	AwsAccessKey                  string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                  string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                string `env:"AWS_EMAIL_SENDER"`
	AwsEmailConfirmEmailTemplate  string `env:"AWS_EMAIL_CONFIRM_EMAIL_TEMPLATE" envDefault:"BlogConfirmEmail"`
	AwsEmailResetPasswordTemplate string `env:"AWS_EMAIL_RESET_PASSWORD_TEMPLATE" envDefault:"BlogResetPassword"`

	GoogleRecaptchaSiteKey        string        `env:"GOOGLE_RECAPTCHA_SITE_KEY"`
	GoogleRecaptchaSecretKey      string        `env:"GOOGLE_RECAPTCHA_SECRET_KEY"`
	GoogleRecaptchaScoreThreshold float64       `env:"GOOGLE_RECAPTCHA_SCORE_THRESHOLD" envDefault:"0.5"`
	GoogleRecaptchaRequestTimeout time.Duration `env:"GOOGLE_RECAPTCHA_REQUEST_TIMEOUT" envDefault:"5s"`
}

// Load reads the configuration of the web server.
func Load() (*Config, error) {
	return load((*Config).validate)
}

// LoadMailer reads the configuration of cmd/mailer, which only needs RabbitMQ and SES.
func LoadMailer() (*Config, error) {
	return load((*Config).validateMailer)
}

func load(validate func(*Config) error) (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	if err := validate(config); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return fmt.Errorf("SECRET must not be empty")
	}
	if c.PostgresqlURL == "" {
		return fmt.Errorf("POSTGRESQL_URL must be set")
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL must be set")
	}
	base, err := url.Parse(c.PublicBaseURL)
	if err != nil || !base.IsAbs() {
		return fmt.Errorf("PUBLIC_BASE_URL must be an absolute URL, got %q", c.PublicBaseURL)
	}

	switch c.NotificationTransport {
	case NOTIFICATION_TRANSPORT_SES:
		if c.AwsEmailSender == "" && !c.IsTestMode {
			return fmt.Errorf("AWS_EMAIL_SENDER must be set")
		}
	case NOTIFICATION_TRANSPORT_RABBITMQ:
		if c.RabbitmqURL == "" {
			return fmt.Errorf("RABBITMQ_URL must be set")
		}
	default:
		return fmt.Errorf("invalid NOTIFICATION_TRANSPORT value: %q", c.NotificationTransport)
	}

	if c.ConfirmEmailValidDurationHours <= 0 {
		return fmt.Errorf("invalid CONFIRM_EMAIL_VALID_DURATION_HOURS value: %d", c.ConfirmEmailValidDurationHours)
	}
	if c.PasswordResetValidDurationHours <= 0 {
		return fmt.Errorf("invalid PASSWORD_RESET_VALID_DURATION_HOURS value: %d", c.PasswordResetValidDurationHours)
	}
	if !c.IsTestMode && c.GoogleRecaptchaSecretKey == "" {
		return fmt.Errorf("GOOGLE_RECAPTCHA_SECRET_KEY must be set")
	}
	return nil
}

func (c *Config) validateMailer() error {
	if !c.UsesRabbitmq() {
		return fmt.Errorf("mailer requires NOTIFICATION_TRANSPORT=%s, got %q", NOTIFICATION_TRANSPORT_RABBITMQ, c.NotificationTransport)
	}
	if c.RabbitmqURL == "" {
		return fmt.Errorf("RABBITMQ_URL must be set")
	}
	if c.AwsEmailSender == "" {
		return fmt.Errorf("AWS_EMAIL_SENDER must be set")
	}
	return nil
}

// UsesRabbitmq reports whether account emails are queued for cmd/mailer.
func (c *Config) UsesRabbitmq() bool {
	return c.NotificationTransport == NOTIFICATION_TRANSPORT_RABBITMQ
}
