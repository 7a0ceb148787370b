package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string         `mapstructure:"port"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Events   EventsConfig   `mapstructure:"events"`
	Razorpay RazorpayConfig `mapstructure:"razorpay"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Payment  PaymentConfig  `mapstructure:"payment"`
}

type DatabaseConfig struct {
	Driver string      `mapstructure:"driver"`
	DSN    string      `mapstructure:"dsn"`
	MySQL  MySQLConfig `mapstructure:"mysql"`
}

type MySQLConfig struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Host string `mapstructure:"host"`
}

type EventsConfig struct {
	Broker      string `mapstructure:"broker"`
	RabbitMQURL string `mapstructure:"rabbitmq_url"`
	Exchange    string `mapstructure:"exchange"`
	KafkaBroker string `mapstructure:"kafka_broker"`
}

type RazorpayConfig struct {
	KeyID     string        `mapstructure:"key_id"`
	KeySecret string        `mapstructure:"key_secret"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// AdminConfig holds the single shared admin credential. When PasswordHash is
// set it takes precedence over Password.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	PasswordHash string `mapstructure:"password_hash"`
}

type PaymentConfig struct {
	Currency     string `mapstructure:"currency"`
	StrictVerify bool   `mapstructure:"strict_verify"`
}

func DefaultConfig() *Config {
	return &Config{
		Port: "8080",
		Database: DatabaseConfig{
			Driver: "mysql",
			MySQL: MySQLConfig{
				Host:     "localhost",
				Port:     "3306",
				Database: "storefront",
			},
		},
		Events: EventsConfig{
			Broker:   "none",
			Exchange: "storefront.exchange",
		},
		Razorpay: RazorpayConfig{
			KeyID:     "rzp_test_placeholder",
			KeySecret: "razorpay_secret_placeholder",
			BaseURL:   "https://api.razorpay.com/v1",
			Timeout:   10 * time.Second,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Payment: PaymentConfig{
			Currency: "INR",
		},
	}
}

// config key -> env var. Names match the variables the service has
// always been deployed with.
var envBindings = map[string]string{
	"port":                    "PORT",
	"database.driver":         "DB_DRIVER",
	"database.dsn":            "DB_DSN",
	"database.mysql.user":     "MYSQL_USER",
	"database.mysql.password": "MYSQL_PASSWORD",
	"database.mysql.host":     "MYSQL_HOST",
	"database.mysql.port":     "MYSQL_PORT",
	"database.mysql.database": "MYSQL_DATABASE",
	"redis.host":              "REDIS_HOST",
	"events.broker":           "EVENTS_BROKER",
	"events.rabbitmq_url":     "RABBITMQ_URL",
	"events.exchange":         "EVENTS_EXCHANGE",
	"events.kafka_broker":     "KAFKA_BROKER",
	"razorpay.key_id":         "RAZORPAY_KEY_ID",
	"razorpay.key_secret":     "RAZORPAY_KEY_SECRET",
	"razorpay.base_url":       "RAZORPAY_BASE_URL",
	"razorpay.timeout":        "RAZORPAY_TIMEOUT",
	"admin.username":          "ADMIN_USERNAME",
	"admin.password":          "ADMIN_PASSWORD",
	"admin.password_hash":     "ADMIN_PASSWORD_HASH",
	"payment.currency":        "PAYMENT_CURRENCY",
	"payment.strict_verify":   "PAYMENT_STRICT_VERIFY",
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("port", cfg.Port)
	v.SetDefault("database.driver", cfg.Database.Driver)
	v.SetDefault("database.dsn", cfg.Database.DSN)
	v.SetDefault("database.mysql.user", cfg.Database.MySQL.User)
	v.SetDefault("database.mysql.password", cfg.Database.MySQL.Password)
	v.SetDefault("database.mysql.host", cfg.Database.MySQL.Host)
	v.SetDefault("database.mysql.port", cfg.Database.MySQL.Port)
	v.SetDefault("database.mysql.database", cfg.Database.MySQL.Database)
	v.SetDefault("redis.host", cfg.Redis.Host)
	v.SetDefault("events.broker", cfg.Events.Broker)
	v.SetDefault("events.rabbitmq_url", cfg.Events.RabbitMQURL)
	v.SetDefault("events.exchange", cfg.Events.Exchange)
	v.SetDefault("events.kafka_broker", cfg.Events.KafkaBroker)
	v.SetDefault("razorpay.key_id", cfg.Razorpay.KeyID)
	v.SetDefault("razorpay.key_secret", cfg.Razorpay.KeySecret)
	v.SetDefault("razorpay.base_url", cfg.Razorpay.BaseURL)
	v.SetDefault("razorpay.timeout", cfg.Razorpay.Timeout)
	v.SetDefault("admin.username", cfg.Admin.Username)
	v.SetDefault("admin.password", cfg.Admin.Password)
	v.SetDefault("admin.password_hash", cfg.Admin.PasswordHash)
	v.SetDefault("payment.currency", cfg.Payment.Currency)
	v.SetDefault("payment.strict_verify", cfg.Payment.StrictVerify)
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch strings.ToLower(c.Events.Broker) {
	case "none", "amqp", "kafka":
	default:
		return fmt.Errorf("unsupported events broker %q", c.Events.Broker)
	}
	if c.Razorpay.KeyID == "" || c.Razorpay.KeySecret == "" {
		return fmt.Errorf("razorpay key id and secret must be set")
	}
	if c.Admin.Username == "" || (c.Admin.Password == "" && c.Admin.PasswordHash == "") {
		return fmt.Errorf("admin credentials must be set")
	}
	return nil
}

// MySQLDSN renders a DSN from the MYSQL_* settings unless an explicit DSN was
// given.
func (d DatabaseConfig) MySQLDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	m := d.MySQL
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.Database)
}
