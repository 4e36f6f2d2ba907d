package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Mail      MailConfig
	TextGen   TextGenConfig
	RateLimit RateLimitConfig
	LogLevel  string
	LogFormat string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port            string
	AllowedHosts    []string
	Mode            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	SecureCookies   bool
	// TrustedProxies lists the proxy CIDRs whose X-Forwarded-For is honoured.
	// Empty means the client IP is always the socket peer.
	TrustedProxies []string
}

// StoreConfig selects the user record store implementation ("mongodb" or "memory")
type StoreConfig struct {
	Driver string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	OpTimeout      time.Duration
}

// RedisConfig holds the session revocation store configuration.
// An empty Addr keeps revocations in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// MailConfig holds the verification email gateway configuration
type MailConfig struct {
	BaseURL  string
	APIKey   string
	From     string
	MockMail bool
}

// TextGenConfig holds the message suggestion model configuration
type TextGenConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MockTextGen bool
}

// RateLimitConfig holds per-client limits for anonymous endpoints
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from a .env file, environment variables and config files.
// path is an extra directory searched for config.yaml.
func Load(path string) (*Config, error) {
	// A missing .env is fine, real deployments set the environment directly
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read configuration
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration.
// Keys are registered here so AutomaticEnv can resolve e.g. MONGODB_URI during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"http://localhost:3000"})
	v.SetDefault("Server.Mode", "release")
	v.SetDefault("Server.ShutdownTimeout", 5*time.Second)
	v.SetDefault("Server.RequestTimeout", 60*time.Second)
	v.SetDefault("Server.SecureCookies", false)
	v.SetDefault("Server.TrustedProxies", []string{})
	v.SetDefault("Store.Driver", "mongodb")
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "mystery-message")
	v.SetDefault("MongoDB.ConnectTimeout", 10*time.Second)
	v.SetDefault("MongoDB.OpTimeout", 5*time.Second)
	v.SetDefault("Redis.Addr", "")
	v.SetDefault("Redis.Password", "")
	v.SetDefault("Redis.DB", 0)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("Mail.BaseURL", "https://api.resend.com")
	v.SetDefault("Mail.APIKey", "")
	v.SetDefault("Mail.From", "onboarding@resend.dev")
	v.SetDefault("Mail.MockMail", true)
	v.SetDefault("TextGen.BaseURL", "https://api-inference.huggingface.co")
	v.SetDefault("TextGen.APIKey", "")
	v.SetDefault("TextGen.Model", "openai-community/gpt2")
	v.SetDefault("TextGen.MockTextGen", true)
	v.SetDefault("RateLimit.RequestsPerSecond", 1.0)
	v.SetDefault("RateLimit.Burst", 5)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFormat", "json")
}
