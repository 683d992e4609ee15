package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	DatabaseURL  string
	RedisURL     string
	KafkaBrokers []string

	MaxDBConns              int32
	KafkaTopicUserLifecycle string
	KafkaTopicModeration    string

	OutboxPollInterval time.Duration
	OutboxBatchSize    int

	UniversityEmailDomain string
	UploadDir             string
	TokenTTL              time.Duration
	IdempotencyTTL        time.Duration
	ProfileCacheTTL       time.Duration
	DirectoryPageSize     int
	MaxDocumentBytes      int64
	MaxPhotoBytes         int64
	BcryptCost            int

	JWTKeyID         string
	JWTPrivateKeyPEM string
	JWTPublicKeyPEM  string

	AdminName     string
	AdminEmail    string
	AdminPassword string
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL             string   `yaml:"postgres_url"`
		RedisURL                string   `yaml:"redis_url"`
		KafkaBrokers            []string `yaml:"kafka_brokers"`
		KafkaTopicUserLifecycle string   `yaml:"kafka_topic_user_lifecycle"`
		KafkaTopicModeration    string   `yaml:"kafka_topic_moderation"`
	} `yaml:"dependencies"`
	Directory struct {
		UniversityEmailDomain string `yaml:"university_email_domain"`
		UploadDir             string `yaml:"upload_dir"`
		DirectoryPageSize     int    `yaml:"directory_page_size"`
	} `yaml:"directory"`
	Admin struct {
		Name     string `yaml:"name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:               "student-directory-service",
		HTTPPort:                8080,
		GRPCPort:                9090,
		MaxDBConns:              20,
		KafkaTopicUserLifecycle: "directory.user_lifecycle",
		KafkaTopicModeration:    "directory.moderation",
		OutboxPollInterval:      2 * time.Second,
		OutboxBatchSize:         100,
		UniversityEmailDomain:   "university.edu",
		UploadDir:               "uploads",
		TokenTTL:                24 * time.Hour,
		IdempotencyTTL:          7 * 24 * time.Hour,
		ProfileCacheTTL:         5 * time.Minute,
		DirectoryPageSize:       50,
		MaxDocumentBytes:        5 * 1024 * 1024,
		MaxPhotoBytes:           2 * 1024 * 1024,
		BcryptCost:              0,
		JWTKeyID:                "directory-key-1",
		AdminName:               "Directory Admin",
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if len(f.Dependencies.KafkaBrokers) > 0 {
			cfg.KafkaBrokers = trimNonEmpty(f.Dependencies.KafkaBrokers)
		}
		if f.Dependencies.KafkaTopicUserLifecycle != "" {
			cfg.KafkaTopicUserLifecycle = f.Dependencies.KafkaTopicUserLifecycle
		}
		if f.Dependencies.KafkaTopicModeration != "" {
			cfg.KafkaTopicModeration = f.Dependencies.KafkaTopicModeration
		}
		if f.Directory.UniversityEmailDomain != "" {
			cfg.UniversityEmailDomain = f.Directory.UniversityEmailDomain
		}
		if f.Directory.UploadDir != "" {
			cfg.UploadDir = f.Directory.UploadDir
		}
		if f.Directory.DirectoryPageSize > 0 {
			cfg.DirectoryPageSize = f.Directory.DirectoryPageSize
		}
		if f.Admin.Name != "" {
			cfg.AdminName = f.Admin.Name
		}
		cfg.AdminEmail = f.Admin.Email
		cfg.AdminPassword = f.Admin.Password
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.KafkaBrokers = envCSV("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopicUserLifecycle = envOrDefault("KAFKA_TOPIC_USER_LIFECYCLE", cfg.KafkaTopicUserLifecycle)
	cfg.KafkaTopicModeration = envOrDefault("KAFKA_TOPIC_MODERATION", cfg.KafkaTopicModeration)
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.OutboxPollInterval = time.Duration(envInt("OUTBOX_POLL_SECONDS", int(cfg.OutboxPollInterval.Seconds()))) * time.Second
	cfg.OutboxBatchSize = envInt("OUTBOX_BATCH_SIZE", cfg.OutboxBatchSize)
	cfg.UniversityEmailDomain = envOrDefault("UNIVERSITY_EMAIL_DOMAIN", cfg.UniversityEmailDomain)
	cfg.UploadDir = envOrDefault("UPLOAD_DIR", cfg.UploadDir)
	cfg.TokenTTL = time.Duration(envInt("TOKEN_TTL_HOURS", int(cfg.TokenTTL.Hours()))) * time.Hour
	cfg.IdempotencyTTL = time.Duration(envInt("IDEMPOTENCY_TTL_HOURS", int(cfg.IdempotencyTTL.Hours()))) * time.Hour
	cfg.ProfileCacheTTL = time.Duration(envInt("PROFILE_CACHE_SECONDS", int(cfg.ProfileCacheTTL.Seconds()))) * time.Second
	cfg.DirectoryPageSize = envInt("DIRECTORY_PAGE_SIZE", cfg.DirectoryPageSize)
	cfg.MaxDocumentBytes = int64(envInt("MAX_DOCUMENT_BYTES", int(cfg.MaxDocumentBytes)))
	cfg.MaxPhotoBytes = int64(envInt("MAX_PHOTO_BYTES", int(cfg.MaxPhotoBytes)))
	cfg.BcryptCost = envInt("BCRYPT_COST", cfg.BcryptCost)
	cfg.JWTKeyID = envOrDefault("JWT_KEY_ID", cfg.JWTKeyID)
	cfg.JWTPrivateKeyPEM = envOrDefault("JWT_PRIVATE_KEY_PEM", cfg.JWTPrivateKeyPEM)
	cfg.JWTPublicKeyPEM = envOrDefault("JWT_PUBLIC_KEY_PEM", cfg.JWTPublicKeyPEM)
	cfg.AdminName = envOrDefault("ADMIN_NAME", cfg.AdminName)
	cfg.AdminEmail = envOrDefault("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPassword = envOrDefault("ADMIN_PASSWORD", cfg.AdminPassword)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	items := strings.Split(raw, ",")
	return trimNonEmpty(items)
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
