package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every setting of the service.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	MinIO      MinIOConfig      `mapstructure:"minio"`
	AliyunOSS  AliyunOSSConfig  `mapstructure:"aliyun_oss"`
	S3         S3Config         `mapstructure:"s3"`
	Auth       AuthConfig       `mapstructure:"auth"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // gin mode: debug, release, test
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the metadata store.
type DatabaseConfig struct {
	Driver         string        `mapstructure:"driver"` // mongo, mysql, postgres, sqlite, memory
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// RedisConfig: an empty Addr disables Redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig sizes the share-token cache.
type CacheConfig struct {
	TTL  time.Duration `mapstructure:"ttl"`
	Size int           `mapstructure:"size"`
}

type StorageConfig struct {
	Type   string `mapstructure:"type"` // cloudinary, minio, aliyun_oss, s3, memory
	Folder string `mapstructure:"folder"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
	PublicURL       string `mapstructure:"public_url"` // base for object URLs; derived from Endpoint when empty
}

type AliyunOSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"` // e.g. oss-eu-central-1.aliyuncs.com
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

type S3Config struct {
	Region          string `mapstructure:"region"`
	Bucket          string `mapstructure:"bucket"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"` // optional, for S3-compatible providers
	PublicURL       string `mapstructure:"public_url"`
}

// AuthConfig configures the admin gate. Both fields empty disables it.
type AuthConfig struct {
	AdminPassword     string `mapstructure:"admin_password"`
	AdminPasswordHash string `mapstructure:"admin_password_hash"` // bcrypt
}

// Enabled reports whether admin endpoints require a bearer token.
func (a AuthConfig) Enabled() bool {
	return a.AdminPassword != "" || a.AdminPasswordHash != ""
}

type JWTConfig struct {
	SecretKey string        `mapstructure:"secret_key"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

// zap settings
type LogConfig struct {
	OutputPath string `mapstructure:"output_path"`
	ErrorPath  string `mapstructure:"error_path"`
	Level      string `mapstructure:"level"`
}

var AppConfig *Config

// legacyEnv maps config keys to the unprefixed variables older deployments set.
var legacyEnv = map[string][]string{
	"database.uri":          {"MONGODB_URI", "DATABASE_URL"},
	"cloudinary.cloud_name": {"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_NAME"},
	"cloudinary.api_key":    {"CLOUDINARY_API_KEY", "API_KEY"},
	"cloudinary.api_secret": {"CLOUDINARY_API_SECRET", "SECRET_KEY"},
	"server.port":           {"PORT"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.max_upload_bytes", 10<<20)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("database.driver", "mongo")
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "gmi-tir-takip")
	v.SetDefault("database.connect_timeout", 10*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.size", 1024)
	v.SetDefault("storage.type", "cloudinary")
	v.SetDefault("storage.folder", "gmi-tir-documents")
	v.SetDefault("cloudinary.cloud_name", "")
	v.SetDefault("cloudinary.api_key", "")
	v.SetDefault("cloudinary.api_secret", "")
	// zero values so AutomaticEnv can reach these keys during Unmarshal
	for _, key := range []string{
		"minio.endpoint", "minio.access_key_id", "minio.secret_access_key", "minio.bucket_name", "minio.public_url",
		"aliyun_oss.endpoint", "aliyun_oss.access_key_id", "aliyun_oss.secret_access_key", "aliyun_oss.bucket_name",
		"s3.region", "s3.bucket", "s3.access_key_id", "s3.secret_access_key", "s3.endpoint", "s3.public_url",
	} {
		v.SetDefault(key, "")
	}
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("aliyun_oss.use_ssl", true)
	v.SetDefault("auth.admin_password", "")
	v.SetDefault("auth.admin_password_hash", "")
	v.SetDefault("jwt.secret_key", "")
	v.SetDefault("jwt.expires_in", 12*time.Hour)
	v.SetDefault("jwt.issuer", "gmi-tir-takip")
	v.SetDefault("log.output_path", "stdout")
	v.SetDefault("log.error_path", "stderr")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yaml (optional) and the environment into AppConfig.
func LoadConfig() (*Config, error) {
	cfg, err := Load(viper.New())
	if err != nil {
		return nil, err
	}
	AppConfig = cfg
	return cfg, nil
}

// Load resolves the configuration on v. Precedence: prefixed env, legacy env,
// config file, defaults.
func Load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/tir-takip/")

	// TIR_TAKIP_SERVER_PORT -> server.port
	v.SetEnvPrefix("TIR_TAKIP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for key, names := range legacyEnv {
		prefixed := "TIR_TAKIP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		args := append([]string{key, prefixed}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		log.Println("Warning: config file not found, using environment variables and defaults.")
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "mongo", "mysql", "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	switch c.Storage.Type {
	case "cloudinary", "minio", "aliyun_oss", "s3", "memory":
	default:
		return fmt.Errorf("unsupported storage.type %q", c.Storage.Type)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if c.Auth.Enabled() && c.JWT.SecretKey == "" {
		return fmt.Errorf("jwt.secret_key is required when an admin password is set")
	}
	return nil
}
