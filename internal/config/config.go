package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI      string
	Database string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	OTPTTL    time.Duration
	// AdminAuth guards the semester/subject/upload endpoints with an admin token.
	AdminAuth bool
}

type MailConfig struct {
	Address    string
	Password   string
	Host       string
	Port       string
	SenderName string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	UploadBucket    string
}

// AppConfig is populated from the environment. A .env file in the working
// directory is read first; variables already set in the environment win.
type AppConfig struct {
	Port           string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	CORSOrigins    []string
	Mongo          MongoConfig
	Auth           AuthConfig
	Mail           MailConfig
	Redis          RedisConfig
	AWS            AWSConfig
}

func Load() *AppConfig {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: reading .env: %v", err)
	}

	return &AppConfig{
		Port:           getEnv("PORT", "5000"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"*"}),
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017/uniprep"),
			Database: getEnv("MONGODB_DATABASE", "uniprep"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "secret"),
			TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),
			OTPTTL:    getEnvDuration("OTP_TTL", 10*time.Minute),
			AdminAuth: getEnvBool("ADMIN_AUTH", true),
		},
		Mail: MailConfig{
			Address:    getEnv("MAILING_ADDRESS", ""),
			Password:   getEnv("MAILING_SERVICE_PSWD", ""),
			Host:       getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:       getEnv("SMTP_PORT", "587"),
			SenderName: getEnv("MAIL_SENDER_NAME", "UniPrep OTP"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AccessKeySecret: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			UploadBucket:    getEnv("UPLOAD_BUCKET", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping empty items.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
