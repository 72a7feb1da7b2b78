package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Observ   ObservabilityConfig
	Business BusinessConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	// DSN in go-sql-driver format, e.g. user:pass@tcp(host:3306)/pos?parseTime=true
	DSN string
	// TLSCACert holds the CA certificate PEM for the managed MySQL endpoint.
	// Passed to the driver in memory; empty disables TLS.
	TLSCACert string
}

type KafkaConfig struct {
	Brokers       []string
	TopicPurchase string
	ConsumerGroup string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type BusinessConfig struct {
	// Fallbacks applied when a purchase request omits the field.
	DefaultStoreCode string
	DefaultPosNo     string
	// Timezone used to stamp transactions regardless of server locale.
	Timezone string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			DSN:       getEnv("DATABASE_DSN", "pos:secret@tcp(localhost:3306)/pos?parseTime=true"),
			TLSCACert: normalizeCertPEM(os.Getenv("DB_SSL_CA_CERT")),
		},
		Kafka: KafkaConfig{
			Brokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			TopicPurchase: getEnv("KAFKA_TOPIC_PURCHASE_EVENTS", "purchase-events"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "pos-service-group"),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Business: BusinessConfig{
			DefaultStoreCode: getEnv("DEFAULT_STORE_CODE", "30"),
			DefaultPosNo:     getEnv("DEFAULT_POS_NO", "90"),
			Timezone:         getEnv("BUSINESS_TIMEZONE", "Asia/Tokyo"),
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

// normalizeCertPEM undoes the escaping applied when a multi-line PEM is
// stuffed into a single env var.
func normalizeCertPEM(pem string) string {
	if pem == "" {
		return ""
	}
	pem = strings.ReplaceAll(pem, `\n`, "\n")
	return strings.ReplaceAll(pem, `\`, "")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
