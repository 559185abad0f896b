package config

import (
	"github.com/caarlos0/env/v10"
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Mongo  MongoConfig
	Minio  MinioConfig
	Server ServerConfig
}

// MongoConfig parameters for the metadata document store
type MongoConfig struct {
	URI        string `env:"MONGO_URI,required"`
	DBName     string `env:"MONGO_DBNAME" envDefault:"snaphub"`
	Collection string `env:"MONGO_COLLECTION" envDefault:"photos"`
}

// MinioConfig parameters for the image blob store
type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,required"`
	AccessKey string `env:"MINIO_ACCESS_KEY,required"`
	SecretKey string `env:"MINIO_SECRET_KEY,required"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"photos"`
	PublicURL string `env:"MINIO_PUBLIC_URL,required"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// NewConfig creates a new Config from the environment
func NewConfig() (*Config, error) {
	cfg := new(Config)
	err := env.Parse(cfg)

	return cfg, err
}
