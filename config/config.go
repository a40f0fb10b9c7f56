package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresURL string
	MongoURL    string
	DBType      string
	JWTSecret   string
	Port        string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		PostgresURL: os.Getenv("POSTGRES_URL"),
		MongoURL:    os.Getenv("MONGO_URL"),
		DBType:      os.Getenv("DB_TYPE"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        os.Getenv("PORT"),
	}
	if cfg.DBType == "" {
		cfg.DBType = "mongo"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	// Refuse to start without the settings the auth core depends on.
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in environment")
	}
	switch cfg.DBType {
	case "postgres":
		if cfg.PostgresURL == "" {
			log.Fatal("POSTGRES_URL not set in environment")
		}
	case "mongo":
		if cfg.MongoURL == "" {
			log.Fatal("MONGO_URL not set in environment")
		}
	}

	return cfg
}
