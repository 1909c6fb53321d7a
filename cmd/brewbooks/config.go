package main

import "os"

// Config is assembled from environment variables, optionally via a
// .env file in the working directory.
type Config struct {
	// Store backend: jsonfile, sqlite, mongo, or memory.
	Store string
	// Data is the file path (jsonfile, sqlite) or connection URI
	// (mongo) for the chosen backend.
	Data string

	// Cloud snapshot location.
	GCSBucket string
	GCSObject string

	// ShopName appears on exported invoices.
	ShopName string

	LogLevel  string
	LogFormat string
}

func loadConfig() *Config {
	return &Config{
		Store:     getEnv("BREWBOOKS_STORE", "jsonfile"),
		Data:      getEnv("BREWBOOKS_DATA", "brewbooks.json"),
		GCSBucket: getEnv("BREWBOOKS_GCS_BUCKET", ""),
		GCSObject: getEnv("BREWBOOKS_GCS_OBJECT", "brewbooks.json"),
		ShopName:  getEnv("BREWBOOKS_SHOP_NAME", "Brew Books"),
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
