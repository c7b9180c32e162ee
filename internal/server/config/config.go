// Package config handles configuration for the server component,
// including defaults, JSON overlay, command-line flags and environment.
package config

import "time"

// Config holds runtime settings for the pmdadmin server.
//
// Secrets (JWT secret, catalog token, S3 keys, GCS credentials) are best
// supplied through the environment; see parseEnv.
type Config struct {
	EndpointAddrHTTP string
	EndpointAddrGRPC string

	DatabaseDriver string
	DatabaseDSN    string

	SecretKey             string
	TokenValidityDuration time.Duration

	DocumentsCatalogURL  string
	DocumentsFetchAction string
	GalleryCatalogURL    string
	GalleryFetchAction   string
	CatalogToken         string
	CatalogTimeout       time.Duration
	MirrorStoreUploads   bool
	// CatalogTokenInQuery also sends the catalog token as ?token= for
	// script deployments that only read query parameters.
	CatalogTokenInQuery bool

	BlobBackend    string
	S3AccessKey    string
	S3SecretKey    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	GCSBucket      string
	GCSCredentials string
	PublicBaseURL  string

	RedisURL string
	CacheTTL time.Duration

	LogFormat           string
	HealthProbeInterval time.Duration
	CORSOrigins         []string
}

// LoadDefaults populates Config with development defaults: a local SQLite
// store, the S3 backend against a local MinIO and no cache.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "file:data/pmdadmin.db?_pragma=busy_timeout(5000)"
	c.SecretKey = ""
	c.TokenValidityDuration = 12 * time.Hour
	c.DocumentsFetchAction = "getDocuments"
	c.GalleryFetchAction = ""
	c.CatalogTimeout = 15 * time.Second
	c.MirrorStoreUploads = false
	c.CatalogTokenInQuery = false
	c.BlobBackend = "s3"
	c.S3AccessKey = "admin"
	c.S3SecretKey = "secretpassword"
	c.S3Bucket = "pmdadmin"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.CacheTTL = time.Minute
	c.LogFormat = "json"
	c.HealthProbeInterval = 15 * time.Second
	c.CORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, command-line flags and finally the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}
