package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pmdadmin/internal/flagx"
	"github.com/dmitrijs2005/pmdadmin/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations may be
// strings ("30s") or integer nanoseconds. Absent keys leave the current
// value untouched.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	EndpointAddrGRPC      string          `json:"endpoint_addr_grpc"`
	DatabaseDriver        string          `json:"database_driver"`
	DatabaseDSN           string          `json:"database_dsn"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	DocumentsCatalogURL   string          `json:"documents_catalog_url"`
	DocumentsFetchAction  *string         `json:"documents_fetch_action"`
	GalleryCatalogURL     string          `json:"gallery_catalog_url"`
	GalleryFetchAction    *string         `json:"gallery_fetch_action"`
	CatalogToken          string          `json:"catalog_token"`
	CatalogTimeout        *timex.Duration `json:"catalog_timeout"`
	MirrorStoreUploads    *bool           `json:"mirror_store_uploads"`
	CatalogTokenInQuery   *bool           `json:"catalog_token_in_query"`
	BlobBackend           string          `json:"blob_backend"`
	S3AccessKey           string          `json:"s3_access_key"`
	S3SecretKey           string          `json:"s3_secret_key"`
	S3Bucket              string          `json:"s3_bucket"`
	S3Region              string          `json:"s3_region"`
	S3BaseEndpoint        string          `json:"s3_base_endpoint"`
	GCSBucket             string          `json:"gcs_bucket"`
	GCSCredentials        string          `json:"gcs_credentials"`
	PublicBaseURL         string          `json:"public_base_url"`
	RedisURL              string          `json:"redis_url"`
	CacheTTL              *timex.Duration `json:"cache_ttl"`
	LogFormat             string          `json:"log_format"`
	HealthProbeInterval   *timex.Duration `json:"health_probe_interval"`
	CORSOrigins           []string        `json:"cors_origins"`
}

// parseJson loads the file named by -c or -config, if any, and overlays
// it onto config. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.DocumentsCatalogURL, c.DocumentsCatalogURL)
	setString(&config.GalleryCatalogURL, c.GalleryCatalogURL)
	setString(&config.CatalogToken, c.CatalogToken)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.GCSBucket, c.GCSBucket)
	setString(&config.GCSCredentials, c.GCSCredentials)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	setString(&config.RedisURL, c.RedisURL)
	setString(&config.LogFormat, c.LogFormat)

	// fetch actions may legitimately be blank
	if c.DocumentsFetchAction != nil {
		config.DocumentsFetchAction = *c.DocumentsFetchAction
	}
	if c.GalleryFetchAction != nil {
		config.GalleryFetchAction = *c.GalleryFetchAction
	}
	if c.MirrorStoreUploads != nil {
		config.MirrorStoreUploads = *c.MirrorStoreUploads
	}
	if c.CatalogTokenInQuery != nil {
		config.CatalogTokenInQuery = *c.CatalogTokenInQuery
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.CatalogTimeout != nil {
		config.CatalogTimeout = c.CatalogTimeout.Duration
	}
	if c.CacheTTL != nil {
		config.CacheTTL = c.CacheTTL.Duration
	}
	if c.HealthProbeInterval != nil {
		config.HealthProbeInterval = c.HealthProbeInterval.Duration
	}
	if c.CORSOrigins != nil {
		config.CORSOrigins = c.CORSOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
