package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/flagx"
)

// parseEnv applies environment overrides last. The catalog variables keep
// the names the dashboard deployment already uses.
func parseEnv(config *Config) {
	flagx.EnvString("PMD_HTTP_ADDR", &config.EndpointAddrHTTP)
	flagx.EnvString("PMD_GRPC_ADDR", &config.EndpointAddrGRPC)
	flagx.EnvString("PMD_DATABASE_DRIVER", &config.DatabaseDriver)
	flagx.EnvString("PMD_DATABASE_DSN", &config.DatabaseDSN)
	flagx.EnvString("PMD_JWT_SECRET", &config.SecretKey)

	flagx.EnvString("DOCUMENTS_API", &config.DocumentsCatalogURL)
	flagx.EnvString("DOCUMENTS_GET_ACTION", &config.DocumentsFetchAction)
	flagx.EnvString("GALLERY_API", &config.GalleryCatalogURL)
	flagx.EnvString("APPS_SCRIPT_SECRET_TOKEN", &config.CatalogToken)

	flagx.EnvString("PMD_BLOB_BACKEND", &config.BlobBackend)
	flagx.EnvString("PMD_S3_ACCESS_KEY", &config.S3AccessKey)
	flagx.EnvString("PMD_S3_SECRET_KEY", &config.S3SecretKey)
	flagx.EnvString("PMD_S3_BUCKET", &config.S3Bucket)
	flagx.EnvString("PMD_S3_REGION", &config.S3Region)
	flagx.EnvString("PMD_S3_ENDPOINT", &config.S3BaseEndpoint)
	flagx.EnvString("PMD_GCS_BUCKET", &config.GCSBucket)
	flagx.EnvString("GOOGLE_APPLICATION_CREDENTIALS", &config.GCSCredentials)
	flagx.EnvString("PMD_PUBLIC_BASE_URL", &config.PublicBaseURL)

	flagx.EnvString("PMD_REDIS_URL", &config.RedisURL)
	flagx.EnvString("PMD_LOG_FORMAT", &config.LogFormat)

	for key, dst := range map[string]*time.Duration{
		"PMD_TOKEN_TTL":       &config.TokenValidityDuration,
		"PMD_CATALOG_TIMEOUT": &config.CatalogTimeout,
		"PMD_CACHE_TTL":       &config.CacheTTL,
		"PMD_HEALTH_INTERVAL": &config.HealthProbeInterval,
	} {
		if err := flagx.EnvDuration(key, dst); err != nil {
			panic(err)
		}
	}

	for key, dst := range map[string]*bool{
		"PMD_MIRROR_STORE_UPLOADS":   &config.MirrorStoreUploads,
		"PMD_CATALOG_TOKEN_IN_QUERY": &config.CatalogTokenInQuery,
	} {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				panic(err)
			}
			*dst = b
		}
	}

	var cors string
	flagx.EnvString("PMD_CORS_ORIGINS", &cors)
	if cors != "" {
		config.CORSOrigins = splitList(cors)
	}
}
