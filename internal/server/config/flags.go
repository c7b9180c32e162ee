package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/pmdadmin/internal/flagx"
)

var serverFlags = []string{
	"-a", "-g", "-driver", "-d", "-s", "-t",
	"-docs-url", "-gallery-url", "-mirror",
	"-blob", "-bucket", "-public-url",
	"-redis", "-log", "-cors",
}

// parseFlags populates Config fields from command-line flags.
//
//	-a string            HTTP bind address (":8080")
//	-g string            gRPC bind address (":50051")
//	-driver string       database/sql driver: pgx or sqlite
//	-d string            database DSN
//	-s string            JWT HMAC secret
//	-t int               token validity, minutes
//	-docs-url string     documents catalog deployment URL
//	-gallery-url string  gallery catalog deployment URL
//	-mirror=bool         also register store uploads with the catalog
//	-blob string         blob backend: s3 or gcs
//	-bucket string       bucket for the selected blob backend
//	-public-url string   public base URL for stored blobs
//	-redis string        Redis URL for the list cache; empty disables it
//	-log string          log format: json, text or zap
//	-cors string         comma-separated allowed origins
func parseFlags(config *Config) {
	parseFlagsFrom(config, os.Args[1:])
}

func parseFlagsFrom(config *Config, argv []string) {
	args := flagx.FilterArgs(argv, serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDriver, "driver", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.DocumentsCatalogURL, "docs-url", config.DocumentsCatalogURL, "documents catalog URL")
	fs.StringVar(&config.GalleryCatalogURL, "gallery-url", config.GalleryCatalogURL, "gallery catalog URL")
	fs.BoolVar(&config.MirrorStoreUploads, "mirror", config.MirrorStoreUploads, "mirror store uploads to the catalog")
	fs.StringVar(&config.BlobBackend, "blob", config.BlobBackend, "blob backend")
	bucket := fs.String("bucket", "", "blob bucket")
	fs.StringVar(&config.PublicBaseURL, "public-url", config.PublicBaseURL, "public base URL for blobs")
	fs.StringVar(&config.RedisURL, "redis", config.RedisURL, "Redis URL")
	fs.StringVar(&config.LogFormat, "log", config.LogFormat, "log format")
	cors := fs.String("cors", strings.Join(config.CORSOrigins, ","), "allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "bucket":
			if config.BlobBackend == "gcs" {
				config.GCSBucket = *bucket
			} else {
				config.S3Bucket = *bucket
			}
		case "cors":
			config.CORSOrigins = splitList(*cors)
		}
	})
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
