// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body size limits. Put
// everything specific to this application here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: clearpath-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Enquiry intake rate limiting (fixed window per client IP)
	EnquiryRateLimitMax    int           // Max enquiry submissions per window (default: 5)
	EnquiryRateLimitWindow time.Duration // Fixed window size (default: 60s)
	RateLimitBackend       string        // "memory" for single instance, "mongo" for multi-instance

	// Login attempt rate limiting
	LoginRateLimitMax    int           // Max login attempts per window (default: 10)
	LoginRateLimitWindow time.Duration // Fixed window size (default: 15m)

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "uploads/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// Public base URL for the site (canonical links, sitemaps)
	BaseURL string // e.g., "https://clearpathvisa.com" or "http://localhost:8080"

	// Superadmin seeding configuration. When the email is set and no
	// account with it exists, one is created on startup.
	SeedAdminEmail    string
	SeedAdminName     string
	SeedAdminPassword string
}
