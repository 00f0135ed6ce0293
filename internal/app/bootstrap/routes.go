// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	adminapifeature "github.com/clearpathvisa/clearpath/internal/app/features/adminapi"
	enquiryapifeature "github.com/clearpathvisa/clearpath/internal/app/features/enquiryapi"
	healthfeature "github.com/clearpathvisa/clearpath/internal/app/features/health"
	loginfeature "github.com/clearpathvisa/clearpath/internal/app/features/login"
	logoutfeature "github.com/clearpathvisa/clearpath/internal/app/features/logout"
	mediaapifeature "github.com/clearpathvisa/clearpath/internal/app/features/mediaapi"
	publicsitefeature "github.com/clearpathvisa/clearpath/internal/app/features/publicsite"
	adminstore "github.com/clearpathvisa/clearpath/internal/app/store/admins"
	"github.com/clearpathvisa/clearpath/internal/app/system/apicors"
	"github.com/clearpathvisa/clearpath/internal/app/system/auth"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/ratelimit"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Route map:
//   - /api/*            public read API (published content only)
//   - /api/enquiries    public enquiry intake (rate limited per IP)
//   - /api/auth/*       admin login/logout
//   - /api/admin/*      back office (session auth, editor or superadmin)
//   - /media/*          uploaded media serving
//   - /health, /readyz  probes for load balancers and orchestrators
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the UserFetcher so LoadSessionUser fetches fresh admin data on
	// each request. Role changes and deleted accounts take effect immediately.
	sessionMgr.SetUserFetcher(adminstore.NewFetcher(deps.MongoDatabase, logger))

	// Rate limiters for the public enquiry endpoint and login attempts.
	// The memory backend is per-process; deployments running more than one
	// instance should set rate_limit_backend=mongo so all instances share
	// one counter per client.
	var enquiryLimiter, loginLimiter ratelimit.Limiter
	switch appCfg.RateLimitBackend {
	case "mongo":
		enquiryLimiter = ratelimit.NewMongo(deps.MongoDatabase, appCfg.EnquiryRateLimitMax, appCfg.EnquiryRateLimitWindow)
		loginLimiter = ratelimit.NewMongo(deps.MongoDatabase, appCfg.LoginRateLimitMax, appCfg.LoginRateLimitWindow)
	default:
		enquiryLimiter = ratelimit.NewMemory(appCfg.EnquiryRateLimitMax, appCfg.EnquiryRateLimitWindow)
		loginLimiter = ratelimit.NewMemory(appCfg.LoginRateLimitMax, appCfg.LoginRateLimitWindow)
	}

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	// Public routes simply have no session, which is fine.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection middleware with path-based exemption for JSON API
	// routes. The API is consumed by a JS front end that sends JSON bodies;
	// the session cookie is SameSite=Lax so cross-site form posts cannot
	// reach the state-changing endpoints. Cookie name is "clearpath_csrf" to
	// avoid collisions with other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("clearpath_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			jsonutil.Forbidden(w, "CSRF token invalid or missing")
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	// Skip CSRF for /api/* (JSON with SameSite session cookie) and /media/*
	// (read-only streaming). Everything else goes through the CSRF handler.
	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			path := req.URL.Path
			if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/media/") {
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Public enquiry intake (rate limited per client IP). The public
	// endpoints carry no cookies, so they get permissive CORS for
	// front ends hosted on other origins.
	enquiryHandler := enquiryapifeature.NewHandler(deps.MongoDatabase, enquiryLimiter, logger)
	r.Route("/api/enquiries", func(sr chi.Router) {
		sr.Use(apicors.Middleware())
		sr.Mount("/", enquiryapifeature.Routes(enquiryHandler))
	})

	// Admin authentication
	loginHandler := loginfeature.NewHandler(deps.MongoDatabase, sessionMgr, loginLimiter, logger)
	r.Mount("/api/auth/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/api/auth/logout", logoutfeature.Routes(logoutHandler))

	// Back office API. The router admits any signed-in admin; the stores
	// narrow destructive and license operations to superadmin.
	adminHandler := adminapifeature.NewHandler(deps.MongoDatabase, logger)
	mediaHandler := mediaapifeature.NewHandler(deps.MongoDatabase, deps.FileStorage, logger)
	r.Route("/api/admin", func(sr chi.Router) {
		sr.Use(sessionMgr.RequireRole("superadmin", "editor"))
		sr.Mount("/media", mediaapifeature.AdminRoutes(mediaHandler))
		sr.Mount("/", adminapifeature.Routes(adminHandler))
	})

	// Uploaded media, streamed by ID so storage paths stay internal
	r.Mount("/media", mediaapifeature.PublicRoutes(mediaHandler))

	// Public read API (published content only). Mounted last at /api so the
	// more specific mounts above win.
	publicHandler := publicsitefeature.NewHandler(deps.MongoDatabase, logger)
	r.Route("/api", func(sr chi.Router) {
		sr.Use(apicors.Middleware())
		sr.Mount("/", publicsitefeature.Routes(publicHandler))
	})

	// Local file storage fallback for direct URL serving (S3 deployments
	// serve through CloudFront instead).
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// 404 catch-all for unmatched routes
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonutil.NotFound(w, "not found")
	})

	return r, nil
}
