// internal/app/features/login/login.go

// Package login authenticates back-office admins and issues the
// session cookie. Responses are JSON; the admin UI owns the form.
//
// Failed attempts are rate limited per client IP with the same
// fixed-window limiter the enquiry intake uses, so credential stuffing
// hits a wall before bcrypt does.
package login

import (
	"net/http"

	adminstore "github.com/clearpathvisa/clearpath/internal/app/store/admins"
	"github.com/clearpathvisa/clearpath/internal/app/system/auth"
	"github.com/clearpathvisa/clearpath/internal/app/system/authutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/network"
	"github.com/clearpathvisa/clearpath/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// timingDummyHash is a bcrypt hash of a random string nobody knows.
// Checked when the email has no account so the response time matches
// the wrong-password path.
const timingDummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Handler processes admin sign-in.
type Handler struct {
	admins     *adminstore.Store
	sessionMgr *auth.SessionManager
	limiter    ratelimit.Limiter
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, limiter ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{
		admins:     adminstore.New(db),
		sessionMgr: sessionMgr,
		limiter:    limiter,
		logger:     logger,
	}
}

// Routes returns the login endpoint. Mounted at /api/auth/login.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.login)
	return r
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required" label:"Password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		fields := make(map[string]string, len(result.Errors))
		for _, e := range result.Errors {
			fields[e.Field] = e.Message
		}
		jsonutil.ValidationError(w, fields)
		return
	}

	ip := network.GetClientIP(r)
	if !h.limiter.Allow(r.Context(), "login:"+ip) {
		h.logger.Warn("login rate limit exceeded", zap.String("ip", ip))
		jsonutil.TooManyRequests(w, "too many login attempts, please try again shortly")
		return
	}

	admin, err := h.admins.GetByEmail(r.Context(), in.Email)
	if err == mongo.ErrNoDocuments {
		authutil.CheckPassword(in.Password, timingDummyHash)
		jsonutil.Unauthorized(w, "invalid email or password")
		return
	}
	if err != nil {
		h.logger.Error("failed to load admin for login", zap.Error(err))
		jsonutil.InternalError(w, "login failed")
		return
	}

	if !authutil.CheckPassword(in.Password, admin.PasswordHash) {
		h.logger.Warn("failed login attempt",
			zap.String("email", admin.Email),
			zap.String("ip", ip),
		)
		jsonutil.Unauthorized(w, "invalid email or password")
		return
	}

	token, err := auth.GenerateSessionToken()
	if err != nil {
		h.logger.Error("failed to generate session token", zap.Error(err))
		jsonutil.InternalError(w, "login failed")
		return
	}
	if err := h.sessionMgr.CreateSession(w, r, admin.ID, admin.Role, token); err != nil {
		h.logger.Error("failed to create session", zap.Error(err))
		jsonutil.InternalError(w, "login failed")
		return
	}

	h.logger.Info("admin signed in",
		zap.String("id", admin.ID.Hex()),
		zap.String("role", admin.Role),
	)
	jsonutil.OK(w, map[string]any{
		"id":        admin.ID.Hex(),
		"email":     admin.Email,
		"full_name": admin.FullName,
		"role":      admin.Role,
	})
}
