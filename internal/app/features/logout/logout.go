// internal/app/features/logout/logout.go
package logout

import (
	"net/http"

	"github.com/clearpathvisa/clearpath/internal/app/system/auth"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides logout handlers.
type Handler struct {
	sessionMgr *auth.SessionManager
	logger     *zap.Logger
}

// NewHandler creates a new logout Handler.
func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{sessionMgr: sessionMgr, logger: logger}
}

// Routes returns the logout endpoint. Mounted at /api/auth/logout.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.logout)
	return r
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := auth.CurrentUser(r); ok {
		h.logger.Info("admin signed out", zap.String("id", user.ID))
	}
	h.sessionMgr.DestroySession(w, r)
	jsonutil.NoContent(w)
}
