// Package adminapi is the authenticated back-office JSON API: content
// CRUD and publish workflow, enquiry triage, licence and site settings
// management, and admin accounts.
//
// Coarse access control happens at the router (a signed-in editor or
// superadmin session). Fine-grained rules live in the stores, which
// check the principal on every mutation. Handlers here just translate
// HTTP to store calls and store errors back to status codes.
package adminapi

import (
	"net/http"
	"strconv"

	adminstore "github.com/clearpathvisa/clearpath/internal/app/store/admins"
	articlestore "github.com/clearpathvisa/clearpath/internal/app/store/articles"
	countrystore "github.com/clearpathvisa/clearpath/internal/app/store/countries"
	enquirystore "github.com/clearpathvisa/clearpath/internal/app/store/enquiries"
	licensestore "github.com/clearpathvisa/clearpath/internal/app/store/license"
	servicestore "github.com/clearpathvisa/clearpath/internal/app/store/services"
	settingsstore "github.com/clearpathvisa/clearpath/internal/app/store/settings"
	"github.com/clearpathvisa/clearpath/internal/app/store/storeutil"
	teamstore "github.com/clearpathvisa/clearpath/internal/app/store/teammembers"
	testimonialstore "github.com/clearpathvisa/clearpath/internal/app/store/testimonials"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the back-office API.
type Handler struct {
	services     *servicestore.Store
	countries    *countrystore.Store
	articles     *articlestore.Store
	team         *teamstore.Store
	testimonials *testimonialstore.Store
	enquiries    *enquirystore.Store
	license      *licensestore.Store
	settings     *settingsstore.Store
	admins       *adminstore.Store
	logger       *zap.Logger
}

// NewHandler creates a new back-office handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		services:     servicestore.New(db),
		countries:    countrystore.New(db),
		articles:     articlestore.New(db),
		team:         teamstore.New(db),
		testimonials: testimonialstore.New(db),
		enquiries:    enquirystore.New(db),
		license:      licensestore.New(db),
		settings:     settingsstore.New(db),
		admins:       adminstore.New(db),
		logger:       logger,
	}
}

// pathID parses the {id} route param. A malformed id is treated the
// same as a missing record.
func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "not found")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pagination reads limit/page query params, clamping to sane bounds.
func pagination(r *http.Request) (int64, int64) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}

// storeError maps store-layer errors onto HTTP status codes. Handlers
// call it after exhausting their endpoint-specific cases.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch {
	case err == authz.ErrForbidden:
		jsonutil.Forbidden(w, "insufficient role")
	case err == mongo.ErrNoDocuments:
		jsonutil.NotFound(w, what+" not found")
	case err == storeutil.ErrBadStatus:
		jsonutil.BadRequest(w, err.Error())
	case wafflemongo.IsDup(err):
		jsonutil.Conflict(w, what+" conflicts with an existing record")
	default:
		h.logger.Error("store operation failed",
			zap.String("what", what),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		jsonutil.InternalError(w, "operation failed")
	}
}

// statusInput is the body for every publish-workflow endpoint.
type statusInput struct {
	Status string `json:"status" validate:"required,pubstatus" label:"Status"`
}

// fieldMap flattens validation errors for jsonutil.ValidationError.
func fieldMap(result *inputval.Result) map[string]string {
	fields := make(map[string]string, len(result.Errors))
	for _, e := range result.Errors {
		fields[e.Field] = e.Message
	}
	return fields
}
