// Package publicsite serves the read-only JSON API behind the marketing
// site: published services, country guides, knowledge articles, team,
// testimonials, the licence verification page, and site settings.
//
// Everything here is unauthenticated and published-only. The stores
// force the status filter, so nothing in this package can leak a draft.
package publicsite

import (
	"net/http"
	"strconv"

	articlestore "github.com/clearpathvisa/clearpath/internal/app/store/articles"
	countrystore "github.com/clearpathvisa/clearpath/internal/app/store/countries"
	licensestore "github.com/clearpathvisa/clearpath/internal/app/store/license"
	servicestore "github.com/clearpathvisa/clearpath/internal/app/store/services"
	settingsstore "github.com/clearpathvisa/clearpath/internal/app/store/settings"
	teamstore "github.com/clearpathvisa/clearpath/internal/app/store/teammembers"
	testimonialstore "github.com/clearpathvisa/clearpath/internal/app/store/testimonials"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves public content reads.
type Handler struct {
	services     *servicestore.Store
	countries    *countrystore.Store
	articles     *articlestore.Store
	team         *teamstore.Store
	testimonials *testimonialstore.Store
	license      *licensestore.Store
	settings     *settingsstore.Store
	logger       *zap.Logger
}

// NewHandler creates a new public site handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		services:     servicestore.New(db),
		countries:    countrystore.New(db),
		articles:     articlestore.New(db),
		team:         teamstore.New(db),
		testimonials: testimonialstore.New(db),
		license:      licensestore.New(db),
		settings:     settingsstore.New(db),
		logger:       logger,
	}
}

// Routes returns the public read API. Mounted at /api.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/services", h.listServices)
	r.Get("/services/{slug}", h.getService)
	r.Get("/countries", h.listCountries)
	r.Get("/countries/{slug}", h.getCountry)
	r.Get("/articles", h.listArticles)
	r.Get("/articles/{category}/{slug}", h.getArticle)
	r.Get("/team", h.listTeam)
	r.Get("/testimonials", h.listTestimonials)
	r.Get("/license", h.getLicense)
	r.Get("/settings", h.getSettings)

	return r
}

// pagination reads limit/page query params, clamping to sane bounds.
func pagination(r *http.Request) (int64, int64) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.services.ListPublic(r.Context(), limit, page)
	if err != nil {
		h.logger.Error("failed to list public services", zap.Error(err))
		jsonutil.InternalError(w, "failed to load services")
		return
	}
	jsonutil.OK(w, map[string]any{"services": out})
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.services.GetBySlugPublic(r.Context(), chi.URLParam(r, "slug"))
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "service not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load service", zap.String("slug", chi.URLParam(r, "slug")), zap.Error(err))
		jsonutil.InternalError(w, "failed to load service")
		return
	}
	jsonutil.OK(w, svc)
}

func (h *Handler) listCountries(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.countries.ListPublic(r.Context(), limit, page)
	if err != nil {
		h.logger.Error("failed to list public countries", zap.Error(err))
		jsonutil.InternalError(w, "failed to load countries")
		return
	}
	jsonutil.OK(w, map[string]any{"countries": out})
}

func (h *Handler) getCountry(w http.ResponseWriter, r *http.Request) {
	c, err := h.countries.GetBySlugPublic(r.Context(), chi.URLParam(r, "slug"))
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "country not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load country", zap.String("slug", chi.URLParam(r, "slug")), zap.Error(err))
		jsonutil.InternalError(w, "failed to load country")
		return
	}
	jsonutil.OK(w, c)
}

func (h *Handler) listArticles(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	category := r.URL.Query().Get("category")
	out, err := h.articles.ListPublic(r.Context(), category, limit, page)
	if err == articlestore.ErrBadCategory {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.logger.Error("failed to list public articles", zap.Error(err))
		jsonutil.InternalError(w, "failed to load articles")
		return
	}
	jsonutil.OK(w, map[string]any{"articles": out})
}

func (h *Handler) getArticle(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	slug := chi.URLParam(r, "slug")
	a, err := h.articles.GetBySlugPublic(r.Context(), category, slug)
	if err == articlestore.ErrBadCategory || err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "article not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to load article",
			zap.String("category", category), zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to load article")
		return
	}
	jsonutil.OK(w, a)
}

func (h *Handler) listTeam(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.team.ListPublic(r.Context(), limit, page)
	if err != nil {
		h.logger.Error("failed to list public team", zap.Error(err))
		jsonutil.InternalError(w, "failed to load team")
		return
	}
	jsonutil.OK(w, map[string]any{"team": out})
}

func (h *Handler) listTestimonials(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.testimonials.ListPublic(r.Context(), limit, page)
	if err != nil {
		h.logger.Error("failed to list public testimonials", zap.Error(err))
		jsonutil.InternalError(w, "failed to load testimonials")
		return
	}
	jsonutil.OK(w, map[string]any{"testimonials": out})
}

func (h *Handler) getLicense(w http.ResponseWriter, r *http.Request) {
	lic, err := h.license.GetPublic(r.Context())
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "license not published")
		return
	}
	if err != nil {
		h.logger.Error("failed to load license", zap.Error(err))
		jsonutil.InternalError(w, "failed to load license")
		return
	}
	jsonutil.OK(w, lic)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load site settings", zap.Error(err))
		jsonutil.InternalError(w, "failed to load settings")
		return
	}
	jsonutil.OK(w, settings)
}
