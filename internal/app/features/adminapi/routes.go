package adminapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the back-office API. Mounted at /api/admin behind the
// session middleware; the router only admits editor and superadmin
// sessions, and the stores narrow further where an operation is
// superadmin-only.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.listServices)
		r.Post("/", h.createService)
		r.Get("/{id}", h.getService)
		r.Patch("/{id}", h.updateService)
		r.Post("/{id}/status", h.setServiceStatus)
	})

	r.Route("/countries", func(r chi.Router) {
		r.Get("/", h.listCountries)
		r.Post("/", h.createCountry)
		r.Get("/{id}", h.getCountry)
		r.Patch("/{id}", h.updateCountry)
		r.Post("/{id}/status", h.setCountryStatus)
	})

	r.Route("/articles", func(r chi.Router) {
		r.Get("/", h.listArticles)
		r.Post("/", h.createArticle)
		r.Get("/{id}", h.getArticle)
		r.Patch("/{id}", h.updateArticle)
		r.Post("/{id}/status", h.setArticleStatus)
		r.Delete("/{id}", h.deleteArticle)
	})

	r.Route("/team", func(r chi.Router) {
		r.Get("/", h.listTeam)
		r.Post("/", h.createTeamMember)
		r.Get("/{id}", h.getTeamMember)
		r.Patch("/{id}", h.updateTeamMember)
		r.Post("/{id}/status", h.setTeamMemberStatus)
		r.Delete("/{id}", h.deleteTeamMember)
	})

	r.Route("/testimonials", func(r chi.Router) {
		r.Get("/", h.listTestimonials)
		r.Post("/", h.createTestimonial)
		r.Get("/{id}", h.getTestimonial)
		r.Patch("/{id}", h.updateTestimonial)
		r.Post("/{id}/status", h.setTestimonialStatus)
		r.Delete("/{id}", h.deleteTestimonial)
	})

	r.Route("/enquiries", func(r chi.Router) {
		r.Get("/", h.listEnquiries)
		r.Get("/stats", h.enquiryStats)
		r.Get("/{id}", h.getEnquiry)
		r.Patch("/{id}", h.triageEnquiry)
	})

	r.Route("/license", func(r chi.Router) {
		r.Get("/", h.getLicense)
		r.Patch("/", h.updateLicense)
		r.Post("/status", h.setLicenseStatus)
	})

	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.getSettings)
		r.Put("/", h.updateSettings)
	})

	r.Route("/admins", func(r chi.Router) {
		r.Get("/", h.listAdmins)
		r.Post("/", h.createAdmin)
		r.Patch("/{id}", h.updateAdmin)
		r.Put("/{id}/password", h.changeAdminPassword)
		r.Delete("/{id}", h.deleteAdmin)
	})

	return r
}
