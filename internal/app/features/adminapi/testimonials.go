package adminapi

import (
	"net/http"

	testimonialstore "github.com/clearpathvisa/clearpath/internal/app/store/testimonials"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.uber.org/zap"
)

type createTestimonialInput struct {
	Quote          string `json:"quote" validate:"required,min=2" label:"Quote"`
	Status         string `json:"status" validate:"omitempty,pubstatus" label:"Status"`
	AuthorName     string `json:"author_name" label:"Author name"`
	AuthorRole     string `json:"author_role" label:"Author role"`
	AuthorPhotoURL string `json:"author_photo_url" validate:"omitempty,httpurl" label:"Author photo URL"`
	Country        string `json:"country" label:"Country"`
	Anonymized     bool   `json:"anonymized" label:"Anonymized"`
	Order          int    `json:"order" label:"Order"`
	Featured       bool   `json:"featured" label:"Featured"`
}

type updateTestimonialInput struct {
	Quote          *string `json:"quote" label:"Quote"`
	AuthorName     *string `json:"author_name" label:"Author name"`
	AuthorRole     *string `json:"author_role" label:"Author role"`
	AuthorPhotoURL *string `json:"author_photo_url" label:"Author photo URL"`
	Country        *string `json:"country" label:"Country"`
	Anonymized     *bool   `json:"anonymized" label:"Anonymized"`
	Order          *int    `json:"order" label:"Order"`
	Featured       *bool   `json:"featured" label:"Featured"`
}

func (h *Handler) listTestimonials(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.testimonials.ListAdmin(r.Context(), testimonialstore.AdminFilter{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		h.storeError(w, r, err, "testimonials")
		return
	}
	jsonutil.OK(w, map[string]any{"testimonials": out})
}

func (h *Handler) createTestimonial(w http.ResponseWriter, r *http.Request) {
	var in createTestimonialInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	tst, err := h.testimonials.Create(r.Context(), authz.FromRequest(r), testimonialstore.CreateInput{
		Quote:          in.Quote,
		Status:         models.Status(normalize.Status(in.Status)),
		AuthorName:     in.AuthorName,
		AuthorRole:     in.AuthorRole,
		AuthorPhotoURL: in.AuthorPhotoURL,
		Country:        in.Country,
		Anonymized:     in.Anonymized,
		Order:          in.Order,
		Featured:       in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "testimonial")
		return
	}
	h.logger.Info("testimonial created", zap.String("id", tst.ID.Hex()))
	jsonutil.Created(w, tst)
}

func (h *Handler) getTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tst, err := h.testimonials.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "testimonial")
		return
	}
	jsonutil.OK(w, tst)
}

func (h *Handler) updateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in updateTestimonialInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.testimonials.Update(r.Context(), authz.FromRequest(r), id, testimonialstore.UpdateInput{
		Quote:          in.Quote,
		AuthorName:     in.AuthorName,
		AuthorRole:     in.AuthorRole,
		AuthorPhotoURL: in.AuthorPhotoURL,
		Country:        in.Country,
		Anonymized:     in.Anonymized,
		Order:          in.Order,
		Featured:       in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "testimonial")
		return
	}
	tst, err := h.testimonials.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "testimonial")
		return
	}
	jsonutil.OK(w, tst)
}

func (h *Handler) setTestimonialStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in statusInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}
	if err := h.testimonials.SetStatus(r.Context(), authz.FromRequest(r), id, models.Status(in.Status)); err != nil {
		h.storeError(w, r, err, "testimonial")
		return
	}
	jsonutil.NoContent(w)
}

func (h *Handler) deleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := h.testimonials.Delete(r.Context(), authz.FromRequest(r), id)
	if err != nil {
		h.storeError(w, r, err, "testimonial")
		return
	}
	if n == 0 {
		jsonutil.NotFound(w, "testimonial not found")
		return
	}
	h.logger.Info("testimonial deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
