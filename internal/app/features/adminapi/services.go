package adminapi

import (
	"net/http"

	servicestore "github.com/clearpathvisa/clearpath/internal/app/store/services"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.uber.org/zap"
)

type createServiceInput struct {
	Title        string     `json:"title" validate:"required,min=2" label:"Title"`
	Slug         string     `json:"slug" label:"Slug"`
	Status       string     `json:"status" validate:"omitempty,pubstatus" label:"Status"`
	Summary      string     `json:"summary" label:"Summary"`
	Content      string     `json:"content" label:"Content"`
	Requirements []string   `json:"requirements" label:"Requirements"`
	TimelineText string     `json:"timeline_text" label:"Typical timeline"`
	SEO          models.SEO `json:"seo" label:"SEO"`
	Featured     bool       `json:"featured" label:"Featured"`
}

type updateServiceInput struct {
	Title        *string     `json:"title" label:"Title"`
	Slug         *string     `json:"slug" label:"Slug"`
	Summary      *string     `json:"summary" label:"Summary"`
	Content      *string     `json:"content" label:"Content"`
	Requirements *[]string   `json:"requirements" label:"Requirements"`
	TimelineText *string     `json:"timeline_text" label:"Typical timeline"`
	SEO          *models.SEO `json:"seo" label:"SEO"`
	Featured     *bool       `json:"featured" label:"Featured"`
}

func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.services.ListAdmin(r.Context(), servicestore.AdminFilter{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		h.storeError(w, r, err, "services")
		return
	}
	jsonutil.OK(w, map[string]any{"services": out})
}

func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	var in createServiceInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	svc, err := h.services.Create(r.Context(), authz.FromRequest(r), servicestore.CreateInput{
		Title:        in.Title,
		Slug:         in.Slug,
		Status:       models.Status(normalize.Status(in.Status)),
		Summary:      in.Summary,
		Content:      in.Content,
		Requirements: in.Requirements,
		TimelineText: in.TimelineText,
		SEO:          in.SEO,
		Featured:     in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "service")
		return
	}
	h.logger.Info("service created", zap.String("id", svc.ID.Hex()), zap.String("slug", svc.Slug))
	jsonutil.Created(w, svc)
}

func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	svc, err := h.services.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "service")
		return
	}
	jsonutil.OK(w, svc)
}

func (h *Handler) updateService(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in updateServiceInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.services.Update(r.Context(), authz.FromRequest(r), id, servicestore.UpdateInput{
		Title:        in.Title,
		Slug:         in.Slug,
		Summary:      in.Summary,
		Content:      in.Content,
		Requirements: in.Requirements,
		TimelineText: in.TimelineText,
		SEO:          in.SEO,
		Featured:     in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "service")
		return
	}
	svc, err := h.services.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "service")
		return
	}
	jsonutil.OK(w, svc)
}

func (h *Handler) setServiceStatus(w http.ResponseWriter, r *http.Request) {
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
	if err := h.services.SetStatus(r.Context(), authz.FromRequest(r), id, models.Status(in.Status)); err != nil {
		h.storeError(w, r, err, "service")
		return
	}
	jsonutil.NoContent(w)
}
