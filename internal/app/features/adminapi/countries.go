package adminapi

import (
	"net/http"

	countrystore "github.com/clearpathvisa/clearpath/internal/app/store/countries"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.uber.org/zap"
)

type createCountryInput struct {
	Name               string          `json:"name" validate:"required,min=2" label:"Name"`
	Slug               string          `json:"slug" label:"Slug"`
	Status             string          `json:"status" validate:"omitempty,pubstatus" label:"Status"`
	Overview           string          `json:"overview" label:"Overview"`
	Content            string          `json:"content" label:"Content"`
	SupportedVisaTypes []string        `json:"supported_visa_types" label:"Supported visa types"`
	Requirements       []string        `json:"requirements" label:"Requirements"`
	ProcessSteps       []string        `json:"process_steps" label:"Process steps"`
	TimelineText       string          `json:"timeline_text" label:"Typical timeline"`
	FeesDisclaimer     string          `json:"fees_disclaimer" label:"Fees disclaimer"`
	CoverImage         models.ImageRef `json:"cover_image" label:"Cover image"`
	SEO                models.SEO      `json:"seo" label:"SEO"`
	Featured           bool            `json:"featured" label:"Featured"`
}

type updateCountryInput struct {
	Name               *string          `json:"name" label:"Name"`
	Slug               *string          `json:"slug" label:"Slug"`
	Overview           *string          `json:"overview" label:"Overview"`
	Content            *string          `json:"content" label:"Content"`
	SupportedVisaTypes *[]string        `json:"supported_visa_types" label:"Supported visa types"`
	Requirements       *[]string        `json:"requirements" label:"Requirements"`
	ProcessSteps       *[]string        `json:"process_steps" label:"Process steps"`
	TimelineText       *string          `json:"timeline_text" label:"Typical timeline"`
	FeesDisclaimer     *string          `json:"fees_disclaimer" label:"Fees disclaimer"`
	CoverImage         *models.ImageRef `json:"cover_image" label:"Cover image"`
	SEO                *models.SEO      `json:"seo" label:"SEO"`
	Featured           *bool            `json:"featured" label:"Featured"`
}

func (h *Handler) listCountries(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.countries.ListAdmin(r.Context(), countrystore.AdminFilter{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		h.storeError(w, r, err, "countries")
		return
	}
	jsonutil.OK(w, map[string]any{"countries": out})
}

func (h *Handler) createCountry(w http.ResponseWriter, r *http.Request) {
	var in createCountryInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	c, err := h.countries.Create(r.Context(), authz.FromRequest(r), countrystore.CreateInput{
		Name:               in.Name,
		Slug:               in.Slug,
		Status:             models.Status(normalize.Status(in.Status)),
		Overview:           in.Overview,
		Content:            in.Content,
		SupportedVisaTypes: in.SupportedVisaTypes,
		Requirements:       in.Requirements,
		ProcessSteps:       in.ProcessSteps,
		TimelineText:       in.TimelineText,
		FeesDisclaimer:     in.FeesDisclaimer,
		CoverImage:         in.CoverImage,
		SEO:                in.SEO,
		Featured:           in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "country")
		return
	}
	h.logger.Info("country created", zap.String("id", c.ID.Hex()), zap.String("slug", c.Slug))
	jsonutil.Created(w, c)
}

func (h *Handler) getCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.countries.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "country")
		return
	}
	jsonutil.OK(w, c)
}

func (h *Handler) updateCountry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in updateCountryInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.countries.Update(r.Context(), authz.FromRequest(r), id, countrystore.UpdateInput{
		Name:               in.Name,
		Slug:               in.Slug,
		Overview:           in.Overview,
		Content:            in.Content,
		SupportedVisaTypes: in.SupportedVisaTypes,
		Requirements:       in.Requirements,
		ProcessSteps:       in.ProcessSteps,
		TimelineText:       in.TimelineText,
		FeesDisclaimer:     in.FeesDisclaimer,
		CoverImage:         in.CoverImage,
		SEO:                in.SEO,
		Featured:           in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "country")
		return
	}
	c, err := h.countries.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "country")
		return
	}
	jsonutil.OK(w, c)
}

func (h *Handler) setCountryStatus(w http.ResponseWriter, r *http.Request) {
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
	if err := h.countries.SetStatus(r.Context(), authz.FromRequest(r), id, models.Status(in.Status)); err != nil {
		h.storeError(w, r, err, "country")
		return
	}
	jsonutil.NoContent(w)
}
