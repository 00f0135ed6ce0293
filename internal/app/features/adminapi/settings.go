package adminapi

import (
	"net/http"

	settingsstore "github.com/clearpathvisa/clearpath/internal/app/store/settings"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
)

type updateSettingsInput struct {
	SiteName    string            `json:"site_name" validate:"required,min=2" label:"Site name"`
	Phone       string            `json:"phone" label:"Phone"`
	WhatsApp    string            `json:"whatsapp" label:"WhatsApp"`
	Email       string            `json:"email" validate:"omitempty,email" label:"Email"`
	Address     string            `json:"address" label:"Address"`
	MapURL      string            `json:"map_url" validate:"omitempty,httpurl" label:"Map URL"`
	SocialLinks map[string]string `json:"social_links" label:"Social links"`
	PrimaryCTA  string            `json:"primary_cta" label:"Primary CTA"`
	FooterText  string            `json:"footer_text" label:"Footer text"`
	LogoURL     string            `json:"logo_url" validate:"omitempty,httpurl" label:"Logo URL"`
	LogoDarkURL string            `json:"logo_dark_url" validate:"omitempty,httpurl" label:"Dark logo URL"`
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.storeError(w, r, err, "settings")
		return
	}
	jsonutil.OK(w, settings)
}

// updateSettings replaces the whole settings document. The admin form
// always submits every field, so this is a PUT rather than a PATCH.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in updateSettingsInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	err := h.settings.Upsert(r.Context(), authz.FromRequest(r), settingsstore.UpdateInput{
		SiteName:    in.SiteName,
		Phone:       in.Phone,
		WhatsApp:    in.WhatsApp,
		Email:       in.Email,
		Address:     in.Address,
		MapURL:      in.MapURL,
		SocialLinks: in.SocialLinks,
		PrimaryCTA:  in.PrimaryCTA,
		FooterText:  in.FooterText,
		LogoURL:     in.LogoURL,
		LogoDarkURL: in.LogoDarkURL,
	})
	if err != nil {
		h.storeError(w, r, err, "settings")
		return
	}

	settings, err := h.settings.Get(r.Context())
	if err != nil {
		h.storeError(w, r, err, "settings")
		return
	}
	jsonutil.OK(w, settings)
}
