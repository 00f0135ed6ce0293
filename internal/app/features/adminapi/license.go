package adminapi

import (
	"net/http"

	licensestore "github.com/clearpathvisa/clearpath/internal/app/store/license"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
)

type updateLicenseInput struct {
	AgencyLegalName   *string   `json:"agency_legal_name" label:"Agency legal name"`
	LicenseNumber     *string   `json:"license_number" label:"License number"`
	IssuingAuthority  *string   `json:"issuing_authority" label:"Issuing authority"`
	OfficeAddress     *string   `json:"office_address" label:"Office address"`
	Phone             *string   `json:"phone" label:"Phone"`
	WhatsApp          *string   `json:"whatsapp" label:"WhatsApp"`
	Email             *string   `json:"email" validate:"omitempty,email" label:"Email"`
	VerificationSteps *[]string `json:"verification_steps" label:"Verification steps"`
}

// getLicense returns the licence record, creating the draft on first
// access so the back office always has something to edit.
func (h *Handler) getLicense(w http.ResponseWriter, r *http.Request) {
	lic, err := h.license.GetOrCreateDraft(r.Context(), authz.FromRequest(r))
	if err != nil {
		h.storeError(w, r, err, "license")
		return
	}
	jsonutil.OK(w, lic)
}

func (h *Handler) updateLicense(w http.ResponseWriter, r *http.Request) {
	var in updateLicenseInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	lic, err := h.license.Update(r.Context(), authz.FromRequest(r), licensestore.UpdateInput{
		AgencyLegalName:   in.AgencyLegalName,
		LicenseNumber:     in.LicenseNumber,
		IssuingAuthority:  in.IssuingAuthority,
		OfficeAddress:     in.OfficeAddress,
		Phone:             in.Phone,
		WhatsApp:          in.WhatsApp,
		Email:             in.Email,
		VerificationSteps: in.VerificationSteps,
	})
	if err != nil {
		h.storeError(w, r, err, "license")
		return
	}
	jsonutil.OK(w, lic)
}

func (h *Handler) setLicenseStatus(w http.ResponseWriter, r *http.Request) {
	var in statusInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}
	if err := h.license.SetStatus(r.Context(), authz.FromRequest(r), models.Status(in.Status)); err != nil {
		h.storeError(w, r, err, "license")
		return
	}
	jsonutil.NoContent(w)
}
