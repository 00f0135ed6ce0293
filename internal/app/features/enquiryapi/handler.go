// Package enquiryapi accepts public enquiry submissions from the
// contact form and knowledge-base pages.
//
// The pipeline is validate, rate-limit by client IP, persist. Consent
// is a hard gate: a submission without it is rejected before anything
// is stored.
package enquiryapi

import (
	"net/http"
	"strings"

	enquirystore "github.com/clearpathvisa/clearpath/internal/app/store/enquiries"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/network"
	"github.com/clearpathvisa/clearpath/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler accepts public enquiry submissions.
type Handler struct {
	enquiries *enquirystore.Store
	limiter   ratelimit.Limiter
	logger    *zap.Logger
}

// NewHandler creates a new enquiry intake handler.
func NewHandler(db *mongo.Database, limiter ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{
		enquiries: enquirystore.New(db),
		limiter:   limiter,
		logger:    logger,
	}
}

// Routes returns the enquiry intake endpoint. Mounted at /api/enquiries.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Post("/", h.submit)
	return r
}

// submitInput is the public submission contract. The phone floor is the
// server-side contract; the web form enforces a stricter minimum
// client-side.
type submitInput struct {
	FullName               string `json:"full_name" validate:"required,min=2" label:"Full name"`
	PhoneOrWhatsApp        string `json:"phone_or_whatsapp" validate:"required,min=5" label:"Phone or WhatsApp"`
	Email                  string `json:"email" validate:"omitempty,email" label:"Email"`
	PreferredContactMethod string `json:"preferred_contact_method" validate:"omitempty,contactmethod" label:"Preferred contact method"`
	InterestedServiceID    string `json:"interested_service_id" validate:"omitempty,objectid" label:"Interested service"`
	CountryID              string `json:"country_id" validate:"omitempty,objectid" label:"Country"`
	Message                string `json:"message" validate:"required,min=10" label:"Message"`
	Consent                bool   `json:"consent" label:"Consent"`
	Source                 string `json:"source" validate:"omitempty,enquirysource" label:"Source"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var in submitInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	// Trim before validating so whitespace padding cannot satisfy the
	// length floors.
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneOrWhatsApp = strings.TrimSpace(in.PhoneOrWhatsApp)
	in.Message = strings.TrimSpace(in.Message)

	if result := inputval.Validate(in); result.HasErrors() {
		fields := make(map[string]string, len(result.Errors))
		for _, e := range result.Errors {
			fields[e.Field] = e.Message
		}
		jsonutil.ValidationError(w, fields)
		return
	}
	if !in.Consent {
		jsonutil.ValidationError(w, map[string]string{
			"consent": "Consent is required to submit an enquiry",
		})
		return
	}

	ip := network.GetClientIP(r)
	if !h.limiter.Allow(r.Context(), ip) {
		h.logger.Warn("enquiry rate limit exceeded", zap.String("ip", ip))
		jsonutil.TooManyRequests(w, "too many enquiries, please try again in a minute")
		return
	}

	e, err := h.enquiries.Create(r.Context(), enquirystore.CreateInput{
		FullName:               in.FullName,
		PhoneOrWhatsApp:        in.PhoneOrWhatsApp,
		Email:                  in.Email,
		PreferredContactMethod: in.PreferredContactMethod,
		InterestedServiceID:    parseOptionalID(in.InterestedServiceID),
		CountryID:              parseOptionalID(in.CountryID),
		Message:                in.Message,
		Source:                 in.Source,
	})
	if err != nil {
		h.logger.Error("failed to persist enquiry", zap.Error(err))
		jsonutil.InternalError(w, "failed to submit enquiry")
		return
	}

	h.logger.Info("enquiry received",
		zap.String("id", e.ID.Hex()),
		zap.String("source", string(e.Source)),
	)
	jsonutil.Created(w, map[string]string{"id": e.ID.Hex()})
}

// parseOptionalID maps an empty or malformed hex string to "no
// reference". Validation already rejected malformed non-empty ids.
func parseOptionalID(hex string) *primitive.ObjectID {
	hex = strings.TrimSpace(hex)
	if hex == "" {
		return nil
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return nil
	}
	return &id
}
