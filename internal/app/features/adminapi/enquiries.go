package adminapi

import (
	"net/http"
	"time"

	enquirystore "github.com/clearpathvisa/clearpath/internal/app/store/enquiries"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

type triageEnquiryInput struct {
	Status     *string `json:"status" label:"Status"`
	AdminNotes *string `json:"admin_notes" label:"Admin notes"`
}

func (h *Handler) listEnquiries(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	f := enquirystore.Filter{
		Status: r.URL.Query().Get("status"),
		Source: r.URL.Query().Get("source"),
		Limit:  limit,
		Page:   page,
	}
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			jsonutil.BadRequest(w, "from must be an RFC 3339 timestamp")
			return
		}
		f.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			jsonutil.BadRequest(w, "to must be an RFC 3339 timestamp")
			return
		}
		f.To = t
	}

	out, err := h.enquiries.List(r.Context(), authz.FromRequest(r), f)
	if err == enquirystore.ErrBadTriageStatus || err == enquirystore.ErrBadSource {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "enquiries")
		return
	}
	jsonutil.OK(w, map[string]any{"enquiries": out})
}

func (h *Handler) enquiryStats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.enquiries.CountByStatus(r.Context(), authz.FromRequest(r))
	if err != nil {
		h.storeError(w, r, err, "enquiry stats")
		return
	}
	jsonutil.OK(w, map[string]any{"counts": counts})
}

func (h *Handler) getEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := h.enquiries.GetByID(r.Context(), authz.FromRequest(r), id)
	if err != nil {
		h.storeError(w, r, err, "enquiry")
		return
	}
	jsonutil.OK(w, e)
}

func (h *Handler) triageEnquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in triageEnquiryInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	p := authz.FromRequest(r)
	err := h.enquiries.UpdateTriage(r.Context(), p, id, enquirystore.TriageInput{
		Status:     in.Status,
		AdminNotes: in.AdminNotes,
	})
	if err == enquirystore.ErrBadTriageStatus {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "enquiry")
		return
	}

	e, err := h.enquiries.GetByID(r.Context(), p, id)
	if err != nil {
		h.storeError(w, r, err, "enquiry")
		return
	}
	if in.Status != nil {
		h.logger.Info("enquiry triaged",
			zap.String("id", id.Hex()),
			zap.String("status", *in.Status),
		)
	}
	jsonutil.OK(w, e)
}
