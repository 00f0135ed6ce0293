package adminapi

import (
	"net/http"

	teamstore "github.com/clearpathvisa/clearpath/internal/app/store/teammembers"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.uber.org/zap"
)

type createTeamMemberInput struct {
	Name     string `json:"name" validate:"required,min=2" label:"Name"`
	Role     string `json:"role" label:"Role"`
	Status   string `json:"status" validate:"omitempty,pubstatus" label:"Status"`
	PhotoURL string `json:"photo_url" validate:"omitempty,httpurl" label:"Photo URL"`
	Bio      string `json:"bio" label:"Bio"`
	Order    int    `json:"order" label:"Order"`
	Featured bool   `json:"featured" label:"Featured"`
}

type updateTeamMemberInput struct {
	Name     *string `json:"name" label:"Name"`
	Role     *string `json:"role" label:"Role"`
	PhotoURL *string `json:"photo_url" label:"Photo URL"`
	Bio      *string `json:"bio" label:"Bio"`
	Order    *int    `json:"order" label:"Order"`
	Featured *bool   `json:"featured" label:"Featured"`
}

func (h *Handler) listTeam(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.team.ListAdmin(r.Context(), teamstore.AdminFilter{
		Status: r.URL.Query().Get("status"),
		Query:  r.URL.Query().Get("q"),
		Limit:  limit,
		Page:   page,
	})
	if err != nil {
		h.storeError(w, r, err, "team members")
		return
	}
	jsonutil.OK(w, map[string]any{"team": out})
}

func (h *Handler) createTeamMember(w http.ResponseWriter, r *http.Request) {
	var in createTeamMemberInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	tm, err := h.team.Create(r.Context(), authz.FromRequest(r), teamstore.CreateInput{
		Name:     in.Name,
		Role:     in.Role,
		Status:   models.Status(normalize.Status(in.Status)),
		PhotoURL: in.PhotoURL,
		Bio:      in.Bio,
		Order:    in.Order,
		Featured: in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "team member")
		return
	}
	h.logger.Info("team member created", zap.String("id", tm.ID.Hex()))
	jsonutil.Created(w, tm)
}

func (h *Handler) getTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	tm, err := h.team.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "team member")
		return
	}
	jsonutil.OK(w, tm)
}

func (h *Handler) updateTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in updateTeamMemberInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.team.Update(r.Context(), authz.FromRequest(r), id, teamstore.UpdateInput{
		Name:     in.Name,
		Role:     in.Role,
		PhotoURL: in.PhotoURL,
		Bio:      in.Bio,
		Order:    in.Order,
		Featured: in.Featured,
	})
	if err != nil {
		h.storeError(w, r, err, "team member")
		return
	}
	tm, err := h.team.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "team member")
		return
	}
	jsonutil.OK(w, tm)
}

func (h *Handler) setTeamMemberStatus(w http.ResponseWriter, r *http.Request) {
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
	if err := h.team.SetStatus(r.Context(), authz.FromRequest(r), id, models.Status(in.Status)); err != nil {
		h.storeError(w, r, err, "team member")
		return
	}
	jsonutil.NoContent(w)
}

func (h *Handler) deleteTeamMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := h.team.Delete(r.Context(), authz.FromRequest(r), id)
	if err != nil {
		h.storeError(w, r, err, "team member")
		return
	}
	if n == 0 {
		jsonutil.NotFound(w, "team member not found")
		return
	}
	h.logger.Info("team member deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
