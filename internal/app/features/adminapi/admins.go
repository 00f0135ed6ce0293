package adminapi

import (
	"net/http"

	adminstore "github.com/clearpathvisa/clearpath/internal/app/store/admins"
	"github.com/clearpathvisa/clearpath/internal/app/system/authutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

type createAdminInput struct {
	Email    string `json:"email" validate:"required,email" label:"Email"`
	FullName string `json:"full_name" validate:"required,min=2" label:"Full name"`
	Role     string `json:"role" validate:"required,oneof=superadmin editor" label:"Role"`
	Password string `json:"password" validate:"required" label:"Password"`
}

type updateAdminInput struct {
	Email    *string `json:"email" validate:"omitempty,email" label:"Email"`
	FullName *string `json:"full_name" label:"Full name"`
	Role     *string `json:"role" validate:"omitempty,oneof=superadmin editor" label:"Role"`
}

type changePasswordInput struct {
	Password string `json:"password" validate:"required" label:"Password"`
}

func (h *Handler) listAdmins(w http.ResponseWriter, r *http.Request) {
	p := authz.FromRequest(r)
	if !p.CanManageAdmins() {
		jsonutil.Forbidden(w, "insufficient role")
		return
	}
	out, err := h.admins.List(r.Context())
	if err != nil {
		h.storeError(w, r, err, "admins")
		return
	}
	jsonutil.OK(w, map[string]any{"admins": out})
}

func (h *Handler) createAdmin(w http.ResponseWriter, r *http.Request) {
	var in createAdminInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}
	if err := authutil.ValidatePassword(in.Password); err != nil {
		jsonutil.ValidationError(w, map[string]string{"password": err.Error()})
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		jsonutil.InternalError(w, "failed to create admin")
		return
	}

	admin, err := h.admins.Create(r.Context(), authz.FromRequest(r), adminstore.CreateInput{
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         in.Role,
		PasswordHash: hash,
	})
	if err == adminstore.ErrDuplicateEmail {
		jsonutil.Conflict(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "admin")
		return
	}
	h.logger.Info("admin account created",
		zap.String("id", admin.ID.Hex()),
		zap.String("role", admin.Role),
	)
	jsonutil.Created(w, admin)
}

func (h *Handler) updateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in updateAdminInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	err := h.admins.Update(r.Context(), authz.FromRequest(r), id, adminstore.UpdateInput{
		Email:    in.Email,
		FullName: in.FullName,
		Role:     in.Role,
	})
	if err == adminstore.ErrDuplicateEmail {
		jsonutil.Conflict(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "admin")
		return
	}

	admin, err := h.admins.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "admin")
		return
	}
	jsonutil.OK(w, admin)
}

func (h *Handler) changeAdminPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in changePasswordInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := authutil.ValidatePassword(in.Password); err != nil {
		jsonutil.ValidationError(w, map[string]string{"password": err.Error()})
		return
	}

	hash, err := authutil.HashPassword(in.Password)
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		jsonutil.InternalError(w, "failed to change password")
		return
	}
	if err := h.admins.UpdatePassword(r.Context(), authz.FromRequest(r), id, hash); err != nil {
		h.storeError(w, r, err, "admin")
		return
	}
	h.logger.Info("admin password changed", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

func (h *Handler) deleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := h.admins.Delete(r.Context(), authz.FromRequest(r), id)
	if err == adminstore.ErrLastSuperadmin {
		jsonutil.Conflict(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "admin")
		return
	}
	if n == 0 {
		jsonutil.NotFound(w, "admin not found")
		return
	}
	h.logger.Info("admin account deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
