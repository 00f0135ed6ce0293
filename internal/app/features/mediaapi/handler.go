// Package mediaapi is the image upload boundary for the back office,
// plus the public endpoint that streams stored bytes back out.
//
// Uploads go to file storage (local disk or S3 depending on config)
// under a uuid object name; the metadata record in Mongo carries the
// dimensions so the admin UI can pick sensible crops.
package mediaapi

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	mediastore "github.com/clearpathvisa/clearpath/internal/app/store/media"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// maxUploadSize caps a single image upload at 10 MB.
const maxUploadSize = 10 << 20

// Handler manages media uploads and serving.
type Handler struct {
	media       *mediastore.Store
	fileStorage storage.Store
	logger      *zap.Logger
}

// NewHandler creates a new media handler.
func NewHandler(db *mongo.Database, fileStorage storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		media:       mediastore.New(db),
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// AdminRoutes returns the authenticated upload endpoints. Mounted under
// the admin API.
func AdminRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.list)
	r.Post("/", h.upload)
	r.Delete("/{id}", h.remove)
	return r
}

// PublicRoutes returns the unauthenticated serving endpoint. Mounted at
// /media.
func PublicRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/{id}", h.serve)
	return r
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if page <= 0 {
		page = 1
	}

	out, err := h.media.List(r.Context(), authz.FromRequest(r), limit, page)
	if err == authz.ErrForbidden {
		jsonutil.Forbidden(w, "insufficient role")
		return
	}
	if err != nil {
		h.logger.Error("failed to list media", zap.Error(err))
		jsonutil.InternalError(w, "failed to load media")
		return
	}
	jsonutil.OK(w, map[string]any{"media": out})
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := authz.FromRequest(r)
	if !p.CanManageContent() {
		jsonutil.Forbidden(w, "insufficient role")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonutil.BadRequest(w, "file too large (max 10MB)")
		return
	}
	uploaded, header, err := r.FormFile("file")
	if err != nil {
		jsonutil.ValidationError(w, map[string]string{"file": "a file is required"})
		return
	}
	defer uploaded.Close()

	// Buffer the whole image: it is needed twice, once for dimension
	// probing and once for the storage write.
	data, err := io.ReadAll(io.LimitReader(uploaded, maxUploadSize+1))
	if err != nil {
		h.logger.Error("failed to read upload", zap.Error(err))
		jsonutil.InternalError(w, "failed to read upload")
		return
	}
	if len(data) > maxUploadSize {
		jsonutil.BadRequest(w, "file too large (max 10MB)")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		jsonutil.ValidationError(w, map[string]string{"file": "only image uploads are accepted"})
		return
	}

	var width, height int
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = cfg.Width, cfg.Height
	}

	now := time.Now().UTC()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	objectName := uuid.New().String() + ext
	storagePath := fmt.Sprintf("media/%04d/%02d/%s", now.Year(), int(now.Month()), objectName)

	opts := &storage.PutOptions{ContentType: contentType}
	if err := h.fileStorage.Put(ctx, storagePath, bytes.NewReader(data), opts); err != nil {
		h.logger.Error("failed to write upload to storage",
			zap.String("path", storagePath), zap.Error(err))
		jsonutil.InternalError(w, "failed to store upload")
		return
	}

	m, err := h.media.Create(ctx, p, mediastore.CreateInput{
		FileName:    header.Filename,
		StoragePath: storagePath,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       width,
		Height:      height,
		Alt:         r.FormValue("alt"),
		UploadedBy:  p.ID,
	})
	if err != nil {
		// Orphaned bytes would never be referenced, so clean them up.
		_ = h.fileStorage.Delete(ctx, storagePath)
		h.logger.Error("failed to create media record", zap.Error(err))
		jsonutil.InternalError(w, "failed to store upload")
		return
	}

	h.logger.Info("media uploaded",
		zap.String("id", m.ID.Hex()),
		zap.String("content_type", contentType),
		zap.Int64("size", m.Size),
	)
	jsonutil.Created(w, map[string]any{
		"id":           m.ID.Hex(),
		"url":          m.URL(),
		"file_name":    m.FileName,
		"content_type": m.ContentType,
		"size":         m.Size,
		"width":        m.Width,
		"height":       m.Height,
	})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.NotFound(w, "media not found")
		return
	}

	m, err := h.media.Delete(r.Context(), authz.FromRequest(r), id)
	if err == authz.ErrForbidden {
		jsonutil.Forbidden(w, "insufficient role")
		return
	}
	if err == mongo.ErrNoDocuments {
		jsonutil.NotFound(w, "media not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete media", zap.Error(err))
		jsonutil.InternalError(w, "failed to delete media")
		return
	}

	if err := h.fileStorage.Delete(r.Context(), m.StoragePath); err != nil {
		h.logger.Warn("failed to delete media bytes from storage",
			zap.String("path", m.StoragePath), zap.Error(err))
	}
	jsonutil.NoContent(w)
}

// serve streams stored bytes to the public site.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	m, err := h.media.GetByID(r.Context(), id)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	reader, err := h.fileStorage.Get(r.Context(), m.StoragePath)
	if err != nil {
		h.logger.Error("failed to read media from storage",
			zap.String("path", m.StoragePath), zap.Error(err))
		http.NotFound(w, r)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", m.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed to stream media",
			zap.String("path", m.StoragePath), zap.Error(err))
	}
}
