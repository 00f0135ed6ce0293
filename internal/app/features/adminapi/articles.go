package adminapi

import (
	"net/http"

	articlestore "github.com/clearpathvisa/clearpath/internal/app/store/articles"
	"github.com/clearpathvisa/clearpath/internal/app/system/authz"
	"github.com/clearpathvisa/clearpath/internal/app/system/inputval"
	"github.com/clearpathvisa/clearpath/internal/app/system/jsonutil"
	"github.com/clearpathvisa/clearpath/internal/app/system/normalize"
	"github.com/clearpathvisa/clearpath/internal/domain/models"
	"go.uber.org/zap"
)

type createArticleInput struct {
	Title      string           `json:"title" validate:"required,min=2" label:"Title"`
	Slug       string           `json:"slug" label:"Slug"`
	Status     string           `json:"status" validate:"omitempty,pubstatus" label:"Status"`
	Category   string           `json:"category" validate:"required,articlecategory" label:"Category"`
	Excerpt    string           `json:"excerpt" label:"Excerpt"`
	Content    string           `json:"content" label:"Content"`
	FAQ        []models.FAQItem `json:"faq" label:"FAQ"`
	CoverImage models.ImageRef  `json:"cover_image" label:"Cover image"`
	SEO        models.SEO       `json:"seo" label:"SEO"`
	AuthorName string           `json:"author_name" label:"Author name"`
	Featured   bool             `json:"featured" label:"Featured"`
}

type updateArticleInput struct {
	Title      *string           `json:"title" label:"Title"`
	Slug       *string           `json:"slug" label:"Slug"`
	Category   *string           `json:"category" validate:"omitempty,articlecategory" label:"Category"`
	Excerpt    *string           `json:"excerpt" label:"Excerpt"`
	Content    *string           `json:"content" label:"Content"`
	FAQ        *[]models.FAQItem `json:"faq" label:"FAQ"`
	CoverImage *models.ImageRef  `json:"cover_image" label:"Cover image"`
	SEO        *models.SEO       `json:"seo" label:"SEO"`
	AuthorName *string           `json:"author_name" label:"Author name"`
	Featured   *bool             `json:"featured" label:"Featured"`
}

func (h *Handler) listArticles(w http.ResponseWriter, r *http.Request) {
	limit, page := pagination(r)
	out, err := h.articles.ListAdmin(r.Context(), articlestore.AdminFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
		Limit:    limit,
		Page:     page,
	})
	if err != nil {
		h.storeError(w, r, err, "articles")
		return
	}
	jsonutil.OK(w, map[string]any{"articles": out})
}

func (h *Handler) createArticle(w http.ResponseWriter, r *http.Request) {
	var in createArticleInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if result := inputval.Validate(in); result.HasErrors() {
		jsonutil.ValidationError(w, fieldMap(result))
		return
	}

	a, err := h.articles.Create(r.Context(), authz.FromRequest(r), articlestore.CreateInput{
		Title:      in.Title,
		Slug:       in.Slug,
		Status:     models.Status(normalize.Status(in.Status)),
		Category:   in.Category,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		FAQ:        in.FAQ,
		CoverImage: in.CoverImage,
		SEO:        in.SEO,
		AuthorName: in.AuthorName,
		Featured:   in.Featured,
	})
	if err == articlestore.ErrBadCategory {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "article")
		return
	}
	h.logger.Info("article created",
		zap.String("id", a.ID.Hex()),
		zap.String("category", string(a.Category)),
		zap.String("slug", a.Slug),
	)
	jsonutil.Created(w, a)
}

func (h *Handler) getArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "article")
		return
	}
	jsonutil.OK(w, a)
}

func (h *Handler) updateArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in updateArticleInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.articles.Update(r.Context(), authz.FromRequest(r), id, articlestore.UpdateInput{
		Title:      in.Title,
		Slug:       in.Slug,
		Category:   in.Category,
		Excerpt:    in.Excerpt,
		Content:    in.Content,
		FAQ:        in.FAQ,
		CoverImage: in.CoverImage,
		SEO:        in.SEO,
		AuthorName: in.AuthorName,
		Featured:   in.Featured,
	})
	if err == articlestore.ErrBadCategory {
		jsonutil.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.storeError(w, r, err, "article")
		return
	}
	a, err := h.articles.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err, "article")
		return
	}
	jsonutil.OK(w, a)
}

func (h *Handler) setArticleStatus(w http.ResponseWriter, r *http.Request) {
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
	if err := h.articles.SetStatus(r.Context(), authz.FromRequest(r), id, models.Status(in.Status)); err != nil {
		h.storeError(w, r, err, "article")
		return
	}
	jsonutil.NoContent(w)
}

func (h *Handler) deleteArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	n, err := h.articles.Delete(r.Context(), authz.FromRequest(r), id)
	if err != nil {
		h.storeError(w, r, err, "article")
		return
	}
	if n == 0 {
		jsonutil.NotFound(w, "article not found")
		return
	}
	h.logger.Info("article deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}
