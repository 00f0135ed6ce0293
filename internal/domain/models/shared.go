// internal/domain/models/shared.go
package models

// SEO holds the per-page metadata admins can override for a content entity.
type SEO struct {
	Title       string `bson:"title,omitempty" json:"title,omitempty"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
}

// ImageRef is a stored reference to an uploaded image on the media host.
// Only the URL is interpreted by this application; Alt and Caption are
// passed through to rendering.
type ImageRef struct {
	URL     string `bson:"url,omitempty" json:"url,omitempty"`
	Alt     string `bson:"alt,omitempty" json:"alt,omitempty"`
	Caption string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// FAQItem is a question/answer pair attached to an article.
type FAQItem struct {
	Question string `bson:"question" json:"question"`
	Answer   string `bson:"answer" json:"answer"`
}
