// internal/domain/models/status.go
package models

import "strings"

// Status is the publish lifecycle state shared by every content entity
// (Service, Country, Article, TeamMember, Testimonial, License).
// Entities start as draft, become publicly visible only when published,
// and are withdrawn by archiving. Transitions are not order-enforced;
// archived content can be republished.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// AllStatusValues returns the valid publish statuses as strings.
func AllStatusValues() []string {
	return []string{
		string(StatusDraft),
		string(StatusPublished),
		string(StatusArchived),
	}
}

// IsValidStatus checks if a publish status value is valid.
func IsValidStatus(s string) bool {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
