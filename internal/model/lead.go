package model

import "strings"

// Lead represents a discovered candidate buyer for a domain.
type Lead struct {
	Website         string         `json:"website"`
	DetailedSummary string         `json:"detailed_summary"`
	Rationale       string         `json:"rationale"`
	Tier            string         `json:"tier,omitempty"`
	Metadata        map[string]any `json:"meta_data,omitempty"`
}

// Valid reports whether the lead carries all required fields. Tier and
// Metadata are optional; unknown tier labels are passed through opaque.
func (l Lead) Valid() bool {
	return strings.TrimSpace(l.Website) != "" &&
		strings.TrimSpace(l.DetailedSummary) != "" &&
		strings.TrimSpace(l.Rationale) != ""
}

// LeadList is the structured-extraction envelope returned by lead
// extraction prompts.
type LeadList struct {
	Leads []Lead `json:"leads"`
}

// MessageRoleSystem and MessageRoleUser are the roles used when seeding
// the research supervisor's conversation.
const (
	MessageRoleSystem = "system"
	MessageRoleUser   = "user"
)

// Message is a single entry in the research supervisor's seeded
// conversation context.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
