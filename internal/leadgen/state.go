// Package leadgen implements the lead-generation orchestration engine: a
// staged state machine that classifies a domain, fans out two independent
// discovery paths, and reconciles their leads into one deduplicated list.
package leadgen

import (
	"github.com/google/uuid"

	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// RunState is the shared context threading through one lead-gen run. It is
// owned exclusively by the engine; discovery branches return contributions
// which the engine folds in via explicit updates at stage boundaries.
type RunState struct {
	RunID                string          `json:"run_id"`
	DomainName           string          `json:"domain_name"`
	ClassificationOutput string          `json:"classification_output,omitempty"`
	ResearchBrief        string          `json:"research_brief,omitempty"`
	SupervisorMessages   []model.Message `json:"supervisor_messages,omitempty"`
	Notes                []string        `json:"notes,omitempty"`
	Leads                []model.Lead    `json:"leads,omitempty"`
}

// NewRunState creates the initial state for a domain request.
func NewRunState(domainName string) *RunState {
	return &RunState{
		RunID:      uuid.New().String(),
		DomainName: domainName,
	}
}

// Update is a single-field state transition. Each field has a fixed merge
// policy (append vs replace); stages emit updates and the engine applies
// them, so no stage ever mutates shared state directly.
type Update interface {
	apply(*RunState)
}

// Apply folds updates into the state in order.
func (s *RunState) Apply(updates ...Update) {
	for _, u := range updates {
		u.apply(s)
	}
}

// appendLeads adds discovery output to the lead collection. Both discovery
// paths contribute with append semantics.
type appendLeads []model.Lead

func (u appendLeads) apply(s *RunState) {
	s.Leads = append(s.Leads, u...)
}

// setLeads replaces the lead collection wholesale. Dedup passes use replace
// semantics: appending their output would duplicate every lead per pass.
type setLeads []model.Lead

func (u setLeads) apply(s *RunState) {
	s.Leads = u
}

// appendNotes adds research diagnostics; notes are append-only for the run.
type appendNotes []string

func (u appendNotes) apply(s *RunState) {
	s.Notes = append(s.Notes, u...)
}

// setMessages replaces the supervisor conversation. Seeding must never leave
// stale prior context behind, so the message sequence is overwritten.
type setMessages []model.Message

func (u setMessages) apply(s *RunState) {
	s.SupervisorMessages = u
}

// setClassification records the classification stage output and the research
// brief derived from it. Both are set once.
type setClassification struct {
	output string
	brief  string
}

func (u setClassification) apply(s *RunState) {
	s.ClassificationOutput = u.output
	s.ResearchBrief = u.brief
}
