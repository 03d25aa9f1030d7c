package transport

import (
	"time"
)

// Enum values
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
)

// Valid reports whether the status is one of the known lifecycle values.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusConverted:
		return true
	}
	return false
}

type Recurrence string

const (
	RecurrenceOnce     Recurrence = "once"
	RecurrenceTomorrow Recurrence = "tomorrow"
	RecurrenceThreeDay Recurrence = "3days"
	RecurrenceWeekly   Recurrence = "weekly"
)

// FollowUp is the optional scheduled reminder attached to a lead.
// Absence of the record means no follow-up is scheduled.
type FollowUp struct {
	Date          *time.Time `json:"date"`
	Recurrence    Recurrence `json:"recurrence,omitempty" validate:"omitempty,oneof=once tomorrow 3days weekly"`
	Message       string     `json:"message,omitempty"`
	WhatsappOptIn bool       `json:"whatsappOptIn"`
	Active        bool       `json:"active"`
}

// Validate enforces that an active follow-up carries a date. The remote
// API does not check this, so it has to hold before any save.
func (f *FollowUp) Validate() error {
	if f == nil {
		return nil
	}
	if f.Active && f.Date == nil {
		return errActiveWithoutDate
	}
	return nil
}

// Clone returns a deep copy.
func (f *FollowUp) Clone() *FollowUp {
	if f == nil {
		return nil
	}
	clone := *f
	if f.Date != nil {
		date := *f.Date
		clone.Date = &date
	}
	return &clone
}

// Lead is the central entity. The client never owns one: this is a cached,
// possibly-stale copy whose source of truth is the remote store.
type Lead struct {
	ID          string                 `json:"_id"`
	FullName    string                 `json:"fullName,omitempty"`
	Email       string                 `json:"email,omitempty"`
	Phone       string                 `json:"phone,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Source      string                 `json:"source"`
	Status      LeadStatus             `json:"status"`
	CreatedAt   time.Time              `json:"createdAt"`
	ExtraFields map[string]interface{} `json:"extraFields,omitempty"`
	FollowUp    *FollowUp              `json:"followUp,omitempty"`
}

// Clone returns a deep copy, used for optimistic-mutation snapshots.
func (l Lead) Clone() Lead {
	clone := l
	if l.ExtraFields != nil {
		clone.ExtraFields = make(map[string]interface{}, len(l.ExtraFields))
		for k, v := range l.ExtraFields {
			clone.ExtraFields[k] = v
		}
	}
	clone.FollowUp = l.FollowUp.Clone()
	return clone
}

// CloneLeads deep-copies a lead collection.
func CloneLeads(leads []Lead) []Lead {
	if leads == nil {
		return nil
	}
	clones := make([]Lead, len(leads))
	for i, l := range leads {
		clones[i] = l.Clone()
	}
	return clones
}

// Request DTOs

// CreateLeadRequest is the unauthenticated public submission payload.
type CreateLeadRequest struct {
	FullName    string                 `json:"fullName" validate:"required,min=1,max=200"`
	Email       string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string                 `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Message     string                 `json:"message,omitempty" validate:"omitempty,max=5000"`
	Source      string                 `json:"source" validate:"required,min=1,max=100"`
	ExtraFields map[string]interface{} `json:"extraFields,omitempty"`
}

// UpdateLeadRequest is a partial update; nil fields are left untouched
// by the remote store.
type UpdateLeadRequest struct {
	FullName *string     `json:"fullName,omitempty" validate:"omitempty,min=1,max=200"`
	Email    *string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone    *string     `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Message  *string     `json:"message,omitempty" validate:"omitempty,max=5000"`
	Status   *LeadStatus `json:"status,omitempty" validate:"omitempty,oneof=new contacted converted"`
	FollowUp *FollowUp   `json:"followUp,omitempty"`
}

// ListFilters is the recognized filter state for a list call.
// StatusFilter accepts the three lifecycle values, "all"/"" for no
// status filtering, or a followup_* pseudo-filter that maps to the
// separate followupFilter query parameter.
type ListFilters struct {
	StatusFilter string `validate:"omitempty,oneof=all new contacted converted followup_today followup_missed followup_week followup_next24"`
	Search       string `validate:"omitempty,max=200"`
	StartDate    string `validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `validate:"omitempty,datetime=2006-01-02"`
}

// StatusCounts carries the per-status counters from the list envelope.
type StatusCounts struct {
	New       int `json:"newLeadsCount"`
	Contacted int `json:"contactedCount"`
	Converted int `json:"convertedCount"`
}

// Envelope is the normalized list result. The remote API may answer with
// a bare lead array or a wrapper object; the client always reduces both
// to this shape.
type Envelope struct {
	Leads      []Lead       `json:"leads"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	TotalLeads int          `json:"totalLeads"`
	Counts     StatusCounts `json:"counts"`
}
