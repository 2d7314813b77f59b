package shop

import "time"

type Shop struct {
	ID               int64          `json:"id"`
	OwnerID          int64          `json:"ownerId"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Address          string         `json:"address"`
	Phone            string         `json:"phone"`
	Email            *string        `json:"email,omitempty"`
	WorkingHours     WeeklySchedule `json:"workingHours"`
	IsOnline         bool           `json:"isOnline"`
	ManualOverrideAt *time.Time     `json:"manualOverrideAt,omitempty"`
	AcceptsWalkin    bool           `json:"acceptsWalkin"`
	IsApproved       bool           `json:"isApproved"`
	IsPublic         bool           `json:"isPublic"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// DaySchedule is the canonical shape for one weekday. Legacy formats are
// converted into this before anything reads them.
type DaySchedule struct {
	Open      string `json:"open"`
	Close     string `json:"close"`
	Closed    bool   `json:"closed"`
	Is24Hours bool   `json:"is24Hours"`
}

// WeeklySchedule maps lowercase weekday names ("monday".."sunday") to their
// schedule. A missing day means the shop is closed that day.
type WeeklySchedule map[string]DaySchedule

// Status is the computed open/closed verdict for a shop.
type Status struct {
	IsOpen bool   `json:"isOpen"`
	Reason string `json:"reason"`
}

const (
	ReasonSchedule = "following schedule"
	ReasonOverride = "manual override active"
)
