package model

import "time"

// Category is the hotel department a request is routed to.
type Category string

const (
	CategoryRoomService    Category = "room_service"
	CategoryMaintenance    Category = "maintenance"
	CategoryHousekeeping   Category = "housekeeping"
	CategoryFrontDesk      Category = "front_desk"
	CategoryConcierge      Category = "concierge"
	CategoryBilling        Category = "billing"
	CategoryNoiseComplaint Category = "noise_complaint"
	CategoryAmenities      Category = "amenities"
	CategoryVIPUrgent      Category = "vip_urgent"
	CategoryOther          Category = "other"
)

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks whether the category is a known value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryRoomService, CategoryMaintenance, CategoryHousekeeping,
		CategoryFrontDesk, CategoryConcierge, CategoryBilling,
		CategoryNoiseComplaint, CategoryAmenities, CategoryVIPUrgent,
		CategoryOther:
		return true
	}
	return false
}

// Categories lists every valid category, in prompt order.
func Categories() []Category {
	return []Category{
		CategoryRoomService, CategoryMaintenance, CategoryHousekeeping,
		CategoryFrontDesk, CategoryConcierge, CategoryBilling,
		CategoryNoiseComplaint, CategoryAmenities, CategoryVIPUrgent,
		CategoryOther,
	}
}

// Priority reflects guest impact and urgency.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid checks whether the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Verdict is the classification result for one request within one run.
// Exactly one verdict is produced per request that entered the classify
// stage of a run.
type Verdict struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	RequestID string    `json:"request_id"`
	Category  Category  `json:"category"`
	Priority  Priority  `json:"priority"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Populated by joins, not stored in the verdicts table.
	Request *Request `json:"request,omitempty"`
}
