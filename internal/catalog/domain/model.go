package domain

import (
	"strings"
	"time"
)

// CategoryGroup is the fixed top-level classification of a plan.
type CategoryGroup string

const (
	CategoryResidential CategoryGroup = "Residential"
	CategoryCommercial  CategoryGroup = "Commercial"
	CategorySocial      CategoryGroup = "Social"
	CategoryInterior    CategoryGroup = "Interior"
	CategoryRenovation  CategoryGroup = "Renovation"

	// CategoryAll disables the category predicate.
	CategoryAll = "all"
)

var CategoryGroups = []CategoryGroup{
	CategoryResidential,
	CategoryCommercial,
	CategorySocial,
	CategoryInterior,
	CategoryRenovation,
}

// ParseCategoryGroup matches s case-insensitively against the known groups.
func ParseCategoryGroup(s string) (CategoryGroup, bool) {
	s = strings.TrimSpace(s)
	for _, g := range CategoryGroups {
		if strings.EqualFold(string(g), s) {
			return g, true
		}
	}
	return "", false
}

// Plan status values
const (
	PlanStatusDraft     = "draft"
	PlanStatusPublished = "published"
	PlanStatusArchived  = "archived"
)

// Inquiry status values
const (
	InquiryStatusNew        = "new"
	InquiryStatusContacted  = "contacted"
	InquiryStatusInProgress = "in-progress"
	InquiryStatusClosed     = "closed"
)

// Custom request status values
const (
	RequestStatusNew        = "new"
	RequestStatusContacted  = "contacted"
	RequestStatusInProgress = "in-progress"
	RequestStatusCompleted  = "completed"
)

// PlaceholderImage is used for plans that carry no image at all.
const PlaceholderImage = "/images/placeholder-plan.jpg"

// PlanRecord is an architectural design listing.
type PlanRecord struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Architect     string        `json:"architect,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
	Price         float64       `json:"price"`
	Rooms         int           `json:"rooms"`
	Floors        int           `json:"floors"`
	CategoryGroup CategoryGroup `json:"category"`
	Subcategory   string        `json:"subcategory,omitempty"`
	Featured      bool          `json:"featured"`
	NewListing    bool          `json:"newListing"`
	Customizable  bool          `json:"customizable"`
	Premium       bool          `json:"premium"`
	Images        []string      `json:"images"`
	Views         int           `json:"views"`
	Favorites     int           `json:"favorites"`
	Inquiries     int           `json:"inquiries"`
	Rating        float64       `json:"rating"`
	Downloads     int           `json:"downloads"`
	CreatedAt     *time.Time    `json:"createdAt,omitempty"`
	Status        string        `json:"status"`
}

// InquiryRecord is a visitor message about an existing plan.
type InquiryRecord struct {
	ID           string     `json:"id"`
	ClientName   string     `json:"clientName"`
	ClientEmail  string     `json:"clientEmail"`
	ProjectTitle string     `json:"projectTitle"`
	Message      string     `json:"message"`
	Status       string     `json:"status"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
}

// CustomRequestRecord is a lead asking for a bespoke design.
type CustomRequestRecord struct {
	ID          string     `json:"id"`
	ClientName  string     `json:"clientName"`
	ClientEmail string     `json:"clientEmail"`
	ClientPhone string     `json:"clientPhone,omitempty"`
	ProjectType string     `json:"projectType"`
	Rooms       string     `json:"rooms,omitempty"`
	Budget      string     `json:"budget,omitempty"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Category is an entry of the public category listing.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Group         string   `json:"group,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
}

// IsValidPlanStatus checks if a status is valid for plans
func IsValidPlanStatus(status string) bool {
	return status == PlanStatusDraft ||
		status == PlanStatusPublished ||
		status == PlanStatusArchived
}

// IsValidInquiryStatus checks if a status is valid for inquiries
func IsValidInquiryStatus(status string) bool {
	return status == InquiryStatusNew ||
		status == InquiryStatusContacted ||
		status == InquiryStatusInProgress ||
		status == InquiryStatusClosed
}

// IsValidRequestStatus checks if a status is valid for custom requests
func IsValidRequestStatus(status string) bool {
	return status == RequestStatusNew ||
		status == RequestStatusContacted ||
		status == RequestStatusInProgress ||
		status == RequestStatusCompleted
}
