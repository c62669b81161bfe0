package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	StreetLights   IssueCategory = "Street Lights"
	RoadProblems   IssueCategory = "Road Problems"
	DrainageIssues IssueCategory = "Drainage Issues"
	WaterSupply    IssueCategory = "Water Supply"
)

// ValidCategory reports whether c is part of the fixed taxonomy.
func ValidCategory(c string) bool {
	switch IssueCategory(c) {
	case StreetLights, RoadProblems, DrainageIssues, WaterSupply:
		return true
	}
	return false
}

// IssueStatus enum
type IssueStatus string

const (
	Pending    IssueStatus = "pending"
	InProgress IssueStatus = "in_progress"
	Resolved   IssueStatus = "resolved"
)

// ParseStatus normalizes a raw status string into the enum. All status
// comparisons in the codebase go through IssueStatus values, never raw
// strings.
func ParseStatus(s string) (IssueStatus, bool) {
	switch st := IssueStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case Pending, InProgress, Resolved:
		return st, true
	}
	return "", false
}

// CanTransition reports whether an administrative status change from s to
// target is allowed. Resolved is terminal and can only be entered through the
// resolve flow, which carries evidence.
func (s IssueStatus) CanTransition(target IssueStatus) bool {
	return s != Resolved && target != Resolved
}

// Urgency enum
type Urgency string

const (
	Low    Urgency = "low"
	Medium Urgency = "medium"
	High   Urgency = "high"
)

// ParseUrgency normalizes a raw urgency string into the enum.
func ParseUrgency(s string) (Urgency, bool) {
	switch u := Urgency(strings.ToLower(strings.TrimSpace(s))); u {
	case Low, Medium, High:
		return u, true
	}
	return "", false
}

// BenefitType discriminates community reports from government-scheme requests.
type BenefitType string

const (
	CommunityIssue   BenefitType = "COMMUNITY_ISSUE"
	GovernmentScheme BenefitType = "GOVERNMENT_SCHEME"
)

// Location is a geotag attached to every report.
type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Resolution is the evidence record closing an issue. It exists iff the
// issue's status is resolved and is written in the same store operation that
// flips the status, so it is never observed half-populated.
type Resolution struct {
	Description string    `bson:"description" json:"description"`
	Image       *string   `bson:"image,omitempty" json:"image,omitempty"`
	ResolvedAt  time.Time `bson:"resolvedAt" json:"resolvedAt"`
	ResolvedBy  string    `bson:"resolvedBy" json:"resolvedBy"`
}

// Issue represents a civic problem or government-scheme request reported by a
// citizen and tracked through the status lifecycle.
type Issue struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    IssueCategory      `bson:"category,omitempty" json:"category,omitempty"`
	BenefitType BenefitType        `bson:"benefitType" json:"benefitType"`
	SchemeName  string             `bson:"schemeName,omitempty" json:"schemeName,omitempty"`
	Location    Location           `bson:"location" json:"location"`
	Urgency     Urgency            `bson:"urgency" json:"urgency"`
	Status      IssueStatus        `bson:"status" json:"status"`
	UserEmail   string             `bson:"userEmail" json:"userEmail"`
	Image       *string            `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	Resolution  *Resolution        `bson:"resolution,omitempty" json:"resolution,omitempty"`
}

// Validate checks the cross-field invariants enforced at ingest: schemeName is
// set iff the report is a government-scheme request, and community issues
// carry a category from the fixed taxonomy.
func (i *Issue) Validate() error {
	switch i.BenefitType {
	case GovernmentScheme:
		if strings.TrimSpace(i.SchemeName) == "" {
			return fmt.Errorf("%w: schemeName is required for government scheme requests", ErrInvalidInput)
		}
	case CommunityIssue:
		if i.SchemeName != "" {
			return fmt.Errorf("%w: schemeName is only valid for government scheme requests", ErrInvalidInput)
		}
		if !ValidCategory(string(i.Category)) {
			return fmt.Errorf("%w: invalid category %q", ErrInvalidInput, i.Category)
		}
	default:
		return fmt.Errorf("%w: invalid benefit type %q", ErrInvalidInput, i.BenefitType)
	}
	if _, ok := ParseUrgency(string(i.Urgency)); !ok {
		return fmt.Errorf("%w: invalid urgency %q", ErrInvalidInput, i.Urgency)
	}
	return nil
}
