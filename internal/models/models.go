package models

import "encoding/json"

// Lead statuses. A lead starts as PENDING and may be toggled between the two
// values from the dashboard; there are no other transitions.
const (
	StatusPending    = "PENDING"
	StatusReachedOut = "REACHED_OUT"
)

// VisaCategories is the closed set of values accepted in Lead.VisaCategories.
var VisaCategories = []string{"O-1", "EB-1A", "EB-2 NIW", "I don't know"}

// ValidStatus reports whether s is one of the known lead statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusReachedOut
}

type Lead struct {
	ID                 string   `json:"id" db:"id"`
	FirstName          string   `json:"firstName" db:"first_name"`
	LastName           string   `json:"lastName" db:"last_name"`
	Email              string   `json:"email" db:"email"`
	Country            string   `json:"country" db:"country"`
	LinkedinURL        string   `json:"linkedinUrl" db:"linkedin_url"`
	VisaCategories     []string `json:"visaCategories" db:"visa_categories"`
	ResumePath         *string  `json:"resumePath" db:"resume_path"`
	ResumeOriginalName *string  `json:"resumeOriginalName" db:"resume_original_name"`
	AdditionalInfo     *string  `json:"additionalInfo" db:"additional_info"`
	Status             string   `json:"status" db:"status"`
	Created            int64    `json:"createdAt" db:"created"`
	Updated            int64    `json:"updatedAt" db:"updated"`
}

// User is a dashboard principal. Users are provisioned out-of-band (seed or
// admin tooling); the service only ever reads them.
type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Created      int64  `json:"createdAt" db:"created"`
	Updated      int64  `json:"updatedAt" db:"updated"`
}

// Lead event types broadcast to live dashboard clients.
const (
	EventLeadCreated = "lead.created"
	EventLeadUpdated = "lead.updated"
)

// LeadEvent is the ephemeral notification published after a successful lead
// write. It is never persisted; a subscriber that connects after a publish
// never sees it.
type LeadEvent struct {
	Type    string `json:"type"`
	Payload Lead   `json:"payload"`
}

// PageSizes is the allowed set for LeadQuery.PageSize.
var PageSizes = []int{10, 15, 20, 25, 30}

const DefaultPageSize = 10

// Lead list sort fields.
const (
	SortByName    = "name"
	SortByCreated = "createdAt"
	SortByStatus  = "status"
	SortByCountry = "country"
)

// LeadQuery describes one dashboard list request: optional case-insensitive
// search over name/email/country, optional exact status filter, 1-indexed
// pagination and a single sort column. Constructed per request, never stored.
type LeadQuery struct {
	Search    string
	Status    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Normalize clamps a query to its documented bounds: page floors at 1, page
// size falls back to the default when not in the allowed set, unknown sort
// fields fall back to createdAt desc.
func (q LeadQuery) Normalize() LeadQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	allowed := false
	for _, s := range PageSizes {
		if q.PageSize == s {
			allowed = true
			break
		}
	}
	if !allowed {
		q.PageSize = DefaultPageSize
	}
	switch q.SortBy {
	case SortByName, SortByCreated, SortByStatus, SortByCountry:
	default:
		q.SortBy = SortByCreated
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		if q.SortBy == SortByCreated {
			q.SortOrder = "desc"
		} else {
			q.SortOrder = "asc"
		}
	}
	return q
}

// LeadPage is the result of one LeadQuery: the matching slice plus enough
// bookkeeping for the client to render pagination controls. TotalPages is
// ceil(Total/PageSize); 0 when nothing matches.
type LeadPage struct {
	Items      []Lead `json:"items"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalPages int    `json:"totalPages"`
}

// EncodeCategories serializes a visa-category list to the JSON text stored in
// the leads row.
func EncodeCategories(cats []string) (string, error) {
	b, err := json.Marshal(cats)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeCategories parses the stored JSON text back to a list. Every read
// boundary goes through this so callers always see []string.
func DecodeCategories(raw string) ([]string, error) {
	var cats []string
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		return nil, err
	}
	return cats, nil
}
