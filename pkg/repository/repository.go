package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/leaddesk/internal/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// ErrNotFound is returned by operations that target a single record by id
// when no such record exists.
var ErrNotFound = errors.New("not found")

type LeadRepo interface {
	// CreateLead inserts a lead and returns its id. A missing id is assigned
	// and timestamps are stamped by the implementation.
	CreateLead(ctx context.Context, l *models.Lead) (string, error)

	// GetLeadByID returns the lead or (nil, nil) when the id is unknown.
	GetLeadByID(ctx context.Context, id string) (*models.Lead, error)

	// ListLeads evaluates a filter+sort+page query and returns the matching
	// slice plus the total count over the filtered set.
	ListLeads(ctx context.Context, q models.LeadQuery) (*models.LeadPage, error)

	// UpdateLeadStatus transitions a lead's status, bumps its updated
	// timestamp and returns the fresh record. Returns ErrNotFound for an
	// unknown id.
	UpdateLeadStatus(ctx context.Context, id, status string) (*models.Lead, error)
}

type UserRepo interface {
	CreateUser(ctx context.Context, u *models.User) (string, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}
