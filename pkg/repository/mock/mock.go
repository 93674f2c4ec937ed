package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/garnizeh/leaddesk/internal/models"
	"github.com/garnizeh/leaddesk/pkg/repository"
)

// Test helpers and mocks
type Mocks struct {
	LeadRepo *LeadRepo
	UserRepo *UserRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		LeadRepo: &LeadRepo{},
		UserRepo: &UserRepo{},
	}
}

// LeadRepo is an in-memory repository.LeadRepo. Error fields, when set, are
// returned by the corresponding operation.
type LeadRepo struct {
	Leads     []models.Lead
	CreateErr error
	ListErr   error
	UpdateErr error
}

var _ repository.LeadRepo = (*LeadRepo)(nil)

func (m *LeadRepo) CreateLead(ctx context.Context, l *models.Lead) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	m.Leads = append(m.Leads, *l)
	return l.ID, nil
}

func (m *LeadRepo) GetLeadByID(ctx context.Context, id string) (*models.Lead, error) {
	for i := range m.Leads {
		if m.Leads[i].ID == id {
			l := m.Leads[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (m *LeadRepo) ListLeads(ctx context.Context, q models.LeadQuery) (*models.LeadPage, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	q = q.Normalize()
	items := append([]models.Lead(nil), m.Leads...)
	total := int64(len(items))
	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &models.LeadPage{Items: items, Total: total, Page: q.Page, PageSize: q.PageSize, TotalPages: totalPages}, nil
}

func (m *LeadRepo) UpdateLeadStatus(ctx context.Context, id, status string) (*models.Lead, error) {
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	for i := range m.Leads {
		if m.Leads[i].ID == id {
			m.Leads[i].Status = status
			l := m.Leads[i]
			return &l, nil
		}
	}
	return nil, repository.ErrNotFound
}

// UserRepo is an in-memory repository.UserRepo holding a single user.
type UserRepo struct {
	Stored    *models.User
	LookupErr error
}

var _ repository.UserRepo = (*UserRepo)(nil)

func (m *UserRepo) CreateUser(ctx context.Context, u *models.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	m.Stored = u
	return u.ID, nil
}

func (m *UserRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.LookupErr != nil {
		return nil, m.LookupErr
	}
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}
