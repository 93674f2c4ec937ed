package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/garnizeh/leaddesk/internal/models"
	"github.com/garnizeh/leaddesk/pkg/repository"
)

const leadColumns = `id, first_name, last_name, email, country, linkedin_url, visa_categories, resume_path, resume_original_name, additional_info, status, created, updated`

func (r *SQLiteRepo) CreateLead(ctx context.Context, l *models.Lead) (string, error) {
	if l == nil {
		return "", fmt.Errorf("lead is nil")
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = models.StatusPending
	}
	cats, err := models.EncodeCategories(l.VisaCategories)
	if err != nil {
		return "", fmt.Errorf("encode visa categories: %w", err)
	}

	ts := now()
	l.Created = ts
	l.Updated = ts

	_, err = r.conn.Exec(ctx,
		`INSERT INTO leads (`+leadColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.FirstName, l.LastName, l.Email, l.Country, l.LinkedinURL, cats,
		l.ResumePath, l.ResumeOriginalName, l.AdditionalInfo, l.Status, l.Created, l.Updated)
	if err != nil {
		return "", err
	}

	return l.ID, nil
}

func (r *SQLiteRepo) GetLeadByID(ctx context.Context, id string) (*models.Lead, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return l, nil
}

// ListLeads translates a LeadQuery into a deterministic, paginated slice plus
// the total count over the filtered set. The secondary sort on id keeps
// pagination stable when the primary sort column has ties.
func (r *SQLiteRepo) ListLeads(ctx context.Context, q models.LeadQuery) (*models.LeadPage, error) {
	q = q.Normalize()

	var conds []string
	var args []any

	if q.Search != "" {
		term := "%" + q.Search + "%"
		conds = append(conds, `(first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR country LIKE ?)`)
		args = append(args, term, term, term, term)
	}
	if q.Status != "" {
		conds = append(conds, `status = ?`)
		args = append(args, q.Status)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM leads`+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count leads: %w", err)
	}

	col := map[string]string{
		models.SortByName:    "first_name",
		models.SortByCreated: "created",
		models.SortByStatus:  "status",
		models.SortByCountry: "country",
	}[q.SortBy]
	dir := "ASC"
	if q.SortOrder == "desc" {
		dir = "DESC"
	}
	offset := (q.Page - 1) * q.PageSize

	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		fmt.Sprintf(` ORDER BY %s %s, id ASC LIMIT ? OFFSET ?`, col, dir)
	rows, err := r.conn.QueryRows(ctx, query, append(args, q.PageSize, offset)...)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	items := []models.Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))

	return &models.LeadPage{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func (r *SQLiteRepo) UpdateLeadStatus(ctx context.Context, id, status string) (*models.Lead, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}

	res, err := r.conn.Exec(ctx, `UPDATE leads SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}

	l, err := r.GetLeadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLead(s scanner) (*models.Lead, error) {
	var l models.Lead
	var cats string
	var resumePath, resumeName, info sql.NullString
	if err := s.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.Country, &l.LinkedinURL,
		&cats, &resumePath, &resumeName, &info, &l.Status, &l.Created, &l.Updated); err != nil {
		return nil, err
	}

	decoded, err := models.DecodeCategories(cats)
	if err != nil {
		return nil, fmt.Errorf("decode visa categories for lead %s: %w", l.ID, err)
	}
	l.VisaCategories = decoded

	if resumePath.Valid {
		l.ResumePath = &resumePath.String
	}
	if resumeName.Valid {
		l.ResumeOriginalName = &resumeName.String
	}
	if info.Valid {
		l.AdditionalInfo = &info.String
	}

	return &l, nil
}
