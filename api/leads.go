package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/microcosm-cc/bluemonday"

	"github.com/garnizeh/leaddesk/internal/models"
	"github.com/garnizeh/leaddesk/internal/pubsub"
	"github.com/garnizeh/leaddesk/internal/validation"
	"github.com/garnizeh/leaddesk/pkg/repository"
)

// maxSubmitBytes bounds the JSON body of a public submission; resumes go
// through the upload endpoint, so the form payload itself is small.
const maxSubmitBytes = 64 << 10

// sanitizer strips all HTML from free-text input before it is stored.
var sanitizer = bluemonday.StrictPolicy()

type LeadsHandler struct {
	leadRepo repository.LeadRepo
	bus      pubsub.Broadcaster
}

func NewLeadsHandler(lr repository.LeadRepo, bus pubsub.Broadcaster) *LeadsHandler {
	return &LeadsHandler{leadRepo: lr, bus: bus}
}

type submitLeadRequest struct {
	FirstName          string   `json:"firstName"`
	LastName           string   `json:"lastName"`
	Email              string   `json:"email"`
	Country            string   `json:"country"`
	LinkedinURL        string   `json:"linkedinUrl"`
	VisaCategories     []string `json:"visaCategories"`
	AdditionalInfo     *string  `json:"additionalInfo,omitempty"`
	ResumePath         *string  `json:"resumePath,omitempty"`
	ResumeOriginalName *string  `json:"resumeOriginalName,omitempty"`
}

// Submit handles the public intake form. Validation runs against the raw
// body before anything touches the store; a failure never creates a row and
// never reaches the broadcaster.
func (h *LeadsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmitBytes))
	if err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	if fieldErrs := validation.CheckLeadSubmission(ctx, body); fieldErrs != nil {
		writeJSON(w, map[string]any{
			"error":  "validation failed",
			"fields": fieldErrs,
		}, http.StatusBadRequest)
		return
	}

	var req submitLeadRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if req.AdditionalInfo != nil {
		clean := strings.TrimSpace(sanitizer.Sanitize(*req.AdditionalInfo))
		if clean == "" {
			req.AdditionalInfo = nil
		} else {
			req.AdditionalInfo = &clean
		}
	}

	lead := &models.Lead{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Email:              strings.TrimSpace(req.Email),
		Country:            strings.TrimSpace(req.Country),
		LinkedinURL:        strings.TrimSpace(req.LinkedinURL),
		VisaCategories:     req.VisaCategories,
		AdditionalInfo:     req.AdditionalInfo,
		ResumePath:         req.ResumePath,
		ResumeOriginalName: req.ResumeOriginalName,
		Status:             models.StatusPending,
	}

	if _, err := h.leadRepo.CreateLead(ctx, lead); err != nil {
		logger.Error("create lead", slog.Any("err", err))
		writeError(w, "failed to store lead", http.StatusInternalServerError)
		return
	}

	recordLeadReceived()
	h.publish(models.EventLeadCreated, *lead)

	writeJSON(w, lead, http.StatusCreated)
}

// List evaluates a dashboard query: search + status filter + sort + page.
func (h *LeadsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	status := q.Get("status")
	if status != "" && !models.ValidStatus(status) {
		writeError(w, "unknown status filter", http.StatusBadRequest)
		return
	}

	page := 1
	if p := q.Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v >= 1 {
			page = v
		}
	}
	pageSize := models.DefaultPageSize
	if s := q.Get("pageSize"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			pageSize = v
		}
	}

	leadQuery := models.LeadQuery{
		Search:    strings.TrimSpace(q.Get("search")),
		Status:    status,
		Page:      page,
		PageSize:  pageSize,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	result, err := h.leadRepo.ListLeads(r.Context(), leadQuery)
	if err != nil {
		logger.Error("list leads", slog.Any("err", err))
		writeError(w, "failed to list leads", http.StatusInternalServerError)
		return
	}

	writeJSON(w, result, http.StatusOK)
}

func (h *LeadsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	lead, err := h.leadRepo.GetLeadByID(r.Context(), id)
	if err != nil {
		logger.Error("get lead", slog.String("id", id), slog.Any("err", err))
		writeError(w, "failed to get lead", http.StatusInternalServerError)
		return
	}
	if lead == nil {
		writeError(w, "lead not found", http.StatusNotFound)
		return
	}

	writeJSON(w, lead, http.StatusOK)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *LeadsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !models.ValidStatus(req.Status) {
		writeError(w, "unknown status", http.StatusBadRequest)
		return
	}

	lead, err := h.leadRepo.UpdateLeadStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, "lead not found", http.StatusNotFound)
			return
		}
		logger.Error("update lead status", slog.String("id", id), slog.Any("err", err))
		writeError(w, "failed to update lead", http.StatusInternalServerError)
		return
	}

	h.publish(models.EventLeadUpdated, *lead)

	writeJSON(w, lead, http.StatusOK)
}

// publish broadcasts after the write committed, before the response is sent.
// Live dashboards treat the event as a hint to re-query, so payload freshness
// races with concurrent readers are benign.
func (h *LeadsHandler) publish(eventType string, lead models.Lead) {
	h.bus.Publish(models.LeadEvent{Type: eventType, Payload: lead})
	recordLeadEvent(eventType)
}
