package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
)

func (h *Handler) adminDashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Dashboard(r.Context())
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) adminListStudents(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	resp, err := h.service.ListStudents(r.Context(), limit, offset)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"students": resp,
		"pagination": map[string]any{
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *Handler) adminListPending(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	resp, err := h.service.ListPending(r.Context(), limit, offset)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"students": resp,
		"pagination": map[string]any{
			"limit":  limit,
			"offset": offset,
		},
	})
}

func (h *Handler) adminApproveStudent(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user_id")
		return
	}
	if err := h.service.ApproveStudent(r.Context(), userID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"user_id": userID.String(),
		"status":  string(domain.AccountStatusApproved),
	})
}

func (h *Handler) adminRejectStudent(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user_id")
		return
	}
	if err := h.service.RejectStudent(r.Context(), userID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"user_id": userID.String(),
		"status":  string(domain.AccountStatusRejected),
	})
}

func (h *Handler) adminDeleteStudent(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid user_id")
		return
	}
	if err := h.service.DeleteStudent(r.Context(), userID); err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeMessage(w, http.StatusOK, "student removed")
}

func (h *Handler) adminListBannedWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.service.ListBannedWords(r.Context())
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"banned_words": words})
}

func (h *Handler) adminAddBannedWord(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Term string `json:"term"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	word, err := h.service.AddBannedTerm(r.Context(), body.Term)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, word)
}

func (h *Handler) adminRemoveBannedWord(w http.ResponseWriter, r *http.Request) {
	term := chi.URLParam(r, "term")
	if err := h.service.RemoveBannedTerm(r.Context(), term); err != nil {
		// Removing an absent term is a no-op for the caller.
		if !errors.Is(err, domain.ErrTermNotFound) {
			status, code, msg := mapDomainError(err)
			writeError(w, status, code, msg)
			return
		}
	}
	writeMessage(w, http.StatusOK, "banned word removed")
}
