package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/studenthub/directory-service/internal/application"
	"github.com/studenthub/directory-service/internal/domain"
)

func viewerFromContext(r *http.Request) domain.ViewerContext {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		return domain.AnonymousViewer()
	}
	return domain.AuthenticatedViewer(claims.UserID, claims.Role)
}

func (h *Handler) getMyProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
		return
	}
	resp, err := h.service.GetMyProfile(r.Context(), claims.UserID)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) updateMyProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
		return
	}
	var req application.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	result, err := h.service.UpdateProfile(r.Context(), claims.UserID, req, r.Header.Get("Idempotency-Key"))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	if result.Rejection != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"status":  "rejected",
			"code":    "CONTENT_REJECTED",
			"message": result.Rejection.Message,
			"data":    result.Rejection,
		})
		return
	}
	writeSuccess(w, http.StatusOK, result.Profile)
}

func (h *Handler) addSkill(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
		return
	}
	var req application.AddSkillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	resp, err := h.service.AddSkill(r.Context(), claims.UserID, req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) addProject(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
		return
	}
	var req application.AddProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json body")
		return
	}
	result, err := h.service.AddProject(r.Context(), claims.UserID, req)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	if result.Rejection != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"status":  "rejected",
			"code":    "CONTENT_REJECTED",
			"message": result.Rejection.Message,
			"data":    result.Rejection,
		})
		return
	}
	writeSuccess(w, http.StatusCreated, result.Project)
}

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing credentials")
		return
	}
	if err := r.ParseMultipartForm(4 * 1024 * 1024); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "photo file is required")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "could not read uploaded file")
		return
	}

	resp, err := h.service.UploadPhoto(r.Context(), claims.UserID, application.UploadedFile{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) viewProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	resp, err := h.service.ViewProfile(r.Context(), username, viewerFromContext(r))
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) directory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	entries, err := h.service.Directory(r.Context(), viewerFromContext(r), limit, offset)
	if err != nil {
		status, code, msg := mapDomainError(err)
		writeError(w, status, code, msg)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"entries": entries,
		"pagination": map[string]any{
			"limit":  limit,
			"offset": offset,
		},
	})
}
