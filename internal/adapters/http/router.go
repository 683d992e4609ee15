package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/studenthub/directory-service/internal/application"
)

type Handler struct {
	service *application.Service
}

func NewHandler(service *application.Service) *Handler {
	return &Handler{service: service}
}

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ok") })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeMessage(w, http.StatusOK, "ready") })

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handler.register)
			r.Post("/login", handler.login)
			r.Post("/logout", handler.logout)
		})

		// Directory and public profile views take an optional token: an
		// authenticated viewer sees university-only profiles as well.
		r.Group(func(r chi.Router) {
			r.Use(handler.optionalAuthMiddleware)
			r.Get("/directory", handler.directory)
			r.Get("/profiles/{username}", handler.viewProfile)
		})

		r.Route("/profiles/me", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/", handler.getMyProfile)
			r.Put("/", handler.updateMyProfile)
			r.Post("/skills", handler.addSkill)
			r.Post("/projects", handler.addProject)
			r.Post("/photo", handler.uploadPhoto)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Use(handler.adminOnlyMiddleware)
			r.Get("/dashboard", handler.adminDashboard)
			r.Get("/students", handler.adminListStudents)
			r.Get("/students/pending", handler.adminListPending)
			r.Post("/students/{user_id}/approve", handler.adminApproveStudent)
			r.Post("/students/{user_id}/reject", handler.adminRejectStudent)
			r.Delete("/students/{user_id}", handler.adminDeleteStudent)
			r.Get("/banned-words", handler.adminListBannedWords)
			r.Post("/banned-words", handler.adminAddBannedWord)
			r.Delete("/banned-words/{term}", handler.adminRemoveBannedWord)
		})
	})
	return r
}
