package http

import (
	"log/slog"
	"net/http"

	"eventenrollment/internal/delivery/http/controllers"
	"eventenrollment/internal/delivery/http/middleware"
	"eventenrollment/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events      *controllers.EventController
	Enrollments *controllers.EnrollmentController
	Categories  *controllers.CategoryController
}

// NewRouter initializes the HTTP router with all application routes.
// metrics may be nil, in which case /metrics is not mounted.
func NewRouter(c Controllers, verifier domain.TokenVerifier, metrics http.Handler, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	organizer := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleOrganizer)(h))
	}
	client := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(domain.RoleClient)(h))
	}

	// Public
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("GET /categories", c.Categories.ListCategories)

	// Organizer
	mux.HandleFunc("POST /events", organizer(c.Events.CreateEvent))
	mux.HandleFunc("PUT /events/{eventID}", organizer(c.Events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", organizer(c.Events.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/cancel", organizer(c.Events.CancelEvent))
	mux.HandleFunc("GET /organizer/events", organizer(c.Events.ListOrganizerEvents))

	// Participant
	mux.HandleFunc("POST /events/{eventID}/enrollments", client(c.Enrollments.Enroll))
	mux.HandleFunc("DELETE /events/{eventID}/enrollments", client(c.Enrollments.CancelEnrollment))
	mux.HandleFunc("GET /participant/enrollments", client(c.Enrollments.ListMyEnrollments))

	mux.HandleFunc("POST /categories", auth(c.Categories.CreateCategory))

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
