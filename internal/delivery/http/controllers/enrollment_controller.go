package controllers

import (
	"log/slog"
	"net/http"

	"eventenrollment/internal/delivery/http/helpers"
	"eventenrollment/internal/delivery/http/middleware"
	"eventenrollment/internal/domain"
)

// EnrollmentSuccessResponse is the success response envelope for POST /events/{eventID}/enrollments.
type EnrollmentSuccessResponse struct {
	Data  *domain.Enrollment `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// CancelEnrollmentResponse is the data payload for DELETE /events/{eventID}/enrollments (200).
type CancelEnrollmentResponse struct {
	Status string `json:"status"`
}

type EnrollmentController struct {
	Logger  *slog.Logger
	Service domain.EnrollmentService
}

func NewEnrollmentController(logger *slog.Logger, svc domain.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		Logger:  logger,
		Service: svc,
	}
}

// Enroll godoc
// @Summary Enroll in an event
// @Description Enrolls the authenticated participant and reserves a ticket. Returns 201 with the ticket, or 202 with ticket_pending=true when the seat was taken but the ticketing service could not be reached.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 201 {object} controllers.EnrollmentSuccessResponse "data contains the enrollment and ticket"
// @Success 202 {object} controllers.EnrollmentSuccessResponse "data.ticket_pending is true"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not a client)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (full, duplicate or not active)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/enrollments [post]
func (c *EnrollmentController) Enroll(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	participantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	enrollment, err := c.Service.Enroll(r.Context(), eventID, participantID)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	status := http.StatusCreated
	if enrollment.TicketPending {
		status = http.StatusAccepted
	}
	helpers.WriteJSONSuccess(w, status, enrollment)
}

// CancelEnrollment godoc
// @Summary Leave an event
// @Description Removes the authenticated participant from an ACTIVE event, freeing the seat.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param eventID path int true "Event ID"
// @Success 200 {object} helpers.APIResponse "data.status: cancelled"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or enrollment)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (event not active)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/enrollments [delete]
func (c *EnrollmentController) CancelEnrollment(w http.ResponseWriter, r *http.Request) {
	eventID, ok := eventIDFromPath(w, r)
	if !ok {
		return
	}
	participantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.CancelEnrollment(r.Context(), eventID, participantID); err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CancelEnrollmentResponse{Status: "cancelled"})
}

// ListMyEnrollments godoc
// @Summary List my enrollments
// @Description Returns the events the authenticated participant is enrolled in.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participant/enrollments [get]
func (c *EnrollmentController) ListMyEnrollments(w http.ResponseWriter, r *http.Request) {
	participantID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	list, total, err := c.Service.ListParticipantEnrollments(r.Context(), participantID, params)
	if err != nil {
		writeServiceError(w, r, c.Logger, err)
		return
	}
	writeEventList(w, list, params, total)
}
