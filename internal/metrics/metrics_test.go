package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventenrollment/internal/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domain.EnrollmentMetrics = (*Metrics)(nil)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.IncEnrollment(domain.EnrollmentOutcomeEnrolled)
	m.IncEnrollment(domain.EnrollmentOutcomeEnrolled)
	m.IncEnrollment(domain.EnrollmentOutcomeRejected)
	m.IncCollaboratorFailure("ticketing", "reserve")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.enrollments.WithLabelValues(domain.EnrollmentOutcomeEnrolled)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.enrollments.WithLabelValues(domain.EnrollmentOutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.collaboratorFailures.WithLabelValues("ticketing", "reserve")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.collaboratorFailures.WithLabelValues("identity", "get_user")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.IncEnrollment(domain.EnrollmentOutcomeTicketPending)
	m.ObserveHTTPRequest(http.MethodGet, "GET /events", http.StatusOK, 12*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `event_enrollments_total{outcome="ticket_pending"} 1`)
	assert.Contains(t, string(body), `http_request_duration_seconds_count{method="GET",route="GET /events",status="200"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
