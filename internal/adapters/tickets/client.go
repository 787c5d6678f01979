package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eventenrollment/internal/domain"
)

type reserveRequest struct {
	EventID       int64                `json:"eventId"`
	ParticipantID string               `json:"participantId"`
	Method        domain.PaymentMethod `json:"method"`
}

type reserveResponse struct {
	TicketID  int64      `json:"ticketId"`
	Code      string     `json:"code"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type httpReserver struct {
	client  *http.Client
	baseURL string
}

// NewHTTPReserver returns a TicketReserver that calls the ticketing service at baseURL.
func NewHTTPReserver(baseURL string, timeout time.Duration) domain.TicketReserver {
	return &httpReserver{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (r *httpReserver) Reserve(ctx context.Context, eventID int64, participantID string, method domain.PaymentMethod) (*domain.TicketReservation, error) {
	body, err := json.Marshal(reserveRequest{EventID: eventID, ParticipantID: participantID, Method: method})
	if err != nil {
		return nil, fmt.Errorf("failed to encode reservation: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/tickets/reserve", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ticketing service: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("ticketing service returned status %d: %w", resp.StatusCode, domain.ErrCollaboratorUnavailable)
	}

	var body reserveResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode reservation: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	return &domain.TicketReservation{
		TicketID:  body.TicketID,
		Code:      body.Code,
		Status:    body.Status,
		ExpiresAt: body.ExpiresAt,
	}, nil
}
