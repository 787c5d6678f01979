package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eventenrollment/internal/domain"
)

// DefaultUsersPath is the user service's collection path.
const DefaultUsersPath = "/usuarios"

// userResponse is the user service's payload for GET {usersPath}/{id}.
type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
	Role string `json:"tipo"`
}

type httpDirectory struct {
	client    *http.Client
	baseURL   string
	usersPath string
}

// NewHTTPDirectory returns a UserDirectory that calls the user service at
// baseURL + usersPath. An empty usersPath means DefaultUsersPath.
// Each call is bounded by timeout.
func NewHTTPDirectory(baseURL, usersPath string, timeout time.Duration) domain.UserDirectory {
	usersPath = strings.Trim(usersPath, "/")
	if usersPath == "" {
		usersPath = strings.Trim(DefaultUsersPath, "/")
	}
	return &httpDirectory{
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		usersPath: "/" + usersPath + "/",
	}
}

func (d *httpDirectory) GetUser(ctx context.Context, userID string) (*domain.UserProfile, error) {
	endpoint := d.baseURL + d.usersPath + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("user service returned status %d: %w", resp.StatusCode, domain.ErrCollaboratorUnavailable)
	}

	var body userResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode user response: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	profile := &domain.UserProfile{ID: body.ID, Name: body.Name, Role: body.Role}
	if profile.ID == "" {
		profile.ID = userID
	}
	return profile, nil
}
