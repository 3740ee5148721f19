package meeting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lexaid/config"
	"lexaid/utils"

	"go.uber.org/zap"
)

// UnavailableError signals that the meeting-link function could not produce
// a link. Scheduling aborts on it with no document write.
type UnavailableError struct {
	Status int
	Cause  error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("meeting service unavailable: %v", e.Cause)
	}
	return fmt.Sprintf("meeting service unavailable: status %d", e.Status)
}

func (e *UnavailableError) Unwrap() error { return e.Cause }

// HTTPMeetingService calls the external meeting-link function to create a
// Google Meet for an online consultation.
type HTTPMeetingService struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPMeetingService() *HTTPMeetingService {
	return &HTTPMeetingService{
		BaseURL:    config.AppConfig.MeetingAPIBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type createMeetingRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	ClientEmail     string `json:"clientEmail"`
}

type createMeetingResponse struct {
	HangoutLink string `json:"hangoutLink"`
}

// CreateMeeting requests a meeting link for the given slot. The client email
// is attached as an attendee on the calendar event.
func (s *HTTPMeetingService) CreateMeeting(ctx context.Context, appointmentDate time.Time, clientEmail string) (string, error) {
	payload, err := json.Marshal(createMeetingRequest{
		AppointmentDate: appointmentDate.Format(time.RFC3339),
		ClientEmail:     clientEmail,
	})
	if err != nil {
		return "", fmt.Errorf("meeting request encode: %w", err)
	}

	url := s.BaseURL + "/create-google-meet"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("meeting request build: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		utils.GetLogger().Warn("meeting function unreachable", zap.String("url", url), zap.Error(err))
		return "", &UnavailableError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		utils.GetLogger().Warn("meeting function returned an error",
			zap.String("url", url), zap.Int("status", resp.StatusCode))
		return "", &UnavailableError{Status: resp.StatusCode}
	}

	var out createMeetingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UnavailableError{Cause: err}
	}
	if out.HangoutLink == "" {
		return "", &UnavailableError{Cause: fmt.Errorf("empty hangoutLink in response")}
	}
	return out.HangoutLink, nil
}
