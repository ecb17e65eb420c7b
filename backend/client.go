// Package backend fetches typed records from the hospital, test, feedback,
// and doctor services. It carries no business logic: every operation is a
// single read, and failures come back as values so callers can degrade
// instead of aborting.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"hospital-agent/config"

	"go.uber.org/zap"
)

// StatusError reports a non-success status from an upstream service.
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s service returned status %d", e.Service, e.Code)
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     *zap.Logger
}

func New(cfg *config.Config, logger *zap.Logger) *Client {
	// A single bounded timeout per call; no retries. A timed-out call is
	// reported the same way as any other failed call.
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.BackendRequestTimeout},
		logger:     logger,
	}
}

// AllHospitals fetches the full hospital population.
func (c *Client) AllHospitals(ctx context.Context) ([]Hospital, error) {
	var out []Hospital
	err := c.getJSON(ctx, "hospital", c.cfg.HospitalServiceURL+"/hospital/v1/all", &out)
	return out, err
}

// HospitalsByType fetches hospitals carrying the given canonical type.
func (c *Client) HospitalsByType(ctx context.Context, hospitalType string) ([]Hospital, error) {
	var out []Hospital
	err := c.getJSON(ctx, "hospital", c.cfg.HospitalServiceURL+"/hospital/v1/type/"+url.PathEscape(hospitalType), &out)
	return out, err
}

// HospitalsByCostRange fetches hospitals in the given canonical cost range.
func (c *Client) HospitalsByCostRange(ctx context.Context, costRange string) ([]Hospital, error) {
	var out []Hospital
	err := c.getJSON(ctx, "hospital", c.cfg.HospitalServiceURL+"/hospital/v1/cost-range/"+url.PathEscape(costRange), &out)
	return out, err
}

// TestByID fetches a single test record.
func (c *Client) TestByID(ctx context.Context, id int) (*Test, error) {
	var out Test
	if err := c.getJSON(ctx, "test", fmt.Sprintf("%s/test/v1/id/%d", c.cfg.TestServiceURL, id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestsByType fetches all tests of the given canonical type.
func (c *Client) TestsByType(ctx context.Context, testType string) ([]Test, error) {
	var out []Test
	err := c.getJSON(ctx, "test", c.cfg.TestServiceURL+"/test/v1/type/"+url.PathEscape(testType), &out)
	return out, err
}

// TestsByHospital fetches the tests offered by one hospital.
func (c *Client) TestsByHospital(ctx context.Context, hospitalID int) ([]Test, error) {
	var out []Test
	err := c.getJSON(ctx, "test", fmt.Sprintf("%s/test/v1/hospital/%d", c.cfg.TestServiceURL, hospitalID), &out)
	return out, err
}

// FeedbackForHospital fetches the feedback entries for one hospital.
func (c *Client) FeedbackForHospital(ctx context.Context, hospitalID int) ([]Feedback, error) {
	var out []Feedback
	err := c.getJSON(ctx, "feedback", fmt.Sprintf("%s/feedback/v1/hospital/%d", c.cfg.FeedbackServiceURL, hospitalID), &out)
	return out, err
}

// AllDoctors fetches the full doctor population.
func (c *Client) AllDoctors(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	err := c.getJSON(ctx, "doctor", c.cfg.DoctorServiceURL+"/doctor/v1/all", &out)
	return out, err
}

// getJSON performs one GET and decodes the body into target. A status
// outside the 2xx range becomes a *StatusError value.
func (c *Client) getJSON(ctx context.Context, service, rawURL string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", service, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Backend request failed",
			zap.String("service", service),
			zap.String("url", rawURL),
			zap.Error(err))
		return fmt.Errorf("%s request: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("Backend returned non-success status",
			zap.String("service", service),
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode))
		return &StatusError{Service: service, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s response: %w", service, err)
	}
	return nil
}
