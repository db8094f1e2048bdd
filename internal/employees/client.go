// Package employees is the HTTP client for the employee-directory service.
// The directory is consumed read-only, through a single find-by-id call.
package employees

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/silviacristinaa/tasks/pkg/models"
	"github.com/silviacristinaa/tasks/pkg/service"
)

// Client calls the employee directory over HTTP. Every call runs with the
// configured timeout; a timed-out or otherwise failed call is reported as a
// plain error, which the service layer maps to its unavailable kind.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FindByID retrieves one employee. It returns service.ErrEmployeeNotFound
// when the directory reports 404, and a wrapped error for any other failure.
func (c *Client) FindByID(ctx context.Context, id int64) (models.Employee, error) {
	url := fmt.Sprintf("%s/employees/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.Employee{}, errors.Wrap(err, "build employee request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Employee{}, errors.Wrapf(err, "call employee directory for employee %d", id)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var employee models.Employee
		if err := json.NewDecoder(resp.Body).Decode(&employee); err != nil {
			return models.Employee{}, errors.Wrapf(err, "decode employee %d response", id)
		}
		return employee, nil
	case resp.StatusCode == http.StatusNotFound:
		return models.Employee{}, service.ErrEmployeeNotFound
	default:
		return models.Employee{}, errors.Errorf("employee directory returned status %d for employee %d", resp.StatusCode, id)
	}
}
