package publicform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// FormSubmission is what the crm expects on its contacts endpoint. Absent context ids are sent as null.
type FormSubmission struct {
	Slug     string         `json:"slug"`
	OrgID    *string        `json:"orgId"`
	EventID  *string        `json:"eventId"`
	FormData map[string]any `json:"formData"`
}

// Submit posts the submission once. A transport error or any non-2xx response is an ErrRelayFailed.
func (c *CRMClient) Submit(ctx context.Context, submission FormSubmission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("%w: error serializing submission: %s", ErrRelayFailed, err)
	}

	status, _, err := c.sender.Send(ctx, http.MethodPost, c.baseURL+"/contacts", body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrRelayFailed, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("%w: crm responded with status %d", ErrRelayFailed, status)
	}
	return nil
}
