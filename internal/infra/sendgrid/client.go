// internal/infra/sendgrid/client.go
package sendgrid

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stage5_report_service/internal/domain/email"
)

const defaultTimeout = 30 * time.Second

// Client implements the email.Client interface against the SendGrid v3
// mail send HTTP API. Each Send is a single attempt; retry policy belongs
// to the caller, and the caller here deliberately has none.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	bearerToken string
	sender      string
}

func NewClient(endpoint, bearerToken, sender string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		endpoint:    endpoint,
		bearerToken: bearerToken,
		sender:      sender,
	}
}

// Payload types mirror the SendGrid v3 mail send request body.

type address struct {
	Email string `json:"email"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type attachment struct {
	Content     string `json:"content"` // base64-encoded file body
	Type        string `json:"type"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition"`
}

type mailPayload struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
	Attachments      []attachment      `json:"attachments,omitempty"`
}

// Send submits one message with its attachments. Any status other than
// 200 or 202 is an error carrying the response body for the run summary.
func (c *Client) Send(ctx context.Context, msg email.Message) error {
	payload := mailPayload{
		Personalizations: []personalization{{To: toAddresses(msg.To)}},
		From:             address{Email: c.sender},
		Subject:          msg.Subject,
		Content:          []content{{Type: "text/html", Value: msg.HTMLBody}},
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, attachment{
			Content:     base64.StdEncoding.EncodeToString(a.Data),
			Type:        a.ContentType,
			Filename:    a.Filename,
			Disposition: "attachment",
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error encoding mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error sending mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail send rejected with status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func toAddresses(emails []string) []address {
	addrs := make([]address, 0, len(emails))
	for _, e := range emails {
		addrs = append(addrs, address{Email: e})
	}
	return addrs
}
