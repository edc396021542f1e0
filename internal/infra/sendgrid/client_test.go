package sendgrid

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"stage5_report_service/internal/domain/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMessage() email.Message {
	return email.Message{
		To:       []string{"a@example.com", "b@example.com"},
		Subject:  "Stage 5 Completion Report - Monthly - September 2025",
		HTMLBody: "<p>report</p>",
		Attachments: []email.Attachment{{
			Filename:    "monthly-report-2025-09.csv",
			ContentType: "text/csv",
			Data:        []byte("id,ucr\n1,UCR-001\n"),
		}},
	}
}

func TestSendBuildsMailPayload(t *testing.T) {
	var got mailPayload
	var auth, contentType string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		auth = r.Header.Get("Authorization")
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", "reports@example.com")
	err := client.Send(context.Background(), testMessage())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", auth)
	assert.Equal(t, "application/json", contentType)

	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, []address{{Email: "a@example.com"}, {Email: "b@example.com"}}, got.Personalizations[0].To)
	assert.Equal(t, "reports@example.com", got.From.Email)
	assert.Equal(t, "Stage 5 Completion Report - Monthly - September 2025", got.Subject)
	require.Len(t, got.Content, 1)
	assert.Equal(t, "text/html", got.Content[0].Type)

	require.Len(t, got.Attachments, 1)
	att := got.Attachments[0]
	assert.Equal(t, "monthly-report-2025-09.csv", att.Filename)
	assert.Equal(t, "text/csv", att.Type)
	assert.Equal(t, "attachment", att.Disposition)
	decoded, err := base64.StdEncoding.DecodeString(att.Content)
	require.NoError(t, err)
	assert.Equal(t, "id,ucr\n1,UCR-001\n", string(decoded))
}

func TestSendAcceptsOKAndAccepted(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusAccepted} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))
		client := NewClient(srv.URL, "token", "reports@example.com")
		assert.NoError(t, client.Send(context.Background(), testMessage()), "status %d", status)
		srv.Close()
	}
}

func TestSendSurfacesRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad token"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "wrong-token", "reports@example.com")
	err := client.Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "bad token")
}

func TestSendSurfacesTransportFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // Connection refused from here on

	client := NewClient(srv.URL, "token", "reports@example.com")
	err := client.Send(context.Background(), testMessage())
	require.Error(t, err)
}
