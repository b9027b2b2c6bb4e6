package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruitment-hub/internal/config"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.sent = append(f.sent, params)
	if f.err != nil {
		return nil, f.err
	}
	return &resend.SendEmailResponse{Id: "msg_1"}, nil
}

func TestSendNotificationEmail(t *testing.T) {
	cfg := &config.Config{FromEmail: "hr@example.com", AppURL: "https://hub.example.com/"}

	t.Run("Success", func(t *testing.T) {
		fake := &fakeSender{}
		svc := &service{emails: fake, config: cfg}

		err := svc.SendNotificationEmail(context.Background(), "jane@example.com", "Jane Doe", "Interview Scheduled", "Interview for Go Engineer scheduled for Mon, Mar 2, 02:30 PM")
		require.NoError(t, err)
		require.Len(t, fake.sent, 1)

		msg := fake.sent[0]
		assert.Equal(t, []string{"jane@example.com"}, msg.To)
		assert.Equal(t, "Recruitment Hub <hr@example.com>", msg.From)
		assert.Equal(t, "Interview Scheduled - Recruitment Hub", msg.Subject)
		assert.Contains(t, msg.Html, "Hi Jane Doe")
		assert.Contains(t, msg.Html, "Interview for Go Engineer scheduled for Mon, Mar 2, 02:30 PM")
		assert.Contains(t, msg.Html, "https://hub.example.com/dashboard")
	})

	t.Run("Escapes Message", func(t *testing.T) {
		fake := &fakeSender{}
		svc := &service{emails: fake, config: cfg}

		require.NoError(t, svc.SendNotificationEmail(context.Background(), "a@example.com", "A", "T", "<script>x</script>"))
		assert.NotContains(t, fake.sent[0].Html, "<script>")
	})

	t.Run("Provider Error", func(t *testing.T) {
		svc := &service{emails: &fakeSender{err: errors.New("boom")}, config: cfg}

		err := svc.SendWelcomeEmail(context.Background(), "a@example.com", "A")
		assert.ErrorContains(t, err, "failed to send email")
	})

	t.Run("Disabled Without API Key", func(t *testing.T) {
		svc := NewService(cfg)
		assert.NoError(t, svc.SendWelcomeEmail(context.Background(), "a@example.com", "A"))
	})
}
