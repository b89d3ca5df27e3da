package mail

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	gomail "github.com/wneessen/go-mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotecraft/quotecraft/internal/domain"
	"github.com/quotecraft/quotecraft/internal/ports"
)

// fakeRelay records dialed and sent messages.
type fakeRelay struct {
	dialErr error
	sendErr error

	sent   []*gomail.Msg
	dials  int
	closes int
}

func (f *fakeRelay) DialWithContext(_ context.Context) error {
	f.dials++
	return f.dialErr
}

func (f *fakeRelay) DialAndSendWithContext(_ context.Context, messages ...*gomail.Msg) error {
	if f.sendErr != nil {
		return f.sendErr
	}

	f.sent = append(f.sent, messages...)

	return nil
}

func (f *fakeRelay) Close() error {
	f.closes++
	return nil
}

func newTestDispatcher(relay *fakeRelay) *Dispatcher {
	return &Dispatcher{
		relay:  relay,
		from:   "quotes@example.com",
		logger: slog.New(slog.DiscardHandler),
	}
}

func testMessage() ports.Message {
	return ports.Message{
		FromName: "Studio North",
		To:       "jordan@acme.example",
		Subject:  "Your Project Quotation from Studio North",
		HTMLBody: "<p>Hi Jordan, the quotation is attached.</p>",
		Attachments: []ports.Attachment{
			{
				Filename:    "Quotation_Acme Ltd.pdf",
				ContentType: "application/pdf",
				Content:     []byte("%PDF-1.7 fake"),
			},
		},
	}
}

func TestDispatcher_Send(t *testing.T) {
	relay := &fakeRelay{}
	d := newTestDispatcher(relay)

	err := d.Send(context.Background(), testMessage())

	require.NoError(t, err)
	require.Len(t, relay.sent, 1)

	var rendered strings.Builder
	_, err = relay.sent[0].WriteTo(&rendered)
	require.NoError(t, err)

	assert.Contains(t, rendered.String(), "quotes@example.com")
	assert.Contains(t, rendered.String(), "jordan@acme.example")
	assert.Contains(t, rendered.String(), "Your Project Quotation from Studio North")
	assert.Contains(t, rendered.String(), "Quotation_Acme Ltd.pdf")
}

func TestDispatcher_Send_InvalidRecipient(t *testing.T) {
	relay := &fakeRelay{}
	d := newTestDispatcher(relay)

	msg := testMessage()
	msg.To = "not-an-address"

	err := d.Send(context.Background(), msg)

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, relay.sent)
}

func TestDispatcher_Send_RelayFailure(t *testing.T) {
	relay := &fakeRelay{sendErr: errors.New("550 mailbox unavailable")}
	d := newTestDispatcher(relay)

	err := d.Send(context.Background(), testMessage())

	require.Error(t, err)
	assert.True(t, domain.IsEmail(err))

	var emailErr *domain.EmailError
	require.ErrorAs(t, err, &emailErr)
	assert.ErrorContains(t, emailErr.Err, "550")
}

func TestDispatcher_Send_NoAttachments(t *testing.T) {
	relay := &fakeRelay{}
	d := newTestDispatcher(relay)

	msg := testMessage()
	msg.Attachments = nil

	err := d.Send(context.Background(), msg)

	require.NoError(t, err)
	require.Len(t, relay.sent, 1)
}

func TestDispatcher_HealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		relay := &fakeRelay{}
		d := newTestDispatcher(relay)

		require.NoError(t, d.Check(context.Background()))
		assert.Equal(t, 1, relay.dials)
		assert.Equal(t, 1, relay.closes)
	})

	t.Run("unreachable", func(t *testing.T) {
		relay := &fakeRelay{dialErr: errors.New("connection refused")}
		d := newTestDispatcher(relay)

		err := d.Check(context.Background())

		require.Error(t, err)
		assert.Zero(t, relay.closes)
	})

	assert.Equal(t, "mail-relay", newTestDispatcher(&fakeRelay{}).Name())
}
