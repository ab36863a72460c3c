package mailer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l, _ := test.NewNullLogger()
	return l
}

func TestSelectorPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     string
	}{
		{
			name:     "explicit host wins over provider key",
			settings: Settings{Host: "smtp.example.com", Port: 2525, SendGridAPIKey: "SG.x", Production: true},
			want:     "smtp",
		},
		{
			name:     "sendgrid key",
			settings: Settings{SendGridAPIKey: "SG.x", Production: true},
			want:     "sendgrid",
		},
		{
			name:     "sendgrid before mailgun",
			settings: Settings{SendGridAPIKey: "SG.x", MailgunDomain: "mg.example.com", MailgunAPIKey: "k"},
			want:     "sendgrid",
		},
		{
			name:     "mailgun",
			settings: Settings{MailgunDomain: "mg.example.com", MailgunAPIKey: "k", Production: true},
			want:     "mailgun",
		},
		{
			name:     "mailgun needs both domain and key",
			settings: Settings{MailgunAPIKey: "k"},
			want:     "mailbox",
		},
		{
			name:     "dev mailbox outside production",
			settings: Settings{},
			want:     "mailbox",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := tt.settings
			s := NewSelector(func() Settings { return st }, quietLogger(), WithoutVerify())
			tr, err := s.Transport(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, tr.Name())
		})
	}
}

func TestSelectorSendGridDefaults(t *testing.T) {
	s := NewSelector(func() Settings {
		return Settings{SendGridAPIKey: "SG.secret", Port: 587, Production: true}
	}, quietLogger(), WithoutVerify())

	tr, err := s.Transport(context.Background())
	require.NoError(t, err)
	smtpT, ok := tr.(*SMTPTransport)
	require.True(t, ok)

	cfg := smtpT.Config()
	assert.Equal(t, "smtp.sendgrid.net", cfg.Host)
	assert.Equal(t, "apikey", cfg.Username)
	assert.Equal(t, "SG.secret", cfg.Password)
	assert.False(t, cfg.InsecureTLS)
}

func TestSelectorRelaxesTLSOutsideProduction(t *testing.T) {
	s := NewSelector(func() Settings {
		return Settings{Host: "localhost", Port: 1025}
	}, quietLogger(), WithoutVerify())

	tr, err := s.Transport(context.Background())
	require.NoError(t, err)
	assert.True(t, tr.(*SMTPTransport).Config().InsecureTLS)
}

func TestSelectorProductionWithoutTransport(t *testing.T) {
	s := NewSelector(func() Settings { return Settings{Production: true} }, quietLogger(), WithoutVerify())

	tr, err := s.Transport(context.Background())
	assert.Nil(t, tr)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Nil(t, s.Current())
}

func TestSelectorMemoizes(t *testing.T) {
	var loads atomic.Int32
	s := NewSelector(func() Settings {
		loads.Add(1)
		return Settings{}
	}, quietLogger(), WithoutVerify())

	first, err := s.Transport(context.Background())
	require.NoError(t, err)
	second, err := s.Transport(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, s.Current())
	assert.EqualValues(t, 1, loads.Load())

	mb, ok := s.Mailbox()
	assert.True(t, ok)
	assert.Same(t, first, Transport(mb))
}

func TestSelectorConcurrentFirstUse(t *testing.T) {
	var loads atomic.Int32
	s := NewSelector(func() Settings {
		loads.Add(1)
		return Settings{Host: "smtp.example.com"}
	}, quietLogger(), WithoutVerify())

	const n = 32
	got := make([]Transport, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr, err := s.Transport(context.Background())
			assert.NoError(t, err)
			got[i] = tr
		}(i)
	}
	wg.Wait()

	assert.EqualValues(t, 1, loads.Load())
	for _, tr := range got {
		assert.Same(t, got[0], tr)
	}
}

func TestSelectorFailureIsNotCached(t *testing.T) {
	var mu sync.Mutex
	st := Settings{Production: true}
	s := NewSelector(func() Settings {
		mu.Lock()
		defer mu.Unlock()
		return st
	}, quietLogger(), WithoutVerify())

	_, err := s.Transport(context.Background())
	require.ErrorIs(t, err, ErrConfiguration)

	mu.Lock()
	st.Host = "smtp.example.com"
	mu.Unlock()

	tr, err := s.Transport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "smtp", tr.Name())
}

func TestSelectorUsesMailboxStore(t *testing.T) {
	store := NewMemoryMailbox(0)
	s := NewSelector(func() Settings {
		return Settings{PreviewBaseURL: "http://localhost:5001/"}
	}, quietLogger(), WithoutVerify(), WithMailboxStore(store))

	tr, err := s.Transport(context.Background())
	require.NoError(t, err)
	res, err := tr.Send(context.Background(), &Message{From: "f@x.io", To: "a@b.com", Subject: "s"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api/mail/preview/"+res.MessageID, res.PreviewURL)
	got, err := store.Get(context.Background(), res.MessageID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", got.To)
}
