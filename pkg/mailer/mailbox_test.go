package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMailboxExpiry(t *testing.T) {
	store := NewMemoryMailbox(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, StoredMessage{ID: "fresh", CreatedAt: time.Now()}))
	require.NoError(t, store.Save(ctx, StoredMessage{ID: "old", CreatedAt: time.Now().Add(-time.Hour)}))

	_, err := store.Get(ctx, "fresh")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrPreviewNotFound)
	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrPreviewNotFound)
}

func TestMailboxPreviewURL(t *testing.T) {
	mb := NewMailbox(nil, "https://portal.example.com/")
	assert.Equal(t, "https://portal.example.com/api/mail/preview/x1", mb.PreviewURL("x1"))
	assert.NoError(t, mb.Verify(context.Background()))
}

func TestSettingsSender(t *testing.T) {
	from, ok := Settings{}.Sender()
	assert.True(t, ok)
	assert.Equal(t, "no-reply@example.com", from)

	from, ok = Settings{From: "docs@x.io", Production: true}.Sender()
	assert.True(t, ok)
	assert.Equal(t, "docs@x.io", from)

	_, ok = Settings{Production: true}.Sender()
	assert.False(t, ok)
}

func TestBuildMsgRejectsBadRecipient(t *testing.T) {
	_, err := buildMsg(&Message{From: "a@x.io", To: "not an address"})
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}
