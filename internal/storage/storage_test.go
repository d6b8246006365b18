package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	actor := uuid.MustParse("7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10")
	now := time.UnixMilli(1760000000123)

	tests := []struct {
		filename string
		want     string
	}{
		{filename: "slides.PDF", want: "7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10/7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10-1760000000123.pdf"},
		{filename: "deck.final.pptx", want: "7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10/7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10-1760000000123.pptx"},
		{filename: "README", want: "7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10/7f1c1f1e-2d5b-4a57-9a43-0d1b8f3e2c10-1760000000123.bin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ObjectPath(actor, tt.filename, now), tt.filename)
	}
}

func TestLocalBucket(t *testing.T) {
	fs := afero.NewMemMapFs()
	b := NewLocalBucket(fs, "presentations", "http://localhost:8080/files/")
	ctx := context.Background()

	require.NoError(t, b.Upload(ctx, "u1/u1-1.pdf", strings.NewReader("%PDF"), "application/pdf"))

	content, err := afero.ReadFile(fs, "presentations/u1/u1-1.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(content))
	assert.Equal(t, "http://localhost:8080/files/presentations/u1/u1-1.pdf", b.PublicURL("u1/u1-1.pdf"))

	require.NoError(t, b.Remove(ctx, "u1/u1-1.pdf"))
	exists, err := afero.Exists(fs, "presentations/u1/u1-1.pdf")
	require.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, b.Remove(ctx, "u1/missing.pdf"))
}

func TestLocalBucket_CanceledContext(t *testing.T) {
	b := NewLocalBucket(afero.NewMemMapFs(), "presentations", "http://localhost")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Upload(ctx, "a/b.pdf", strings.NewReader("x"), ""), context.Canceled)
}
