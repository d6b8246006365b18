package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bucket is a flat object store addressed by slash separated paths.
type Bucket interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) error
	PublicURL(objectPath string) string
	Remove(ctx context.Context, objectPath string) error
}

// ObjectPath builds the key of a file uploaded by actorID:
// {actorID}/{actorID}-{unix millis}.{ext}
func ObjectPath(actorID uuid.UUID, filename string, now time.Time) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		ext = "bin"
	}

	id := actorID.String()
	return fmt.Sprintf("%s/%s-%d.%s", id, id, now.UnixMilli(), ext)
}

func joinURL(base string, parts ...string) string {
	out := strings.TrimRight(base, "/")
	for _, p := range parts {
		out += "/" + strings.Trim(p, "/")
	}
	return out
}
