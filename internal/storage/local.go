package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/afero"
)

// LocalBucket keeps objects on a filesystem under a directory named after the
// bucket. The files are expected to be served at publicBaseURL.
type LocalBucket struct {
	fs            afero.Fs
	name          string
	publicBaseURL string
}

func NewLocalBucket(fs afero.Fs, name, publicBaseURL string) *LocalBucket {
	return &LocalBucket{
		fs:            fs,
		name:          name,
		publicBaseURL: publicBaseURL,
	}
}

func (b *LocalBucket) Upload(ctx context.Context, objectPath string, r io.Reader, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	full := path.Join(b.name, objectPath)
	if err := b.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return fmt.Errorf("b.fs.MkdirAll -> %w", err)
	}

	if err := afero.WriteReader(b.fs, full, r); err != nil {
		return fmt.Errorf("afero.WriteReader(%s) -> %w", full, err)
	}

	return nil
}

func (b *LocalBucket) PublicURL(objectPath string) string {
	return joinURL(b.publicBaseURL, b.name, objectPath)
}

// Remove deletes the object. A missing object is not an error.
func (b *LocalBucket) Remove(ctx context.Context, objectPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.fs.Remove(path.Join(b.name, objectPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("b.fs.Remove -> %w", err)
	}

	return nil
}
