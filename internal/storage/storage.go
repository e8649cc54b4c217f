// Package storage keeps uploaded employee and vehicle documents on local
// disk or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	intconfig "fleetlog/internal/config"
	"fleetlog/internal/utils"
)

var ErrNotFound = errors.New("document not found")

// FileStore saves and serves attachment blobs by stored name.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// StoredName prefixes the sanitised base name of original with a timestamp,
// e.g. 20240301093000_licence.pdf.
func StoredName(now time.Time, original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" {
		base = ""
	}
	return now.Format("20060102150405") + "_" + utils.SafeFilenamePart(base)
}

// ValidName rejects names that could escape the store.
func ValidName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}

// New returns an S3 store when a bucket is configured, local disk otherwise.
func New(ctx context.Context, env intconfig.Env) (FileStore, error) {
	if env.S3Bucket != "" {
		return NewS3Store(ctx, S3Config{
			Bucket:          env.S3Bucket,
			Region:          env.S3Region,
			Endpoint:        env.S3Endpoint,
			AccessKeyID:     env.S3AccessKeyID,
			SecretAccessKey: env.S3SecretAccessKey,
		})
	}
	return NewLocalStore(env.UploadDir)
}
