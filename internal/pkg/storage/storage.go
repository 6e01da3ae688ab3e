package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

// Storage defines the object storage operations used for user uploads.
type Storage interface {
	io.Closer

	// PutObject stores data and returns object metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// DeleteObject removes the object. Deleting a missing object is not an error.
	DeleteObject(ctx context.Context, bucket, key string) error
	// PublicURL returns the URL clients use to fetch the object.
	PublicURL(bucket, key string) string
}

// PutOptions configures upload behavior.
type PutOptions struct {
	// Size is the content length; -1 when unknown.
	Size int64
	// ContentType is the MIME type for the object.
	ContentType string
	// CacheControl is sent back to clients fetching the object.
	CacheControl string
	// Metadata includes custom key/value metadata.
	Metadata map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	// Bucket is the bucket name.
	Bucket string
	// Key is the object key.
	Key string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when provided.
	ETag string
	// ContentType is the object MIME type.
	ContentType string
}

// joinURL appends bucket/key path segments to base, escaping each segment.
func joinURL(base string, segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		for p := range strings.SplitSeq(strings.Trim(seg, "/"), "/") {
			if p != "" {
				parts = append(parts, url.PathEscape(p))
			}
		}
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(parts, "/")
}
