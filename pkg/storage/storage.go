package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const (
	UploadURLExpiry   = time.Hour
	DownloadURLExpiry = 24 * time.Hour
)

// Storage issues presigned object URLs.
type Storage interface {
	// UploadURL returns a presigned PUT bound to contentType.
	UploadURL(ctx context.Context, key, contentType string) (*PresignedURL, error)
	// DownloadURL returns a presigned GET.
	DownloadURL(ctx context.Context, key string) (*PresignedURL, error)
	// ObjectURL returns the public URL of key.
	ObjectURL(key string) string
	// KeyFromURL recovers the object key from a URL built by ObjectURL.
	KeyFromURL(objectURL string) (string, error)
}

// PresignedURL is a capability-scoped URL valid for Expiry.
type PresignedURL struct {
	URL    string
	Method string
	Header http.Header
	Expiry time.Duration
}

// ExpiresIn returns the expiry in whole seconds.
func (p *PresignedURL) ExpiresIn() int {
	return int(p.Expiry / time.Second)
}

// ProfilePicturePrefix is the key prefix under which sub's pictures live.
func ProfilePicturePrefix(sub string) string {
	return "profile-pictures/" + sub + "/"
}

// ProfilePictureKey builds profile-pictures/{sub}/{epochMillis}-{filename}.
func ProfilePictureKey(sub string, at time.Time, filename string) string {
	return fmt.Sprintf("%s%d-%s", ProfilePicturePrefix(sub), at.UnixMilli(), filename)
}
