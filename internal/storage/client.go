package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// VerifySignedURL rejects a signed URL that points anywhere other than the
// configured storage host.
func VerifySignedURL(signedURL, expectedBase string) error {
	signed, err := url.Parse(signedURL)
	if err != nil {
		return fmt.Errorf("invalid signed url: %w", err)
	}
	base, err := url.Parse(expectedBase)
	if err != nil {
		return fmt.Errorf("invalid storage url: %w", err)
	}
	if signed.Host == "" || !strings.EqualFold(signed.Host, base.Host) {
		return fmt.Errorf("%w: got %q, want %q", ErrHostMismatch, signed.Host, base.Host)
	}
	return nil
}

// UploadSigned PUTs body to a URL issued by CreateSignedUploadURL.
func UploadSigned(ctx context.Context, client *http.Client, signedURL string, body io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, body)
	if err != nil {
		return &StorageError{Op: "upload", Message: err.Error()}
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	resp, err := client.Do(req)
	if err != nil {
		return &StorageError{Op: "upload", Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StorageError{Op: "upload", StatusCode: resp.StatusCode, Message: providerMessage(resp.Body)}
	}
	return nil
}
