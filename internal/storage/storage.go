package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var (
	ErrEmptyKey     = errors.New("object key is empty")
	ErrHostMismatch = errors.New("signed url host does not match storage host")
)

type Object struct {
	Key string
	URL string
}

type SignedUpload struct {
	SignedURL string
	ExpiresIn int
}

// StorageError carries the provider's message for a failed operation.
type StorageError struct {
	Op         string
	Key        string
	StatusCode int
	Message    string
}

func (e *StorageError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("storage %s %q: status %d: %s", e.Op, e.Key, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("storage %s %q: %s", e.Op, e.Key, e.Message)
}

// Gateway talks to a Supabase-compatible storage REST API.
type Gateway struct {
	baseURL    string
	bucket     string
	serviceKey string
	client     *http.Client
	logger     *zap.Logger
}

func New(cfg config.StorageConfig, logger *zap.Logger) *Gateway {
	return NewWithClient(cfg, http.DefaultClient, logger)
}

// NewWithClient uses base as the underlying transport for the authenticated client.
func NewWithClient(cfg config.StorageConfig, base *http.Client, logger *zap.Logger) *Gateway {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	return &Gateway{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		bucket:     cfg.Bucket,
		serviceKey: cfg.ServiceKey,
		client:     oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.ServiceKey})),
		logger:     logger.Named("storage"),
	}
}

func (g *Gateway) Bucket() string {
	return g.bucket
}

// NormalizeKey strips leading slashes so "/videos/a.mp4" and "videos/a.mp4"
// address the same object.
func NormalizeKey(key string) string {
	return strings.TrimLeft(key, "/")
}

func (g *Gateway) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*Object, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.objectURL("object", key), body)
	if err != nil {
		return nil, &StorageError{Op: "put", Key: key, Message: err.Error()}
	}
	if size >= 0 {
		req.ContentLength = size
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")

	if err := g.do(req, "put", key, nil); err != nil {
		return nil, err
	}

	g.logger.Info("object stored", zap.String("key", key), zap.Int64("size", size))
	return &Object{Key: key, URL: g.PublicURL(key)}, nil
}

func (g *Gateway) Get(ctx context.Context, key string) (*Object, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrEmptyKey
	}
	return &Object{Key: key, URL: g.PublicURL(key)}, nil
}

func (g *Gateway) Delete(ctx context.Context, key string) error {
	key = NormalizeKey(key)
	if key == "" {
		return ErrEmptyKey
	}

	payload, err := json.Marshal(map[string][]string{"prefixes": {key}})
	if err != nil {
		return &StorageError{Op: "delete", Key: key, Message: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s", g.baseURL, url.PathEscape(g.bucket))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &StorageError{Op: "delete", Key: key, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	if err := g.do(req, "delete", key, nil); err != nil {
		return err
	}

	g.logger.Info("object deleted", zap.String("key", key))
	return nil
}

func (g *Gateway) CreateSignedUploadURL(ctx context.Context, key string, ttl time.Duration, contentType string) (*SignedUpload, error) {
	key = NormalizeKey(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	expiresIn := int(ttl.Seconds())
	payload, err := json.Marshal(map[string]any{"expiresIn": expiresIn})
	if err != nil {
		return nil, &StorageError{Op: "sign", Key: key, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.objectURL("object/upload/sign", key), bytes.NewReader(payload))
	if err != nil {
		return nil, &StorageError{Op: "sign", Key: key, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if contentType != "" {
		req.Header.Set("x-content-type", contentType)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := g.do(req, "sign", key, &out); err != nil {
		return nil, err
	}
	if out.URL == "" {
		return nil, &StorageError{Op: "sign", Key: key, Message: "provider returned no signed url"}
	}

	signed := out.URL
	if !strings.HasPrefix(signed, "http://") && !strings.HasPrefix(signed, "https://") {
		signed = g.baseURL + "/storage/v1" + signed
	}

	return &SignedUpload{SignedURL: signed, ExpiresIn: expiresIn}, nil
}

func (g *Gateway) PublicURL(key string) string {
	return g.objectURL("object/public", NormalizeKey(key))
}

func (g *Gateway) objectURL(prefix, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/storage/v1/%s/%s/%s", g.baseURL, prefix, url.PathEscape(g.bucket), strings.Join(segments, "/"))
}

func (g *Gateway) do(req *http.Request, op, key string, out any) error {
	req.Header.Set("apikey", g.serviceKey)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("storage request failed", zap.String("op", op), zap.String("key", key), zap.Error(err))
		return &StorageError{Op: op, Key: key, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StorageError{Op: op, Key: key, StatusCode: resp.StatusCode, Message: providerMessage(resp.Body)}
		g.logger.Error("storage provider error", zap.String("op", op), zap.String("key", key),
			zap.Int("status", resp.StatusCode), zap.String("message", serr.Message))
		return serr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &StorageError{Op: op, Key: key, Message: "failed to decode response: " + err.Error()}
		}
	}
	return nil
}

func providerMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, 4096))
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	if msg := strings.TrimSpace(string(raw)); msg != "" {
		return msg
	}
	return "unknown provider error"
}
