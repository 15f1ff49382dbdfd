package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/XrOne/jenia-portfolio/internal/config"
	"github.com/XrOne/jenia-portfolio/internal/storage"
	"go.uber.org/zap"
)

const (
	suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength   = 6
)

var (
	ErrNoFile        = errors.New("no file uploaded")
	ErrEmptyFile     = errors.New("uploaded file is empty")
	ErrFileTooLarge  = errors.New("file exceeds the maximum upload size")
	ErrEmptyFileName = errors.New("file name is required")
)

// ObjectStore is the part of the storage gateway used by uploads.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (*storage.Object, error)
	Get(ctx context.Context, key string) (*storage.Object, error)
	CreateSignedUploadURL(ctx context.Context, key string, ttl time.Duration, contentType string) (*storage.SignedUpload, error)
}

type UploadResult struct {
	URL      string
	Key      string
	Size     int64
	Mimetype string
}

type SignedUploadResult struct {
	Key       string
	UploadURL string
	PublicURL string
	ExpiresIn int
}

type UploadService struct {
	store   ObjectStore
	cfg     config.UploadConfig
	logger  *zap.Logger
	now     func() time.Time
	tempDir string
}

func NewUploadService(store ObjectStore, cfg config.UploadConfig, logger *zap.Logger) *UploadService {
	return &UploadService{store: store, cfg: cfg, logger: logger.Named("upload"), now: time.Now}
}

func (s *UploadService) MaxSize() int64 {
	return s.cfg.MaxSize
}

// GenerateKey builds "<prefix>/<unix-ms>-<6 char base36>-<file name>".
func (s *UploadService) GenerateKey(fileName string) (string, error) {
	name := filepath.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if name == "." || name == "/" || blank(name) {
		return "", ErrEmptyFileName
	}

	suffix, err := randomSuffix()
	if err != nil {
		return "", fmt.Errorf("failed to generate key suffix: %w", err)
	}

	prefix := strings.Trim(s.cfg.KeyPrefix, "/")
	key := fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), suffix, name)
	if prefix != "" {
		key = prefix + "/" + key
	}
	return key, nil
}

func randomSuffix() (string, error) {
	base := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, suffixLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		b[i] = suffixAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Store spools body to a temporary file, then forwards it to the object
// store. The temporary file is removed whether or not the transfer succeeds.
func (s *UploadService) Store(ctx context.Context, fileName, contentType string, body io.Reader) (*UploadResult, error) {
	key, err := s.GenerateKey(fileName)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.tempDir, "upload-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to remove temp file", zap.String("path", tmp.Name()), zap.Error(err))
		}
	}()

	size, err := io.Copy(tmp, io.LimitReader(body, s.cfg.MaxSize+1))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, ErrFileTooLarge
		}
		return nil, fmt.Errorf("failed to buffer upload: %w", err)
	}
	if size > s.cfg.MaxSize {
		return nil, ErrFileTooLarge
	}
	if size == 0 {
		return nil, ErrEmptyFile
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind temp file: %w", err)
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = sniffContentType(tmp)
	}

	obj, err := s.store.Put(ctx, key, tmp, size, contentType)
	if err != nil {
		s.logger.Error("upload failed", zap.String("key", key), zap.Int64("size", size), zap.Error(err))
		return nil, err
	}

	s.logger.Info("upload stored", zap.String("key", obj.Key), zap.Int64("size", size), zap.String("mimetype", contentType))
	return &UploadResult{URL: obj.URL, Key: obj.Key, Size: size, Mimetype: contentType}, nil
}

func sniffContentType(f *os.File) string {
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	_, _ = f.Seek(0, io.SeekStart)
	return http.DetectContentType(head[:n])
}

// SignUpload issues a signed URL the client uploads to directly.
func (s *UploadService) SignUpload(ctx context.Context, fileName, contentType string) (*SignedUploadResult, error) {
	key, err := s.GenerateKey(fileName)
	if err != nil {
		return nil, err
	}

	signed, err := s.store.CreateSignedUploadURL(ctx, key, s.cfg.SignedURLTTL, contentType)
	if err != nil {
		s.logger.Error("failed to sign upload", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	obj, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	return &SignedUploadResult{
		Key:       obj.Key,
		UploadURL: signed.SignedURL,
		PublicURL: obj.URL,
		ExpiresIn: signed.ExpiresIn,
	}, nil
}
