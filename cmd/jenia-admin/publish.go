package main

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/XrOne/jenia-portfolio/internal/models"
	"github.com/XrOne/jenia-portfolio/internal/services"
	"github.com/XrOne/jenia-portfolio/internal/storage"
	"github.com/XrOne/jenia-portfolio/pkg/dto"
	"github.com/spf13/cobra"
)

type publishOptions struct {
	Title        string
	Description  string
	Thumbnail    string
	ContentType  string
	DisplayOrder int
	Inactive     bool
}

var publishOpts publishOptions

var publishCmd = &cobra.Command{
	Use:   "publish <file>",
	Short: "Upload a video file and add it to the gallery",
	Long: `Upload a local video through a signed upload URL, then create the gallery entry.

The signed URL must point at the configured storage host; anything else is refused
before a single byte is sent.`,
	Args: cobra.ExactArgs(1),
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().StringVar(&publishOpts.Title, "title", "", "Video title (default: file name without extension)")
	publishCmd.Flags().StringVar(&publishOpts.Description, "description", "", "Video description")
	publishCmd.Flags().StringVar(&publishOpts.Thumbnail, "thumbnail", "", "Thumbnail URL")
	publishCmd.Flags().StringVar(&publishOpts.ContentType, "content-type", "", "Content type (default: derived from the extension)")
	publishCmd.Flags().IntVar(&publishOpts.DisplayOrder, "order", 0, "Display order, higher first")
	publishCmd.Flags().BoolVar(&publishOpts.Inactive, "inactive", false, "Create the video hidden from the public gallery")
}

type uploadSigner interface {
	SignUpload(ctx context.Context, fileName, contentType string) (*services.SignedUploadResult, error)
}

type videoCreator interface {
	Create(ctx context.Context, req dto.CreateVideoRequest) (*models.Video, error)
}

type publisher struct {
	uploads    uploadSigner
	videos     videoCreator
	storageURL string
	client     *http.Client
}

func (p *publisher) publish(ctx context.Context, path string, opts publishOptions) (*models.Video, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() == 0 {
		return nil, services.ErrEmptyFile
	}

	contentType := opts.ContentType
	if contentType == "" {
		contentType = contentTypeFor(path)
	}

	signed, err := p.uploads.SignUpload(ctx, filepath.Base(path), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to sign upload: %w", err)
	}
	if err := storage.VerifySignedURL(signed.UploadURL, p.storageURL); err != nil {
		return nil, err
	}
	if err := storage.UploadSigned(ctx, p.client, signed.UploadURL, f, info.Size(), contentType); err != nil {
		return nil, err
	}

	title := opts.Title
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	active := !opts.Inactive
	order := opts.DisplayOrder

	req := dto.CreateVideoRequest{
		Title:        title,
		VideoURL:     signed.PublicURL,
		FileKey:      signed.Key,
		IsActive:     &active,
		DisplayOrder: &order,
	}
	if opts.Description != "" {
		req.Description = &opts.Description
	}
	if opts.Thumbnail != "" {
		req.ThumbnailURL = &opts.Thumbnail
	}

	return p.videos.Create(ctx, req)
}

// The system mime tables are not guaranteed to know video extensions.
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
}

func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := videoTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

func runPublish(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rt, err := open(ctx)
	if err != nil {
		return err
	}
	defer rt.Close()

	objects := storage.New(rt.cfg.Storage, rt.logger)
	p := &publisher{
		uploads:    services.NewUploadService(objects, rt.cfg.Upload, rt.logger),
		videos:     services.NewVideoService(rt.db, objects, rt.logger),
		storageURL: rt.cfg.Storage.URL,
		client:     http.DefaultClient,
	}

	video, err := p.publish(ctx, args[0], publishOpts)
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Published video %d: %s\n  key: %s\n  url: %s\n", video.ID, video.Title, video.FileKey, video.VideoURL)
	return nil
}
