package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog/log"
)

// imageExtensions lists the accepted upload types
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

func AllowedImageTypes() []string {
	return []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
}

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ImageStore keeps project images in an S3 bucket and returns their public URL
type ImageStore struct {
	client  ObjectPutter
	bucket  string
	region  string
	baseURL string
}

func NewImageStore(client ObjectPutter, cfg config.StorageConfig) *ImageStore {
	return &ImageStore{
		client:  client,
		bucket:  cfg.S3Bucket,
		region:  cfg.S3Region,
		baseURL: cfg.PublicBaseURL,
	}
}

func (s *ImageStore) Configured() bool {
	return s != nil && s.client != nil && s.bucket != ""
}

// Upload stores body under projects/<uuid><ext>
func (s *ImageStore) Upload(ctx context.Context, contentType string, body io.Reader, size int64) (string, error) {
	if !s.Configured() {
		return "", errs.NewServiceNotConfiguredError("image storage")
	}

	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", errs.NewUnsupportedMediaTypeError(contentType, AllowedImageTypes())
	}

	key := "projects/" + uuid.NewString() + ext
	input := &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", errs.NewUpstreamError("Failed to upload image", err)
	}

	url := s.publicURL(key)
	log.Info().Str("key", key).Str("url", url).Msg("Uploaded image")
	return url, nil
}

func (s *ImageStore) publicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
