package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/obra-tracker/obra-backend/internal/repository/storage"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	// PresignExpiry bounds how long a generated image URL stays valid
	PresignExpiry = 15 * time.Minute
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImageVariants holds the object keys stored for one uploaded image. The
// base key is what gets attached to the budget item.
type ImageVariants struct {
	BaseKey      string `json:"baseKey"`
	ThumbnailURL string `json:"thumbnailUrl"`
	DisplayURL   string `json:"displayUrl"`
}

// ImageService validates receipt photos, resizes them into variants and
// stores them. Storage is optional; without it uploads are rejected.
type ImageService struct {
	storage storage.ImageRepository
}

// NewImageService creates a new ImageService
func NewImageService(storage storage.ImageRepository) *ImageService {
	return &ImageService{storage: storage}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the image and returns the decoded image
func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// ProcessAndUpload validates an item image, resizes it into thumb and display
// variants and uploads both. Returns the base key to attach to the item plus
// presigned URLs for immediate display.
func (s *ImageService) ProcessAndUpload(ctx context.Context, itemID string, data []byte, filename string) (*ImageVariants, error) {
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	baseKey := fmt.Sprintf("budget-items/%s/%s", itemID, uuid.New().String())

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
	}

	var uploaded []string
	for _, variant := range variants {
		processed := img
		if img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		key := variantKey(baseKey, variant.name)
		if _, err := s.storage.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len())); err != nil {
			s.cleanup(ctx, uploaded)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}
		uploaded = append(uploaded, key)
	}

	result := &ImageVariants{BaseKey: baseKey}
	if result.ThumbnailURL, err = s.storage.GeneratePresignedURL(ctx, variantKey(baseKey, "thumb"), PresignExpiry); err != nil {
		return nil, err
	}
	if result.DisplayURL, err = s.storage.GeneratePresignedURL(ctx, variantKey(baseKey, "display"), PresignExpiry); err != nil {
		return nil, err
	}
	return result, nil
}

// URLs generates fresh presigned URLs for a stored image key.
func (s *ImageService) URLs(ctx context.Context, baseKey string) (*ImageVariants, error) {
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}
	thumb, err := s.storage.GeneratePresignedURL(ctx, variantKey(baseKey, "thumb"), PresignExpiry)
	if err != nil {
		return nil, err
	}
	display, err := s.storage.GeneratePresignedURL(ctx, variantKey(baseKey, "display"), PresignExpiry)
	if err != nil {
		return nil, err
	}
	return &ImageVariants{BaseKey: baseKey, ThumbnailURL: thumb, DisplayURL: display}, nil
}

// DeleteAllVariants removes every stored variant of an image. Best effort.
func (s *ImageService) DeleteAllVariants(ctx context.Context, baseKey string) error {
	if baseKey == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrImageStorageNotConfigured
	}
	for _, name := range []string{"thumb", "display"} {
		_ = s.storage.Delete(ctx, variantKey(baseKey, name))
	}
	return nil
}

// cleanup removes variants uploaded before a failure. Errors are ignored.
func (s *ImageService) cleanup(ctx context.Context, keys []string) {
	for _, key := range keys {
		_ = s.storage.Delete(ctx, key)
	}
}

func variantKey(baseKey, variant string) string {
	return baseKey + "_" + variant + ".jpg"
}
