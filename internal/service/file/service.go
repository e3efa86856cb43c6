package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/workflow-erp/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var (
	ErrUnsupportedImage = errors.New("invalid file type: only jpg, jpeg, png allowed")
	ErrImageTooLarge    = errors.New("image exceeds the upload size limit")
	ErrImageUnreadable  = errors.New("image could not be decoded")
)

// MaxUploadBytes is the largest accepted upload before decoding.
const MaxUploadBytes = 5 << 20

const (
	avatarMaxSide = 256
	logoMaxWidth  = 640
	logoMaxHeight = 200
)

type FileService interface {
	// UploadAvatar stores a square-bounded avatar and returns its public URL
	UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error)

	// UploadLogo stores a company logo variant ("expanded" or "collapsed") and returns its public URL
	UploadLogo(ctx context.Context, variant string, file io.Reader, filename string) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

// UploadAvatar implements FileService.
func (s *fileServiceImpl) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	encoded, ext, contentType, err := prepareImage(file, filename, avatarMaxSide, avatarMaxSide)
	if err != nil {
		return "", err
	}

	path := filepath.Join("avatars", userID, fmt.Sprintf("%s%s", uuid.New().String(), ext))
	key, err := s.storage.Upload(ctx, bytes.NewReader(encoded), path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return s.storage.URL(key), nil
}

// UploadLogo implements FileService.
func (s *fileServiceImpl) UploadLogo(ctx context.Context, variant string, file io.Reader, filename string) (string, error) {
	maxW, maxH := logoMaxWidth, logoMaxHeight
	if variant == "collapsed" {
		maxW, maxH = logoMaxHeight, logoMaxHeight
	}

	encoded, ext, contentType, err := prepareImage(file, filename, maxW, maxH)
	if err != nil {
		return "", err
	}

	path := filepath.Join("logos", fmt.Sprintf("%s-%s%s", variant, uuid.New().String(), ext))
	key, err := s.storage.Upload(ctx, bytes.NewReader(encoded), path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}
	return s.storage.URL(key), nil
}

// prepareImage validates the extension, decodes the image, shrinks it to fit
// maxW x maxH and re-encodes it in its original format.
func prepareImage(file io.Reader, filename string, maxW, maxH int) ([]byte, string, string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return nil, "", "", ErrUnsupportedImage
	}

	raw, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		return nil, "", "", fmt.Errorf("failed to read image: %w", err)
	}
	if len(raw) > MaxUploadBytes {
		return nil, "", "", ErrImageTooLarge
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, "", "", ErrImageUnreadable
	}
	img = fitWithin(img, maxW, maxH)

	var buf bytes.Buffer
	if format == "png" {
		if err := png.Encode(&buf, img); err != nil {
			return nil, "", "", fmt.Errorf("failed to encode PNG: %w", err)
		}
		return buf.Bytes(), ".png", "image/png", nil
	}
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, "", "", fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), ".jpg", "image/jpeg", nil
}

// fitWithin scales src down, keeping its aspect ratio, so that it fits in
// maxW x maxH. Smaller images are returned unchanged.
func fitWithin(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}

	scale := float64(maxW) / float64(w)
	if s := float64(maxH) / float64(h); s < scale {
		scale = s
	}
	newW := max(1, int(float64(w)*scale))
	newH := max(1, int(float64(h)*scale))

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
