package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoding
	"io"
	"math"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/salon-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

var ErrInvalidFileType = errors.New("invalid file type: only jpg, jpeg, png, pdf allowed")

const (
	maxImageSize = 300 * 1024
	minImageSize = 50 * 1024
	// resized images never go below this width
	minImageWidth = 480
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".pdf":  "application/pdf",
}

type FileService interface {
	// UploadEmployeeFile stores an employee document or photo and returns its storage key.
	// Photos are re-encoded as JPEG when they exceed the size window.
	UploadEmployeeFile(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)
	DeleteFile(ctx context.Context, key string) error
	FileURL(key string) string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

func (s *fileServiceImpl) UploadEmployeeFile(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := contentTypes[ext]
	if !ok {
		return "", ErrInvalidFileType
	}

	if strings.HasPrefix(contentType, "image/") {
		buffer, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("failed to read image: %w", err)
		}

		compressed, reencoded, err := compressImage(buffer, maxImageSize, minImageSize)
		if err != nil {
			return "", fmt.Errorf("failed to compress image: %w", err)
		}
		if reencoded {
			ext, contentType = ".jpg", "image/jpeg"
		}
		file = bytes.NewReader(compressed)
	}

	key := path.Join("employees", employeeID, uuid.NewString()+ext)
	uploaded, err := s.storage.Upload(ctx, file, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload employee file: %w", err)
	}
	return uploaded, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func (s *fileServiceImpl) FileURL(key string) string {
	return s.storage.URL(key)
}

// compressImage returns buffer untouched when it is already inside [minSize, maxSize] or smaller.
// Larger images are re-encoded as JPEG with decreasing quality, then downscaled.
func compressImage(buffer []byte, maxSize, minSize int) ([]byte, bool, error) {
	if len(buffer) <= maxSize {
		return buffer, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode image: %w", err)
	}

	var compressed []byte
	for quality := 85; quality >= 50; quality -= 5 {
		compressed, err = encodeJPEG(img, quality)
		if err != nil {
			return nil, false, err
		}
		if len(compressed) <= maxSize {
			return compressed, true, nil
		}
	}

	// aim for the middle of the window
	target := float64(maxSize+minSize) / 2
	ratio := math.Sqrt(target / float64(len(compressed)))
	bounds := img.Bounds()
	width := int(float64(bounds.Dx()) * ratio)
	if width < minImageWidth {
		width = minImageWidth
	}
	if width > bounds.Dx() {
		width = bounds.Dx()
	}
	height := bounds.Dy() * width / bounds.Dx()

	compressed, err = encodeJPEG(resizeImage(img, width, height), 70)
	if err != nil {
		return nil, false, err
	}
	return compressed, true, nil
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
