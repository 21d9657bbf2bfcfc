package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/relatorio/internal/model"
)

// Attachment errors.
var (
	// ErrNotImage is returned when a file's content is not an image.
	ErrNotImage = errors.New("file is not an image")

	// ErrTooLarge is returned when a file exceeds the configured size limit.
	ErrTooLarge = errors.New("file exceeds maximum image size")

	// ErrEmptyFile is returned for zero-byte files.
	ErrEmptyFile = errors.New("file is empty")
)

// sniffLen is the number of bytes http.DetectContentType considers.
const sniffLen = 512

// Attachment is an image file to be sent with a form.
type Attachment struct {
	// Path is the local file path.
	Path string

	// Field is the form field name the file is sent as.
	Field string
}

// Inspector checks attachments and extracts their metadata.
type Inspector struct {
	maxSize     int64
	concurrency int
	logger      *slog.Logger
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithMaxSize sets the maximum accepted file size in bytes.
func WithMaxSize(size int64) Option {
	return func(i *Inspector) {
		if size > 0 {
			i.maxSize = size
		}
	}
}

// WithConcurrency sets how many files are inspected at once.
func WithConcurrency(n int) Option {
	return func(i *Inspector) {
		if n > 0 {
			i.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Inspector) {
		i.logger = logger
	}
}

// NewInspector creates an Inspector. The defaults accept files up to 10MB
// and inspect four files at a time.
func NewInspector(opts ...Option) *Inspector {
	i := &Inspector{
		maxSize:     10 * 1024 * 1024,
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.logger == nil {
		i.logger = slog.Default()
	}
	return i
}

// InspectAll inspects the attachments concurrently and returns one
// ImageInfo per attachment in input order. Per-file problems are recorded
// in ImageInfo.Error; the returned error is non-nil only when ctx is done.
func (i *Inspector) InspectAll(ctx context.Context, attachments []Attachment) ([]model.ImageInfo, error) {
	infos := make([]model.ImageInfo, len(attachments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for idx, a := range attachments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			infos[idx] = i.Inspect(a)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return infos, nil
}

// Inspect checks a single attachment.
func (i *Inspector) Inspect(a Attachment) model.ImageInfo {
	info := model.ImageInfo{Path: a.Path, Field: a.Field}

	data, err := i.readImage(a.Path)
	if err != nil {
		info.Error = err.Error()
		i.logger.Warn("attachment rejected", "path", a.Path, "error", err)
		return info
	}

	info.Size = int64(len(data))
	info.ContentType = http.DetectContentType(data[:min(len(data), sniffLen)])
	if !strings.HasPrefix(info.ContentType, "image/") {
		info.Error = fmt.Errorf("%w: %s", ErrNotImage, info.ContentType).Error()
		i.logger.Warn("attachment rejected", "path", a.Path, "contentType", info.ContentType)
		return info
	}

	info.Metadata, info.HasGPS = extractMetadata(data)
	if info.HasGPS {
		i.logger.Warn("image carries GPS coordinates", "path", a.Path)
	}
	i.logger.Debug("attachment inspected",
		"path", a.Path,
		"contentType", info.ContentType,
		"size", info.Size,
		"exifTags", len(info.Metadata),
	)

	return info
}

// Validate returns the first inspection error among infos, if any.
func Validate(infos []model.ImageInfo) error {
	for _, info := range infos {
		if info.Error != "" {
			return fmt.Errorf("%s: %s", info.Path, info.Error)
		}
	}
	return nil
}

// readImage reads the file, enforcing the size limit.
func (i *Inspector) readImage(path string) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided attachment path is intentional
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, ErrEmptyFile
	}
	if st.Size() > i.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, st.Size())
	}

	return io.ReadAll(io.LimitReader(f, i.maxSize))
}

// extractMetadata returns the EXIF tags relevant to a maintenance photo
// and whether GPS coordinates are present. Images without EXIF yield nil.
func extractMetadata(data []byte) (map[string]string, bool) {
	rawExif, err := exif.SearchAndExtractExif(data)
	if err != nil || rawExif == nil {
		return nil, false
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil, false
	}

	metadata := make(map[string]string)
	hasGPS := false
	for _, entry := range entries {
		switch entry.TagName {
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			hasGPS = true
			metadata[entry.TagName] = entry.Formatted
		case "Make", "Model", "Software", "DateTimeOriginal", "DateTime":
			metadata[entry.TagName] = entry.Formatted
		}
	}

	if len(metadata) == 0 {
		return nil, hasGPS
	}
	return metadata, hasGPS
}
