package documents

import (
	"context"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"letterforge/internal/logging"
	"letterforge/pkg/models"
	"letterforge/pkg/utils"
)

// FileInput is one file selected for upload: a name and a way to open its
// content.
type FileInput struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// Reader turns selected text files into profile documents. Files in a batch
// are read concurrently and the batch is joined before any result is
// exposed; a read failure for one file yields an empty-content document
// instead of aborting its siblings.
type Reader struct {
	maxFileSize int64
	logger      logging.Logger
}

// NewReader creates a document reader. maxFileSize caps the bytes read per
// file; zero means no cap.
func NewReader(maxFileSize int64) *Reader {
	return &Reader{
		maxFileSize: maxFileSize,
		logger:      logging.GetGlobalLogger().WithField("component", "document_reader"),
	}
}

// ReadAll reads the whole batch and returns one document per input, in input
// order. Each document gets a fresh id and the current timestamp.
func (r *Reader) ReadAll(ctx context.Context, files []FileInput) []models.Document {
	docs := make([]models.Document, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			docs[i] = models.Document{
				ID:         utils.GenerateRecordID(),
				Name:       file.Name,
				Content:    r.readContent(ctx, file),
				UploadDate: time.Now(),
			}
			return nil
		})
	}
	// Workers never return errors; Wait is the batch join point.
	_ = g.Wait()

	return docs
}

// readContent reads one file, returning "" on any failure.
func (r *Reader) readContent(ctx context.Context, file FileInput) string {
	if err := ctx.Err(); err != nil {
		return ""
	}

	rc, err := file.Open()
	if err != nil {
		r.logger.Warn("Failed to open uploaded file", map[string]interface{}{
			"name":  file.Name,
			"error": err.Error(),
		})
		return ""
	}
	defer rc.Close()

	var reader io.Reader = rc
	if r.maxFileSize > 0 {
		reader = io.LimitReader(rc, r.maxFileSize)
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		r.logger.Warn("Failed to read uploaded file", map[string]interface{}{
			"name":  file.Name,
			"error": err.Error(),
		})
		return ""
	}

	return string(content)
}
