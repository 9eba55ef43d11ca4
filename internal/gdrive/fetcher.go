package gdrive

import (
	"context"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
)

// Fetcher downloads located exports.
type Fetcher struct {
	api API
}

// NewFetcher returns a Fetcher over api.
func NewFetcher(api API) *Fetcher {
	return &Fetcher{api: api}
}

// Fetch returns the full content of file. Any failure is reported as a
// retriable download failure.
func (f *Fetcher) Fetch(ctx context.Context, file File) ([]byte, error) {
	data, err := f.api.Download(ctx, file.ID)
	if err != nil {
		logger.Get().Errorw("export download failed", "file_id", file.ID, "file_name", file.Name, "error", err)
		return nil, apperrors.Wrap(apperrors.ErrDownloadFailed, err)
	}
	logger.Get().Infow("export downloaded", "file_id", file.ID, "bytes", len(data))
	return data, nil
}
