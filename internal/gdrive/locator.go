package gdrive

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"

	apperrors "gagyebu/internal/errors"
	"gagyebu/internal/logger"
)

// Locator finds the export to sync: the most recently modified file in the
// sync folder whose name contains the export prefix.
type Locator struct {
	api        API
	folderName string
	prefix     string
}

// NewLocator returns a Locator searching folderName for files containing prefix.
func NewLocator(api API, folderName, prefix string) *Locator {
	return &Locator{api: api, folderName: folderName, prefix: prefix}
}

// Locate returns exactly one file. Two folders sharing the sync folder name
// are a configuration error, not something to guess around.
func (l *Locator) Locate(ctx context.Context) (File, error) {
	log := logger.With("folder", l.folderName, "prefix", l.prefix)

	folders, err := l.api.ListFolders(ctx, l.folderName, 2)
	if err != nil {
		log.Errorw("listing folders failed", "error", err)
		return File{}, driveError(err)
	}
	switch len(folders) {
	case 0:
		log.Warn("sync folder not found")
		return File{}, apperrors.ErrFolderNotFound
	case 1:
	default:
		log.Warnw("sync folder name is ambiguous", "matches", len(folders))
		return File{}, apperrors.ErrAmbiguousFolder
	}

	files, err := l.api.ListFiles(ctx, folders[0].ID, l.prefix)
	if err != nil {
		log.Errorw("listing files failed", "folder_id", folders[0].ID, "error", err)
		return File{}, driveError(err)
	}
	if len(files) == 0 {
		log.Warnw("no export found in sync folder", "folder_id", folders[0].ID)
		return File{}, apperrors.ErrSourceFileNotFound
	}

	log.Infow("export located", "file_id", files[0].ID, "file_name", files[0].Name, "candidates", len(files))
	return files[0], nil
}

// driveError classifies a failed drive call. Rejected credentials need a new
// sign-in; everything else is treated as transient.
func driveError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.Wrap(apperrors.ErrCredentialExpired, err)
		}
	}
	return apperrors.Wrap(apperrors.ErrDriveUnavailable, err)
}
