// Package gdrive finds and downloads the newest expense export in a member's
// Google Drive.
package gdrive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const folderMimeType = "application/vnd.google-apps.folder"

// File is the metadata of one drive file or folder.
type File struct {
	ID           string
	Name         string
	ModifiedTime *time.Time
}

// API is the subset of Google Drive the sync uses.
type API interface {
	// ListFolders returns up to limit non-trashed folders named exactly name.
	ListFolders(ctx context.Context, name string, limit int64) ([]File, error)
	// ListFiles returns non-trashed files in parentID whose name contains
	// nameContains, most recently modified first.
	ListFiles(ctx context.Context, parentID, nameContains string) ([]File, error)
	// Download returns the full content of fileID.
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Client implements API over the Drive v3 REST service.
type Client struct {
	svc     *drive.Service
	timeout time.Duration
}

var _ API = (*Client)(nil)

// NewClient builds a Client sending requests through httpClient, which must
// already be authorized. A positive timeout bounds every single request.
func NewClient(ctx context.Context, httpClient *http.Client, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{svc: svc, timeout: timeout}, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// ListFolders implements API.
func (c *Client) ListFolders(ctx context.Context, name string, limit int64) ([]File, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("mimeType = '%s' and name = '%s' and trashed = false", folderMimeType, quote(name))
	res, err := c.svc.Files.List().
		Q(q).
		PageSize(limit).
		Fields("files(id, name, modifiedTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return toFiles(res.Files), nil
}

// ListFiles implements API.
func (c *Client) ListFiles(ctx context.Context, parentID, nameContains string) ([]File, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	q := fmt.Sprintf("'%s' in parents and name contains '%s' and trashed = false", quote(parentID), quote(nameContains))
	res, err := c.svc.Files.List().
		Q(q).
		OrderBy("modifiedTime desc").
		Fields("files(id, name, modifiedTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return toFiles(res.Files), nil
}

// Download implements API.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download file %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", fileID, err)
	}
	return data, nil
}

var queryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quote escapes a value for use inside a single-quoted Drive query literal.
func quote(s string) string {
	return queryEscaper.Replace(s)
}

func toFiles(in []*drive.File) []File {
	out := make([]File, 0, len(in))
	for _, f := range in {
		file := File{ID: f.Id, Name: f.Name}
		if f.ModifiedTime != "" {
			if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
				file.ModifiedTime = &t
			}
		}
		out = append(out, file)
	}
	return out
}
