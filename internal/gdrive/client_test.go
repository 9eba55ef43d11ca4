package gdrive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/api/option"

	"gagyebu/internal/testutil"
)

// fakeDrive serves the two Drive v3 endpoints the client calls.
type fakeDrive struct {
	t       *testing.T
	queries []string
	orderBy []string
	folders []map[string]string
	files   []map[string]string
	content map[string][]byte
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/files":
		q := r.URL.Query().Get("q")
		f.queries = append(f.queries, q)
		f.orderBy = append(f.orderBy, r.URL.Query().Get("orderBy"))
		list := f.files
		if strings.Contains(q, folderMimeType) {
			list = f.folders
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"files": list})
	case strings.HasPrefix(r.URL.Path, "/files/"):
		if r.URL.Query().Get("alt") != "media" {
			f.t.Errorf("expected alt=media, got %q", r.URL.RawQuery)
		}
		data, ok := f.content[strings.TrimPrefix(r.URL.Path, "/files/")]
		if !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"File not found"}}`))
			return
		}
		_, _ = w.Write(data)
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, fake *fakeDrive) *Client {
	t.Helper()
	fake.t = t
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), srv.Client(), 5*time.Second, option.WithEndpoint(srv.URL+"/"))
	testutil.AssertNoError(t, err)
	return c
}

func TestClientListFolders(t *testing.T) {
	fake := &fakeDrive{
		folders: []map[string]string{{"id": "folder-1", "name": "clevmoney", "modifiedTime": "2024-03-16T01:02:03.000Z"}},
	}
	c := newTestClient(t, fake)

	got, err := c.ListFolders(context.Background(), "clevmoney", 2)
	testutil.AssertNoError(t, err)

	if len(got) != 1 || got[0].ID != "folder-1" {
		t.Fatalf("unexpected folders: %+v", got)
	}
	if got[0].ModifiedTime == nil || got[0].ModifiedTime.Year() != 2024 {
		t.Errorf("expected parsed modified time, got %v", got[0].ModifiedTime)
	}
	want := "mimeType = 'application/vnd.google-apps.folder' and name = 'clevmoney' and trashed = false"
	if fake.queries[0] != want {
		t.Errorf("unexpected query:\n got %s\nwant %s", fake.queries[0], want)
	}
}

func TestClientListFiles(t *testing.T) {
	fake := &fakeDrive{
		files: []map[string]string{
			{"id": "new", "name": "clevmoney_0316.db"},
			{"id": "old", "name": "clevmoney_0301.db"},
		},
	}
	c := newTestClient(t, fake)

	got, err := c.ListFiles(context.Background(), "folder-1", "clevmoney_")
	testutil.AssertNoError(t, err)

	if len(got) != 2 || got[0].ID != "new" {
		t.Fatalf("unexpected files: %+v", got)
	}
	want := "'folder-1' in parents and name contains 'clevmoney_' and trashed = false"
	if fake.queries[0] != want {
		t.Errorf("unexpected query:\n got %s\nwant %s", fake.queries[0], want)
	}
	if fake.orderBy[0] != "modifiedTime desc" {
		t.Errorf("expected modifiedTime desc ordering, got %q", fake.orderBy[0])
	}
}

func TestClientDownload(t *testing.T) {
	fake := &fakeDrive{content: map[string][]byte{"file-1": []byte("SQLite format 3\x00")}}
	c := newTestClient(t, fake)

	t.Run("ok", func(t *testing.T) {
		data, err := c.Download(context.Background(), "file-1")
		testutil.AssertNoError(t, err)
		if string(data) != "SQLite format 3\x00" {
			t.Errorf("unexpected content %q", data)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := c.Download(context.Background(), "nope"); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
}

func TestQuote(t *testing.T) {
	if got := quote(`kim's \ folder`); got != `kim\'s \\ folder` {
		t.Errorf("unexpected escape: %s", got)
	}
}
