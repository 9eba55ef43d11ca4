package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"empty", PageRequest{}, 1, DefaultPageSize},
		{"kept", PageRequest{Page: 3, PageSize: 50}, 3, 50},
		{"negative", PageRequest{Page: -1, PageSize: -5}, 1, DefaultPageSize},
		{"too_large", PageRequest{Page: 1, PageSize: 500}, 1, MaxPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 20}
	if got := req.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	t.Run("nil_data_becomes_empty", func(t *testing.T) {
		resp := NewPageResponse[int](nil, 1, 20, 0)
		if resp.Data == nil || len(resp.Data) != 0 {
			t.Errorf("expected empty slice, got %v", resp.Data)
		}
		if resp.TotalPages != 0 || resp.HasMore {
			t.Errorf("expected no pages, got %+v", resp)
		}
	})

	t.Run("partial_last_page", func(t *testing.T) {
		resp := NewPageResponse([]int{1, 2}, 1, 5, 11)
		if resp.TotalPages != 3 {
			t.Errorf("expected 3 pages, got %d", resp.TotalPages)
		}
		if !resp.HasMore {
			t.Error("expected more pages")
		}
	})

	t.Run("last_page", func(t *testing.T) {
		resp := NewPageResponse([]int{1}, 3, 5, 11)
		if resp.HasMore {
			t.Error("expected no more pages")
		}
	})
}
