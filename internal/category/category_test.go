package category

import (
	"slices"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want string
	}{
		{"decorated_food", strPtr("🍟식비"), Food},
		{"decorated_travel", strPtr("✈️여행"), Travel},
		{"already_canonical", strPtr("식비"), Food},
		{"unknown_passes_through", strPtr("🐶반려동물"), "🐶반려동물"},
		{"nil", nil, Unspecified},
		{"empty_passes_through", strPtr(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	for label := range decorated {
		got := Normalize(strPtr(label))
		if !slices.Contains(Canonical(), got) {
			t.Errorf("label %q mapped to non-canonical %q", label, got)
		}
	}
}

func TestNormalizeOptional(t *testing.T) {
	t.Run("absent_stays_absent", func(t *testing.T) {
		if got := NormalizeOptional(nil); got != nil {
			t.Errorf("expected nil, got %q", *got)
		}
		if got := NormalizeOptional(strPtr("")); got != nil {
			t.Errorf("expected nil for empty, got %q", *got)
		}
	})

	t.Run("present_is_normalized", func(t *testing.T) {
		got := NormalizeOptional(strPtr("🚌교통비"))
		if got == nil || *got != Transport {
			t.Errorf("expected %q, got %v", Transport, got)
		}
	})
}

func TestCanonicalReturnsCopy(t *testing.T) {
	list := Canonical()
	list[0] = "changed"
	if Canonical()[0] != Food {
		t.Error("expected Canonical to return a copy")
	}
}
