package uuid

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()
	if a == b {
		t.Fatalf("expected distinct ids, got %s twice", a)
	}
	if !IsValid(a) {
		t.Errorf("expected valid uuid, got %q", a)
	}
	if a[14] != '7' {
		t.Errorf("expected version 7, got %q", a)
	}
}

func TestSpendingID(t *testing.T) {
	at := time.Date(2024, 3, 15, 5, 30, 0, 0, time.UTC)

	t.Run("deterministic", func(t *testing.T) {
		first := SpendingID("a@example.com", "husband", 1, &at, 1000)
		second := SpendingID("a@example.com", "husband", 1, &at, 1000)
		if first != second {
			t.Errorf("expected equal ids, got %s and %s", first, second)
		}
		if !IsValid(first) {
			t.Errorf("expected valid uuid, got %q", first)
		}
	})

	t.Run("owner_is_part_of_identity", func(t *testing.T) {
		husband := SpendingID("a@example.com", "husband", 1, &at, 1000)
		wife := SpendingID("b@example.com", "wife", 1, &at, 1000)
		if husband == wife {
			t.Error("expected different ids for different owners")
		}
	})

	t.Run("email_case_is_ignored", func(t *testing.T) {
		lower := SpendingID("a@example.com", "husband", 1, &at, 1000)
		mixed := SpendingID(" A@Example.com", "husband", 1, &at, 1000)
		if lower != mixed {
			t.Error("expected email normalization to yield the same id")
		}
	})

	t.Run("absent_instant_differs_from_epoch", func(t *testing.T) {
		epoch := time.Unix(0, 0)
		absent := SpendingID("a@example.com", "husband", 1, nil, 1000)
		zero := SpendingID("a@example.com", "husband", 1, &epoch, 1000)
		if absent == zero {
			t.Error("expected absent instant to differ from the epoch")
		}
	})

	t.Run("same_instant_other_zone", func(t *testing.T) {
		seoul := at.In(time.FixedZone("KST", 9*60*60))
		if SpendingID("a@example.com", "husband", 1, &at, 1000) != SpendingID("a@example.com", "husband", 1, &seoul, 1000) {
			t.Error("expected zone-independent ids")
		}
	})

	t.Run("amount_is_part_of_identity", func(t *testing.T) {
		if SpendingID("a@example.com", "husband", 1, &at, 1000) == SpendingID("a@example.com", "husband", 1, &at, 1001) {
			t.Error("expected different ids for different amounts")
		}
	})
}
