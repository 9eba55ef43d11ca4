// Package household merges the two members' spendings into one attributed
// timeline.
package household

import (
	"sort"
	"strings"

	"gagyebu/internal/models"
	"gagyebu/internal/uuid"
)

// Batch is one member's normalized spendings from a single sync.
type Batch struct {
	OwnerEmail string
	Role       models.Role
	Spendings  []models.Spending
}

// Merge concatenates batches into one timeline. Every record is re-stamped
// with its batch's owner and role and given its derived id, so identical rows
// from two accounts stay distinct. The result is ordered newest first;
// records without an instant go last. Ties are broken by role, then raw id.
func Merge(batches ...Batch) []models.Spending {
	total := 0
	for _, b := range batches {
		total += len(b.Spendings)
	}

	out := make([]models.Spending, 0, total)
	for _, b := range batches {
		owner := strings.ToLower(strings.TrimSpace(b.OwnerEmail))
		for _, s := range b.Spendings {
			s.OwnerEmail = owner
			s.Role = b.Role
			s.ID = uuid.SpendingID(owner, string(b.Role), s.SourceID, s.OccurredAt, s.Amount)
			out = append(out, s)
		}
	}

	Sort(out)
	return out
}

// Sort orders spendings newest first with absent instants last.
func Sort(list []models.Spending) {
	sort.SliceStable(list, func(i, j int) bool {
		return Less(&list[i], &list[j])
	})
}

// Less reports whether a sorts before b in timeline order.
func Less(a, b *models.Spending) bool {
	switch {
	case a.OccurredAt != nil && b.OccurredAt == nil:
		return true
	case a.OccurredAt == nil && b.OccurredAt != nil:
		return false
	case a.OccurredAt != nil && !a.OccurredAt.Equal(*b.OccurredAt):
		return a.OccurredAt.After(*b.OccurredAt)
	}
	if a.Role != b.Role {
		return a.Role < b.Role
	}
	return a.SourceID > b.SourceID
}

// Owners returns the distinct owner emails of batches, in order.
func Owners(batches ...Batch) []string {
	seen := make(map[string]bool, len(batches))
	var out []string
	for _, b := range batches {
		owner := strings.ToLower(strings.TrimSpace(b.OwnerEmail))
		if !seen[owner] {
			seen[owner] = true
			out = append(out, owner)
		}
	}
	return out
}
