package stats

import (
	"time"

	"gagyebu/internal/models"
	"gagyebu/internal/temporal"
)

// Summary is the dashboard header for one month.
type Summary struct {
	Month       string                           `json:"month"`
	MyRole      models.Role                      `json:"my_role"`
	MyTotal     int64                            `json:"my_total"`
	CoupleTotal int64                            `json:"couple_total"`
	ByCategory  []CategoryTotal                  `json:"by_category"`
	ByRole      map[models.Role]map[string]int64 `json:"by_role_category"`
	Undated     int                              `json:"undated_count"`
}

// Summarize builds the Summary of the month starting at start for the member
// holding myRole.
func Summarize(list []models.Spending, times *temporal.Resolver, start time.Time, myRole models.Role) Summary {
	month := InMonth(list, times, start)

	undated := 0
	for _, s := range list {
		if s.OccurredAt == nil {
			undated++
		}
	}

	return Summary{
		Month:       times.MonthKey(start),
		MyRole:      myRole,
		MyTotal:     Sum(ByRole(month, myRole)),
		CoupleTotal: Sum(month),
		ByCategory:  SumByCategory(month),
		ByRole:      SumByRoleCategory(month),
		Undated:     undated,
	}
}
