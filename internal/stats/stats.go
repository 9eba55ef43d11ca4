// Package stats aggregates normalized spendings for the dashboard. Functions
// here are pure; month windows are evaluated in the household zone and
// records without an instant never fall inside one.
package stats

import (
	"math"
	"sort"
	"time"

	"gagyebu/internal/models"
	"gagyebu/internal/temporal"
)

// CategoryTotal is the amount spent in one category.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int64  `json:"amount"`
	Count    int    `json:"count"`
}

// MonthTotal is the amount spent in one "YYYY-MM" month.
type MonthTotal struct {
	Month  string `json:"month"`
	Amount int64  `json:"amount"`
}

// CategoryMonth holds per-category totals for one month.
type CategoryMonth struct {
	Month      string           `json:"month"`
	Categories map[string]int64 `json:"categories"`
}

// Bucket counts spendings whose amount lies in [Min, Max).
type Bucket struct {
	Label  string `json:"label"`
	Min    int64  `json:"min"`
	Max    int64  `json:"max"`
	Count  int    `json:"count"`
	Amount int64  `json:"amount"`
}

// InMonth returns the spendings whose instant falls in the household-zone
// month starting at start.
func InMonth(list []models.Spending, times *temporal.Resolver, start time.Time) []models.Spending {
	key := times.MonthKey(start)
	var out []models.Spending
	for _, s := range list {
		if s.OccurredAt != nil && times.MonthKey(*s.OccurredAt) == key {
			out = append(out, s)
		}
	}
	return out
}

// ByRole returns the spendings attributed to role.
func ByRole(list []models.Spending, role models.Role) []models.Spending {
	var out []models.Spending
	for _, s := range list {
		if s.Role == role {
			out = append(out, s)
		}
	}
	return out
}

// Sum totals the amounts of list.
func Sum(list []models.Spending) int64 {
	var total int64
	for _, s := range list {
		total += s.Amount
	}
	return total
}

// SumForMonth totals the spendings in the month starting at start.
func SumForMonth(list []models.Spending, times *temporal.Resolver, start time.Time) int64 {
	return Sum(InMonth(list, times, start))
}

// SumByCategory totals list per category, largest first.
func SumByCategory(list []models.Spending) []CategoryTotal {
	totals := make(map[string]*CategoryTotal)
	for _, s := range list {
		ct, ok := totals[s.Category]
		if !ok {
			ct = &CategoryTotal{Category: s.Category}
			totals[s.Category] = ct
		}
		ct.Amount += s.Amount
		ct.Count++
	}

	out := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// SumByRoleCategory totals list per role and category.
func SumByRoleCategory(list []models.Spending) map[models.Role]map[string]int64 {
	out := make(map[models.Role]map[string]int64)
	for _, s := range list {
		m, ok := out[s.Role]
		if !ok {
			m = make(map[string]int64)
			out[s.Role] = m
		}
		m[s.Category] += s.Amount
	}
	return out
}

// MonthlyTrend totals the n months ending with the month holding now, oldest
// first. Months without spendings are reported as zero.
func MonthlyTrend(list []models.Spending, times *temporal.Resolver, now time.Time, n int) []MonthTotal {
	if n <= 0 {
		return []MonthTotal{}
	}

	current := times.MonthStart(now)
	out := make([]MonthTotal, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := times.MonthKey(current.AddDate(0, i-(n-1), 0))
		out[i] = MonthTotal{Month: key}
		index[key] = i
	}

	for _, s := range list {
		if s.OccurredAt == nil {
			continue
		}
		if i, ok := index[times.MonthKey(*s.OccurredAt)]; ok {
			out[i].Amount += s.Amount
		}
	}
	return out
}

// CategoryMonthly totals each category per month over the n months ending
// with the month holding now, oldest first. Months without spendings carry an
// empty map.
func CategoryMonthly(list []models.Spending, times *temporal.Resolver, now time.Time, n int) []CategoryMonth {
	if n <= 0 {
		return []CategoryMonth{}
	}

	current := times.MonthStart(now)
	out := make([]CategoryMonth, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := times.MonthKey(current.AddDate(0, i-(n-1), 0))
		out[i] = CategoryMonth{Month: key, Categories: map[string]int64{}}
		index[key] = i
	}

	for _, s := range list {
		if s.OccurredAt == nil {
			continue
		}
		if i, ok := index[times.MonthKey(*s.OccurredAt)]; ok {
			out[i].Categories[s.Category] += s.Amount
		}
	}
	return out
}

// Distribution buckets list by amount. Negative amounts fall in no bucket.
func Distribution(list []models.Spending) []Bucket {
	out := []Bucket{
		{Label: "1만원 미만", Min: 0, Max: 10000},
		{Label: "1-3만원", Min: 10000, Max: 30000},
		{Label: "3-5만원", Min: 30000, Max: 50000},
		{Label: "5-10만원", Min: 50000, Max: 100000},
		{Label: "10-20만원", Min: 100000, Max: 200000},
		{Label: "20만원 이상", Min: 200000, Max: math.MaxInt64},
	}
	for _, s := range list {
		for i := range out {
			if s.Amount >= out[i].Min && s.Amount < out[i].Max {
				out[i].Count++
				out[i].Amount += s.Amount
				break
			}
		}
	}
	return out
}
