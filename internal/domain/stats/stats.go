// Package stats reduces in-memory patient collections to the aggregate
// figures shown on the dashboard. Every function is pure: no I/O, no
// mutation of its inputs.
package stats

import (
	"sort"

	"afya/internal/domain/entity"
)

// UnknownCounty is the label patients without a recorded county are grouped
// under in the county distribution.
const UnknownCounty = "Unknown"

// GroupCount is one group of a distribution. Groups keep the order in which
// their value was first encountered, which also decides ties in TopN.
type GroupCount struct {
	Value string
	Count int
}

// CountBy groups records by the value function and counts each group,
// preserving first-encounter order.
func CountBy(records []*entity.PatientRecord, value func(*entity.PatientRecord) string) []GroupCount {
	index := make(map[string]int, len(records))
	groups := make([]GroupCount, 0)

	for _, record := range records {
		v := value(record)
		if i, ok := index[v]; ok {
			groups[i].Count++

			continue
		}

		index[v] = len(groups)
		groups = append(groups, GroupCount{Value: v, Count: 1})
	}

	return groups
}

// CountByCounty groups records by county. Records without a county are
// grouped under UnknownCounty.
func CountByCounty(records []*entity.PatientRecord) []GroupCount {
	return CountBy(records, func(r *entity.PatientRecord) string {
		if r.County == "" {
			return UnknownCounty
		}

		return r.County
	})
}

// CountByGender groups records by gender. An absent gender stays its literal
// empty value rather than being relabeled.
func CountByGender(records []*entity.PatientRecord) []GroupCount {
	return CountBy(records, func(r *entity.PatientRecord) string {
		return string(r.Gender)
	})
}

// TopN returns the n largest groups in descending count order. Ties keep
// their first-encountered order: the sort is stable and compares counts only.
func TopN(groups []GroupCount, n int) []GroupCount {
	ordered := make([]GroupCount, len(groups))
	copy(ordered, groups)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Count > ordered[j].Count
	})

	if n < len(ordered) {
		ordered = ordered[:n]
	}

	return ordered
}

// TotalCount counts records.
func TotalCount(records []*entity.PatientRecord) int {
	return len(records)
}

// DistinctValues counts distinct values of the value function over records,
// including the empty value when present.
func DistinctValues(records []*entity.PatientRecord, value func(*entity.PatientRecord) string) int {
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		seen[value(record)] = struct{}{}
	}

	return len(seen)
}

// DistinctCounties counts the distinct raw county values over records.
func DistinctCounties(records []*entity.PatientRecord) int {
	return DistinctValues(records, func(r *entity.PatientRecord) string {
		return r.County
	})
}
