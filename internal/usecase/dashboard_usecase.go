package usecase

import (
	"context"

	"afya/internal/domain/stats"
)

// DashboardUsecase defines the interface for the dashboard summary.
type DashboardUsecase interface {
	// Summary aggregates the patient collection into the dashboard figures,
	// served from the query cache when warm.
	Summary(ctx context.Context) (*DashboardSummary, error)

	// Counties returns the distinct counties present across patient records,
	// for populating search filters.
	Counties(ctx context.Context) ([]string, error)
}

// DashboardSummary is the aggregated view of the patient collection.
type DashboardSummary struct {
	TotalPatients   int                `json:"total_patients"`
	CountiesCovered int                `json:"counties_covered"`
	ByCounty        []stats.GroupCount `json:"by_county"`
	ByGender        []stats.GroupCount `json:"by_gender"`
}
