package impl

import (
	"context"
	"log/slog"
	"sort"

	"afya/config"
	"afya/internal/domain/entity"
	"afya/internal/domain/repository"
	"afya/internal/domain/service"
	"afya/internal/domain/stats"
	"afya/internal/usecase"
)

// dashboardService implements the DashboardUsecase interface.
type dashboardService struct {
	patientRepo repository.PatientRepository
	cache       service.QueryCache
	topCounties int
	logger      *slog.Logger
}

// NewDashboardService is the constructor for dashboardService.
func NewDashboardService(
	patientRepo repository.PatientRepository,
	cache service.QueryCache,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.DashboardUsecase {
	return &dashboardService{
		patientRepo: patientRepo,
		cache:       cache,
		topCounties: cfg.Dashboard.TopCounties,
		logger:      logger,
	}
}

// Summary aggregates the patient collection into the dashboard figures.
func (srv *dashboardService) Summary(ctx context.Context) (*usecase.DashboardSummary, error) {
	key := service.NewCacheKey(service.OpStats)

	return service.Fetch(ctx, srv.cache, key, func(ctx context.Context) (*usecase.DashboardSummary, error) {
		records, err := srv.patientRepo.List(ctx, repository.PatientFilter{})
		if err != nil {
			return nil, err
		}

		return &usecase.DashboardSummary{
			TotalPatients:   stats.TotalCount(records),
			CountiesCovered: stats.DistinctCounties(records),
			ByCounty:        stats.TopN(stats.CountByCounty(records), srv.topCounties),
			ByGender:        stats.CountByGender(records),
		}, nil
	})
}

// Counties returns the distinct raw county values across patient records,
// sorted alphabetically. A blank county stays a distinct blank value.
func (srv *dashboardService) Counties(ctx context.Context) ([]string, error) {
	key := service.NewCacheKey(service.OpStats, "counties")

	return service.Fetch(ctx, srv.cache, key, func(ctx context.Context) ([]string, error) {
		records, err := srv.patientRepo.List(ctx, repository.PatientFilter{})
		if err != nil {
			return nil, err
		}

		groups := stats.CountBy(records, func(r *entity.PatientRecord) string {
			return r.County
		})

		counties := make([]string, len(groups))
		for i, group := range groups {
			counties[i] = group.Value
		}
		sort.Strings(counties)

		return counties, nil
	})
}
