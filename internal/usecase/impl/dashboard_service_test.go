package impl

import (
	"context"
	"testing"

	"afya/config"
	"afya/internal/domain/stats"
	"afya/internal/domain/store"
	"afya/internal/infra/cache"
	"afya/internal/infra/persistence"
	"afya/internal/infra/persistence/memory"
	"afya/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	store     *memory.Store
	patients  usecase.PatientUsecase
	dashboard usecase.DashboardUsecase
}

func newDashboardFixture(topCounties int) *dashboardFixture {
	st := memory.NewStore()
	qc := cache.NewMemoryQueryCache(discardLogger())
	patientRepo := persistence.NewPatientRepository(st)

	cfg := &config.Config{}
	cfg.Dashboard.TopCounties = topCounties

	return &dashboardFixture{
		store:     st,
		patients:  NewPatientService(patientRepo, qc, discardLogger()),
		dashboard: NewDashboardService(patientRepo, qc, cfg, discardLogger()),
	}
}

func (f *dashboardFixture) seedPatient(county, gender string) {
	f.store.Seed(store.CollectionPatients, store.Row{
		"id":         uuid.New(),
		"patient_id": "PT-" + uuid.NewString()[:8],
		"full_name":  "Test Patient",
		"gender":     gender,
		"county":     county,
		"created_by": uuid.New(),
	})
}

func TestDashboardSummary(t *testing.T) {
	f := newDashboardFixture(10)

	f.seedPatient("Nairobi", "Female")
	f.seedPatient("Nairobi", "Male")
	f.seedPatient("Kisumu", "Female")
	f.seedPatient("", "")

	summary, err := f.dashboard.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, summary.TotalPatients)
	// Nairobi, Kisumu and the blank value are three distinct counties.
	assert.Equal(t, 3, summary.CountiesCovered)

	counties := make(map[string]int)
	for _, group := range summary.ByCounty {
		counties[group.Value] = group.Count
	}
	assert.Equal(t, 2, counties["Nairobi"])
	assert.Equal(t, 1, counties["Kisumu"])
	// A missing county is grouped under the Unknown label.
	assert.Equal(t, 1, counties[stats.UnknownCounty])

	genders := make(map[string]int)
	for _, group := range summary.ByGender {
		genders[group.Value] = group.Count
	}
	assert.Equal(t, 2, genders["Female"])
	assert.Equal(t, 1, genders["Male"])
	// A missing gender stays its literal blank value.
	assert.Equal(t, 1, genders[""])
}

func TestDashboardSummaryTopCounties(t *testing.T) {
	f := newDashboardFixture(2)

	f.seedPatient("Nairobi", "Female")
	f.seedPatient("Nairobi", "Female")
	f.seedPatient("Nairobi", "Female")
	f.seedPatient("Kisumu", "Male")
	f.seedPatient("Kisumu", "Male")
	f.seedPatient("Nakuru", "Other")

	summary, err := f.dashboard.Summary(context.Background())
	require.NoError(t, err)

	require.Len(t, summary.ByCounty, 2)
	assert.Equal(t, "Nairobi", summary.ByCounty[0].Value)
	assert.Equal(t, 3, summary.ByCounty[0].Count)
	assert.Equal(t, "Kisumu", summary.ByCounty[1].Value)
}

func TestDashboardSummaryCachedUntilPatientMutation(t *testing.T) {
	f := newDashboardFixture(10)

	summary, err := f.dashboard.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalPatients)

	// A mutation through the patient service invalidates the figures.
	_, err = f.patients.CreatePatient(context.Background(), uuid.New(), validPatientInput())
	require.NoError(t, err)

	summary, err = f.dashboard.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.TotalPatients)
}

func TestDashboardCounties(t *testing.T) {
	f := newDashboardFixture(10)

	f.seedPatient("Nakuru", "Female")
	f.seedPatient("Kisumu", "Male")
	f.seedPatient("Nakuru", "Female")
	f.seedPatient("", "Other")

	counties, err := f.dashboard.Counties(context.Background())
	require.NoError(t, err)

	// Distinct raw values, alphabetically, blank included.
	assert.Equal(t, []string{"", "Kisumu", "Nakuru"}, counties)
}
