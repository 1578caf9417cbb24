package router

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"afya/config"
	"afya/internal/delivery/http/middleware"
	"afya/internal/delivery/http/router/handler"
	"afya/internal/delivery/http/validator"
	"afya/internal/domain/store"
	"afya/internal/infra/cache"
	"afya/internal/infra/persistence"
	"afya/internal/infra/persistence/memory"
	"afya/internal/usecase/impl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-access-secret"

type routerFixture struct {
	echo  *echo.Echo
	store *memory.Store
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret
	cfg.Dashboard.TopCounties = 10

	st := memory.NewStore()
	qc := cache.NewMemoryQueryCache(logger)
	patientRepo := persistence.NewPatientRepository(st)
	staffRepo := persistence.NewStaffRepository(st)

	authzUC := impl.NewAuthzService(staffRepo, qc, logger)
	patientUC := impl.NewPatientService(patientRepo, qc, logger)
	adminUC := impl.NewAdminService(staffRepo, authzUC, qc, logger)
	dashboardUC := impl.NewDashboardService(patientRepo, qc, cfg, logger)

	e := echo.New()
	e.Validator = validator.New()
	errorMiddleware := middleware.NewErrorMiddleware(logger)
	e.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	r := NewRouter(RouterParams{
		PatientHandler:   handler.NewPatientHandler(patientUC),
		AdminHandler:     handler.NewAdminHandler(adminUC),
		DashboardHandler: handler.NewDashboardHandler(dashboardUC),
		AccountHandler:   handler.NewAccountHandler(authzUC),
		AuthMiddleware:   middleware.NewAuthMiddleware(authzUC, cfg),
	})
	r.RegisterRoutes(e)

	return &routerFixture{echo: e, store: st}
}

func (f *routerFixture) seedAdmin() uuid.UUID {
	id := uuid.New()
	f.store.Seed(store.CollectionUserRoles, store.Row{"user_id": id, "role": "admin"})

	return id
}

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return signed
}

func (f *routerFixture) request(t *testing.T, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	return rec
}

const validPatientBody = `{
	"patient_id": "PT-001",
	"full_name": "Amina Wanjiru",
	"date_of_birth": "1990-01-01",
	"gender": "Female",
	"county": "Nairobi"
}`

func TestRoutesRequireAuthentication(t *testing.T) {
	f := newRouterFixture(t)

	for _, target := range []string{"/patients", "/dashboard/summary", "/admin/users", "/account/capabilities"} {
		rec := f.request(t, http.MethodGet, target, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
	}
}

func TestHealthIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.request(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRejectsForgedToken(t *testing.T) {
	f := newRouterFixture(t)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forged, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	rec := f.request(t, http.MethodGet, "/patients", forged, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPatientLifecycleOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	token := signToken(t, uuid.New())

	rec := f.request(t, http.MethodPost, "/patients", token, validPatientBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Data struct {
			ID          string `json:"id"`
			DateOfBirth string `json:"date_of_birth"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "1990-01-01", created.Data.DateOfBirth)

	rec = f.request(t, http.MethodGet, "/patients?search=amina", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amina Wanjiru")

	rec = f.request(t, http.MethodGet, "/patients/"+created.Data.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodDelete, "/patients/"+created.Data.ID, token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(t, http.MethodGet, "/patients/"+created.Data.ID, token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePatientValidationOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	token := signToken(t, uuid.New())

	body := strings.Replace(validPatientBody, "Female", "female", 1)
	rec := f.request(t, http.MethodPost, "/patients", token, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_FAILED")
	assert.Contains(t, rec.Body.String(), "gender")
}

func TestAdminRoutesAreGated(t *testing.T) {
	f := newRouterFixture(t)
	workerToken := signToken(t, uuid.New())

	rec := f.request(t, http.MethodGet, "/admin/users", workerToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "ACCESS_DENIED")

	adminToken := signToken(t, f.seedAdmin())
	rec = f.request(t, http.MethodGet, "/admin/users", adminToken, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetAdminOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	adminToken := signToken(t, f.seedAdmin())
	target := uuid.New()
	targetToken := signToken(t, target)

	rec := f.request(t, http.MethodPut, "/admin/users/"+target.String()+"/admin-role", adminToken, `{"is_admin": true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = f.request(t, http.MethodGet, "/account/capabilities", targetToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_admin":true`)
}

func TestDashboardSummaryOverHTTP(t *testing.T) {
	f := newRouterFixture(t)
	token := signToken(t, uuid.New())

	rec := f.request(t, http.MethodPost, "/patients", token, validPatientBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(t, http.MethodGet, "/dashboard/summary", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_patients":1`)

	rec = f.request(t, http.MethodGet, "/dashboard/counties", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nairobi")
}
