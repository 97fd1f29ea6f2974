package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faredeck/faredeck/internal/api"
	"github.com/faredeck/faredeck/internal/api/models"
	"github.com/faredeck/faredeck/internal/auth"
	"github.com/faredeck/faredeck/internal/compare"
	"github.com/faredeck/faredeck/internal/fare"
	"github.com/faredeck/faredeck/internal/featureflags"
	"github.com/faredeck/faredeck/internal/routes"
	"github.com/faredeck/faredeck/internal/search"
	"github.com/faredeck/faredeck/internal/user"
)

const testSigningKey = "test-secret-key-for-testing-only"

// testAuthService creates an auth service backed by in-memory repositories.
func testAuthService() *auth.Service {
	return auth.NewService(auth.ServiceConfig{
		JWTService:  testJWTService(),
		UserRepo:    auth.NewInMemoryUserRepository(),
		RefreshRepo: auth.NewInMemoryRefreshTokenRepository(),
	})
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SigningKey: testSigningKey,
		Issuer:     "https://api.faredeck.in",
		Audience:   "faredeck-api",
	})
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.New(io.Discard)
	engine := fare.NewEngine(fare.EngineConfig{
		Clock: func() time.Time {
			return time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
		},
	})
	flags := featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewInMemoryRepository(),
		Logger:     logger,
	})
	searchService := search.NewService(search.NewInMemoryRepository(), logger)
	compareService := compare.NewService(compare.ServiceConfig{
		Engine:   engine,
		Flags:    flags,
		Searches: searchService,
		Logger:   logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:            "test",
		BuildTime:          "2025-01-01T00:00:00Z",
		Logger:             logger,
		AuthService:        testAuthService(),
		UserService:        user.NewService(user.NewInMemoryRepository()),
		FeatureFlagService: flags,
		CompareService:     compareService,
		FareEngine:         engine,
		SearchService:      searchService,
		RouteService:       routes.NewService(routes.NewInMemoryRepository()),
	})
}

// signup creates an account through the API and returns a valid access token.
func signup(t *testing.T, router http.Handler, email string) string {
	t.Helper()

	body, _ := json.Marshal(auth.SignupRequest{
		Email:       email,
		Password:    "hunter2hunter2",
		DisplayName: "Test Rider",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var tokens auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestRouter_HealthCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	var health models.Health
	err := json.Unmarshal(w.Body.Bytes(), &health)
	require.NoError(t, err)

	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_ReadinessCheck(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/ready", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_SystemStatus_RequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/status", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SignupAndLogin(t *testing.T) {
	router := newTestRouter(t)
	_ = signup(t, router, "rider@example.in")

	body, _ := json.Marshal(auth.LoginRequest{
		Email:    "rider@example.in",
		Password: "hunter2hunter2",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var tokens auth.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tokens))
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestRouter_Signup_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t)
	_ = signup(t, router, "rider@example.in")

	body, _ := json.Marshal(auth.SignupRequest{
		Email:    "rider@example.in",
		Password: "hunter2hunter2",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestRouter_Login_WrongPassword(t *testing.T) {
	router := newTestRouter(t)
	_ = signup(t, router, "rider@example.in")

	body, _ := json.Marshal(auth.LoginRequest{
		Email:    "rider@example.in",
		Password: "not-the-password",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CompareFares_Anonymous(t *testing.T) {
	router := newTestRouter(t)

	distanceKm := 148.0
	body, _ := json.Marshal(models.CompareRequest{
		Pickup:      "Mumbai",
		Destination: "Pune",
		DistanceKm:  &distanceKm,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/fares:compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result compare.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, 148.0, result.DistanceKm)
	assert.Equal(t, "request", result.DistanceSource)
	require.NotEmpty(t, result.Options)
	assert.Equal(t, 0, result.Options[0].Savings)
}

func TestRouter_CompareFares_RecordsHistoryWhenAuthenticated(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "rider@example.in")

	distanceKm := 12.0
	body, _ := json.Marshal(models.CompareRequest{
		Pickup:      "Delhi",
		Destination: "Noida",
		DistanceKm:  &distanceKm,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/fares:compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/v1/me/searches", http.NoBody)
	listReq.Header.Set("Authorization", "Bearer "+token)
	listW := httptest.NewRecorder()
	router.ServeHTTP(listW, listReq)
	require.Equal(t, http.StatusOK, listW.Code)

	var searches models.PagedSearches
	require.NoError(t, json.Unmarshal(listW.Body.Bytes(), &searches))
	require.Len(t, searches.Items, 1)
	assert.Equal(t, "Delhi", searches.Items[0].Pickup)
}

func TestRouter_CompareFares_ValidationError(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(models.CompareRequest{Pickup: "Mumbai"})
	req := httptest.NewRequest(http.MethodPost, "/v1/fares:compare", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.TraceID)
}

func TestRouter_SurgeStatus(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/fares/surge", http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var surge fare.SurgeStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &surge))
	// 14:00 in the test clock: no surge window active.
	assert.False(t, surge.Active)
	assert.Equal(t, 1.0, surge.Multiplier)
}

func TestRouter_BookingLink(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(models.BookingLinkRequest{
		Service:     "uber",
		Type:        "UberGo",
		Pickup:      "Mumbai",
		Destination: "Pune",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/fares/booking-link", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var link models.BookingLink
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &link))
	assert.Contains(t, link.URL, "uber.com")
}

func TestRouter_BookingLink_UnknownProvider(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(models.BookingLinkRequest{
		Service:     "Lyft",
		Pickup:      "Mumbai",
		Destination: "Pune",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/fares/booking-link", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_GetMe(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "rider@example.in")

	req := httptest.NewRequest(http.MethodGet, "/v1/me", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var me models.Me
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.NotEmpty(t, me.UserID)
	assert.Equal(t, "rider@example.in", me.Email)
	assert.Equal(t, "Test Rider", me.DisplayName)
}

func TestRouter_UpdateMe(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "rider@example.in")

	homeCity := "Mumbai"
	provider := "Rapido"
	body, _ := json.Marshal(models.MeInput{
		HomeCity:          &homeCity,
		PreferredProvider: &provider,
	})
	req := httptest.NewRequest(http.MethodPut, "/v1/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var me models.Me
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "Mumbai", me.HomeCity)
	assert.Equal(t, "Rapido", me.PreferredProvider)
}

func TestRouter_UpdateMe_UnknownProvider(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "rider@example.in")

	provider := "Lyft"
	body, _ := json.Marshal(models.MeInput{PreferredProvider: &provider})
	req := httptest.NewRequest(http.MethodPut, "/v1/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_SavedRoutes_CRUD(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "rider@example.in")

	// Create
	body, _ := json.Marshal(models.RouteCreateRequest{
		Label:       "Office run",
		Pickup:      "Andheri East",
		Destination: "BKC, Mumbai",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/me/routes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("Location"))

	var created models.SavedRoute
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// Get
	getReq := httptest.NewRequest(http.MethodGet, "/v1/me/routes/"+created.ID, http.NoBody)
	getReq.Header.Set("Authorization", "Bearer "+token)
	getW := httptest.NewRecorder()
	router.ServeHTTP(getW, getReq)
	assert.Equal(t, http.StatusOK, getW.Code)

	// Update
	label := "Morning office run"
	updBody, _ := json.Marshal(models.RouteUpdateRequest{Label: &label})
	updReq := httptest.NewRequest(http.MethodPut, "/v1/me/routes/"+created.ID, bytes.NewReader(updBody))
	updReq.Header.Set("Content-Type", "application/json")
	updReq.Header.Set("Authorization", "Bearer "+token)
	updW := httptest.NewRecorder()
	router.ServeHTTP(updW, updReq)
	require.Equal(t, http.StatusOK, updW.Code)

	var updated models.SavedRoute
	require.NoError(t, json.Unmarshal(updW.Body.Bytes(), &updated))
	assert.Equal(t, "Morning office run", updated.Label)

	// Delete
	delReq := httptest.NewRequest(http.MethodDelete, "/v1/me/routes/"+created.ID, http.NoBody)
	delReq.Header.Set("Authorization", "Bearer "+token)
	delW := httptest.NewRecorder()
	router.ServeHTTP(delW, delReq)
	assert.Equal(t, http.StatusNoContent, delW.Code)

	// Gone
	goneReq := httptest.NewRequest(http.MethodGet, "/v1/me/routes/"+created.ID, http.NoBody)
	goneReq.Header.Set("Authorization", "Bearer "+token)
	goneW := httptest.NewRecorder()
	router.ServeHTTP(goneW, goneReq)
	assert.Equal(t, http.StatusNotFound, goneW.Code)
}

func TestRouter_Metadata(t *testing.T) {
	router := newTestRouter(t)

	t.Run("cities", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/metadata/cities", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var cities models.CityList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cities))
		assert.NotEmpty(t, cities.Items)
	})

	t.Run("providers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/metadata/providers", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var providers models.ProviderList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &providers))
		assert.Len(t, providers.Items, 4)
	})

	t.Run("popular routes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/metadata/popular-routes", http.NoBody)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var popular models.PopularRouteList
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &popular))
		assert.NotEmpty(t, popular.Items)
	})
}

func TestRouter_AdminFeatureFlags(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "admin@example.in")

	body := bytes.NewReader([]byte(`{"flags":{"disable_provider_uber":true}}`))
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/feature-flags", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)

	// A disabled provider no longer appears in comparison output.
	distanceKm := 10.0
	cmpBody, _ := json.Marshal(models.CompareRequest{
		Pickup:      "Mumbai",
		Destination: "Thane",
		DistanceKm:  &distanceKm,
	})
	cmpReq := httptest.NewRequest(http.MethodPost, "/v1/fares:compare", bytes.NewReader(cmpBody))
	cmpReq.Header.Set("Content-Type", "application/json")
	cmpW := httptest.NewRecorder()
	router.ServeHTTP(cmpW, cmpReq)
	require.Equal(t, http.StatusOK, cmpW.Code)

	var result compare.Result
	require.NoError(t, json.Unmarshal(cmpW.Body.Bytes(), &result))
	require.NotEmpty(t, result.Options)
	for _, opt := range result.Options {
		assert.NotEqual(t, fare.ProviderUber, opt.Service)
	}
}

func TestRouter_RequestID_Generated(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	requestID := w.Header().Get("X-Request-Id")
	assert.NotEmpty(t, requestID)
	assert.Contains(t, requestID, "req_")
}

func TestRouter_RequestID_Preserved(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	req.Header.Set("X-Request-Id", "custom_request_id")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "custom_request_id", w.Header().Get("X-Request-Id"))
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nonexistent", http.NoBody)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
