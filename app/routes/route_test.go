package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-furniture/app/handlers"
	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/models/migrations"
	"github.com/Rakhulsr/go-furniture/app/repositories"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/Rakhulsr/go-furniture/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	ctx := context.Background()
	catalogRepo := repositories.NewCatalogRepository(db)
	configurationRepo := repositories.NewConfigurationRepository(db)

	require.NoError(t, catalogRepo.UpsertShapes(ctx, []models.TableShape{{Meta: models.Meta{ID: "tableShape-rectangular"}, Name: "Rectangular",
		Slug: models.NewSlug("rectangular"), AreaMultiplier: 1, IsActive: true, BasePriceRange: &models.PriceRange{Min: 200, Max: 1000}}}))
	require.NoError(t, catalogRepo.UpsertMaterials(ctx, []models.TableMaterial{{Meta: models.Meta{ID: "tableMaterial-oak"}, Name: "Oak",
		Slug: models.NewSlug("oak"), PriceMultiplier: 1.5, IsActive: true}}))
	require.NoError(t, catalogRepo.UpsertSizes(ctx, []models.TableSize{{Meta: models.Meta{ID: "tableSize-medium"}, Name: "Medium",
		Slug: models.NewSlug("medium"), PriceMultiplier: 1.7, IsActive: true, Dimensions: models.Dimensions{Length: 180, Width: 90, Height: 75}}}))
	require.NoError(t, catalogRepo.UpsertQualities(ctx, []models.TableQuality{{Meta: models.Meta{ID: "tableQuality-character"}, Name: "Character",
		Slug: models.NewSlug("character"), Grade: models.GradeCharacter, QualityAdjustment: 20, PriceDirection: models.DirectionAdd, IsActive: true}}))
	require.NoError(t, configurationRepo.Upsert(ctx, []models.TableConfiguration{{
		Meta: models.Meta{ID: "tableConfiguration-oak-dining"}, Name: "Oak dining", Slug: models.NewSlug("oak-dining"),
		Shape: models.NewReference("tableShape-rectangular"), Material: models.NewReference("tableMaterial-oak"),
		Size: models.NewReference("tableSize-medium"), Quality: models.NewReference("tableQuality-character"),
		AdditionalOptions: []models.AdditionalOption{{Name: "Leaf", PriceAdjustment: 50}, {Name: "Oil", PriceAdjustment: 30}},
		CalculatedPrice:   1916, LeadTime: 21, IsAvailable: true,
	}}))

	pricing := services.NewPricingService(catalogRepo, helpers.NewValidator())
	h := handlers.NewConfigurationHandler(configurationRepo, catalogRepo, pricing, renderer.New(false), zap.NewNop())
	return NewRouter(h, zap.NewNop())
}

func TestRouter(t *testing.T) {
	router := newTestRouter(t)

	testCases := []struct {
		method, path, body string
		expectedStatusCode int
		contains           string
	}{
		{http.MethodGet, "/healthz", "", http.StatusOK, `"ok"`},
		{http.MethodGet, "/api/catalog", "", http.StatusOK, `"Rectangular"`},
		{http.MethodGet, "/api/configurations", "", http.StatusOK, `"oak-dining"`},
		{http.MethodGet, "/api/configurations/oak-dining", "", http.StatusOK, `"calculated":1916`},
		{http.MethodGet, "/api/configurations/missing", "", http.StatusNotFound, "not found"},
		{http.MethodPost, "/api/quote", `{"shape":"tableShape-rectangular","material":"tableMaterial-oak","size":"tableSize-medium","quality":"tableQuality-character"}`,
			http.StatusOK, `"effective":1836`},
		{http.MethodGet, "/api/quote", "", http.StatusMethodNotAllowed, ""},
		{http.MethodPost, "/api/catalog", "", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/api/unknown", "", http.StatusNotFound, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body)))

			assert.Equal(t, tc.expectedStatusCode, rec.Code, rec.Body.String())
			if tc.contains != "" {
				assert.Contains(t, rec.Body.String(), tc.contains)
			}
		})
	}
}

func TestRouterDetailOmitsAbsentCustomDimensions(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/configurations/oak-dining", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "customDimensions")
}

func TestRouterListShape(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/configurations?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.ListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.EqualValues(t, 1, resp.Total)
	assert.Equal(t, 5, resp.Limit)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "€1.916,00", resp.Items[0].Display)
}
