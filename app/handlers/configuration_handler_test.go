package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/services"
	"github.com/Rakhulsr/go-furniture/app/utils/calc"
	"github.com/Rakhulsr/go-furniture/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// --- Mocks ---

type MockConfigurationRepo struct {
	Source     []models.TableConfiguration
	Err        error
	lastLimit  int
	lastOffset int
	lastSlug   string
}

func (m *MockConfigurationRepo) GetAvailablePaginated(_ context.Context, limit, offset int) ([]models.TableConfiguration, int64, error) {
	m.lastLimit, m.lastOffset = limit, offset
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var available []models.TableConfiguration
	for _, c := range m.Source {
		if c.IsAvailable {
			available = append(available, c)
		}
	}
	total := int64(len(available))
	if offset > len(available) {
		offset = len(available)
	}
	end := offset + limit
	if end > len(available) {
		end = len(available)
	}
	return available[offset:end], total, nil
}

func (m *MockConfigurationRepo) GetBySlug(_ context.Context, slug string) (*models.TableConfiguration, error) {
	m.lastSlug = slug
	for _, c := range m.Source {
		if c.Slug.Current == slug {
			return &c, nil
		}
	}
	return nil, models.ErrDocumentNotFound
}

func (m *MockConfigurationRepo) Upsert(context.Context, []models.TableConfiguration) error {
	return nil
}

// MockCatalogRepo serves the in-memory catalog as if it were the mirror.
type MockCatalogRepo struct {
	*services.Catalog
	Err error
}

func (m *MockCatalogRepo) ActiveShapes(context.Context) ([]models.TableShape, error) {
	return m.Active().Shapes, m.Err
}

func (m *MockCatalogRepo) ActiveMaterials(context.Context) ([]models.TableMaterial, error) {
	return m.Active().Materials, m.Err
}

func (m *MockCatalogRepo) ActiveSizes(context.Context) ([]models.TableSize, error) {
	return m.Active().Sizes, m.Err
}

func (m *MockCatalogRepo) ActiveQualities(context.Context) ([]models.TableQuality, error) {
	return m.Active().Qualities, m.Err
}

func (m *MockCatalogRepo) UpsertShapes(context.Context, []models.TableShape) error       { return nil }
func (m *MockCatalogRepo) UpsertMaterials(context.Context, []models.TableMaterial) error { return nil }
func (m *MockCatalogRepo) UpsertSizes(context.Context, []models.TableSize) error         { return nil }
func (m *MockCatalogRepo) UpsertQualities(context.Context, []models.TableQuality) error  { return nil }

// --- Fixtures ---

func fixtureCatalog() *services.Catalog {
	return &services.Catalog{
		Shapes: []models.TableShape{{Meta: models.Meta{ID: "tableShape-rectangular"}, Name: "Rectangular", Slug: models.NewSlug("rectangular"),
			AreaMultiplier: 1, IsActive: true, BasePriceRange: &models.PriceRange{Min: 200, Max: 1000}}},
		Materials: []models.TableMaterial{
			{Meta: models.Meta{ID: "tableMaterial-oak"}, Name: "Oak", Slug: models.NewSlug("oak"), PriceMultiplier: 1.5, IsActive: true},
			{Meta: models.Meta{ID: "tableMaterial-pine"}, Name: "Pine", Slug: models.NewSlug("pine"), PriceMultiplier: 1, IsActive: false},
		},
		Sizes: []models.TableSize{{Meta: models.Meta{ID: "tableSize-medium"}, Name: "Medium", Slug: models.NewSlug("medium"), PriceMultiplier: 1.7,
			IsActive: true, Dimensions: models.Dimensions{Length: 180, Width: 90, Height: 75}}},
		Qualities: []models.TableQuality{{Meta: models.Meta{ID: "tableQuality-character"}, Name: "Character", Slug: models.NewSlug("character"),
			Grade: models.GradeCharacter, QualityAdjustment: 20, PriceDirection: models.DirectionAdd, IsActive: true}},
	}
}

func fixtureConfigurations() []models.TableConfiguration {
	override := 1500.0
	base := func(id, name string, available bool) models.TableConfiguration {
		return models.TableConfiguration{
			Meta: models.Meta{ID: id}, Name: name, Slug: models.NewSlug(strings.ToLower(name)),
			Shape: models.NewReference("tableShape-rectangular"), Material: models.NewReference("tableMaterial-oak"),
			Size: models.NewReference("tableSize-medium"), Quality: models.NewReference("tableQuality-character"),
			CalculatedPrice: 1836, LeadTime: 21, IsAvailable: available,
		}
	}
	withOverride := base("c2", "Bravo", true)
	withOverride.PriceOverride = &override
	broken := base("c4", "Delta", true)
	broken.Material = models.NewReference("tableMaterial-teak")

	return []models.TableConfiguration{base("c1", "Alpha", true), withOverride, base("c3", "Charlie", false), broken}
}

func newTestHandler(configs *MockConfigurationRepo, catalog *MockCatalogRepo) *ConfigurationHandler {
	pricing := services.NewPricingService(catalog, helpers.NewValidator())
	return NewConfigurationHandler(configs, catalog, pricing, renderer.New(false), zap.NewNop())
}

// --- Tests ---

func TestHandleList(t *testing.T) {
	testCases := []struct {
		name               string
		query              string
		repo               *MockConfigurationRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, resp ListResponse, repo *MockConfigurationRepo)
	}{
		{
			name:               "Defaults",
			repo:               &MockConfigurationRepo{Source: fixtureConfigurations()},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp ListResponse, repo *MockConfigurationRepo) {
				assert.Equal(t, defaultLimit, repo.lastLimit)
				assert.EqualValues(t, 3, resp.Total)
				require.Len(t, resp.Items, 3)
				assert.Equal(t, 1836.0, resp.Items[0].Price)
				assert.Equal(t, "€1.836,00", resp.Items[0].Display)
				assert.Equal(t, 1500.0, resp.Items[1].Price, "override wins")
				assert.True(t, resp.Items[1].HasOverride)
			},
		},
		{
			name:               "Paginated",
			query:              "?limit=1&offset=1",
			repo:               &MockConfigurationRepo{Source: fixtureConfigurations()},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp ListResponse, repo *MockConfigurationRepo) {
				assert.Equal(t, 1, resp.Limit)
				assert.Equal(t, 1, resp.Offset)
				require.Len(t, resp.Items, 1)
				assert.Equal(t, "Bravo", resp.Items[0].Name)
			},
		},
		{
			name:               "Limit above maximum falls back to default",
			query:              "?limit=5000&offset=-3",
			repo:               &MockConfigurationRepo{Source: fixtureConfigurations()},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, resp ListResponse, repo *MockConfigurationRepo) {
				assert.Equal(t, defaultLimit, repo.lastLimit)
				assert.Equal(t, 0, repo.lastOffset)
			},
		},
		{
			name:               "Repository error",
			repo:               &MockConfigurationRepo{Err: errors.New("db down")},
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(tc.repo, &MockCatalogRepo{Catalog: fixtureCatalog()})
			rec := httptest.NewRecorder()
			h.List(rec, httptest.NewRequest(http.MethodGet, "/api/configurations"+tc.query, nil))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				var resp ListResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				tc.checkResponse(t, resp, tc.repo)
			}
		})
	}
}

func TestHandleDetail(t *testing.T) {
	repo := &MockConfigurationRepo{Source: fixtureConfigurations()}
	h := newTestHandler(repo, &MockCatalogRepo{Catalog: fixtureCatalog()})

	do := func(slug string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/configurations/"+slug, nil)
		req = mux.SetURLVars(req, map[string]string{"slug": slug})
		rec := httptest.NewRecorder()
		h.Detail(rec, req)
		return rec
	}

	t.Run("Priced with override", func(t *testing.T) {
		rec := do("bravo")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DetailResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "bravo", repo.lastSlug)
		require.NotNil(t, resp.Price)
		assert.Equal(t, 1530.0, resp.Price.Subtotal)
		assert.Equal(t, 306.0, resp.Price.QualityAdjustment)
		assert.Equal(t, 1836.0, resp.Price.Calculated)
		assert.Equal(t, 1500.0, resp.Price.Effective)
		assert.Equal(t, "€1.500,00", resp.Price.Display)
	})

	t.Run("Unpriceable falls back to stored price", func(t *testing.T) {
		rec := do("delta")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp DetailResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Nil(t, resp.Price)
		assert.Contains(t, resp.PriceError, "tableMaterial-teak")
		assert.Equal(t, 1836.0, resp.StoredPrice)
	})

	t.Run("Not found", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, do("nope").Code)
	})
}

func TestHandleQuote(t *testing.T) {
	testCases := []struct {
		name               string
		body               string
		expectedStatusCode int
		checkResponse      func(t *testing.T, body []byte)
	}{
		{
			name: "Priced with options",
			body: `{"shape":"tableShape-rectangular","material":"tableMaterial-oak","size":"tableSize-medium","quality":"tableQuality-character",
				"options":[{"name":"Leaf","priceAdjustment":50},{"name":"Oil","priceAdjustment":30}]}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var view PriceView
				require.NoError(t, json.Unmarshal(body, &view))
				assert.Equal(t, 1916.0, view.Effective)
				assert.Equal(t, 80.0, view.OptionsTotal)
			},
		},
		{
			name: "Custom dimensions surcharge",
			body: `{"shape":"tableShape-rectangular","material":"tableMaterial-oak","size":"tableSize-medium","quality":"tableQuality-character",
				"customDimensions":{"isCustom":true,"length":200}}`,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, body []byte) {
				var view PriceView
				require.NoError(t, json.Unmarshal(body, &view))
				assert.Equal(t, 229.5, view.CustomSurcharge)
				assert.Equal(t, 2111.4, view.Calculated)
			},
		},
		{
			name:               "Missing references",
			body:               `{"shape":"tableShape-rectangular","material":"tableMaterial-oak"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "size, quality")
			},
		},
		{
			name: "Surcharge out of range",
			body: `{"shape":"tableShape-rectangular","material":"tableMaterial-oak","size":"tableSize-medium","quality":"tableQuality-character",
				"customDimensions":{"isCustom":true,"customPriceAdjustment":140}}`,
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				var resp errorResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Contains(t, resp.Fields, "customDimensions.customPriceAdjustment")
			},
		},
		{
			name:               "Unknown reference",
			body:               `{"shape":"tableShape-hexagon","material":"tableMaterial-oak","size":"tableSize-medium","quality":"tableQuality-character"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Malformed body",
			body:               `{"shape":`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Unknown field",
			body:               `{"colour":"red"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	h := newTestHandler(&MockConfigurationRepo{}, &MockCatalogRepo{Catalog: fixtureCatalog()})
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Quote(rec, httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(tc.body)))

			assert.Equal(t, tc.expectedStatusCode, rec.Code, rec.Body.String())
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec.Body.Bytes())
			}
		})
	}
}

func TestHandleQuoteZeroPricedShape(t *testing.T) {
	catalog := fixtureCatalog()
	catalog.Shapes[0].BasePriceRange = &models.PriceRange{}

	h := newTestHandler(&MockConfigurationRepo{}, &MockCatalogRepo{Catalog: catalog})
	rec := httptest.NewRecorder()
	h.Quote(rec, httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(
		`{"shape":"tableShape-rectangular","material":"tableMaterial-oak","size":"tableSize-medium","quality":"tableQuality-character"}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "basePriceRange.max")
}

func TestIsClientError(t *testing.T) {
	assert.True(t, isClientError(fmt.Errorf("quote: %w", calc.ErrNonPositiveFactor)))
	assert.True(t, isClientError(calc.ErrNegativePrice))
	assert.False(t, isClientError(errors.New("connection refused")))
}

func TestHandleCatalog(t *testing.T) {
	h := newTestHandler(&MockConfigurationRepo{}, &MockCatalogRepo{Catalog: fixtureCatalog()})
	rec := httptest.NewRecorder()
	h.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CatalogResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Shapes, 1)
	require.Len(t, resp.Materials, 1, "inactive materials are hidden")
	assert.Equal(t, "Oak", resp.Materials[0].Name)

	failing := newTestHandler(&MockConfigurationRepo{}, &MockCatalogRepo{Catalog: fixtureCatalog(), Err: errors.New("db down")})
	rec = httptest.NewRecorder()
	failing.Catalog(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestHandleHealthz(t *testing.T) {
	h := newTestHandler(&MockConfigurationRepo{}, &MockCatalogRepo{Catalog: fixtureCatalog()})
	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
