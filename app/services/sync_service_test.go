package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/go-furniture/app/helpers"
	"github.com/Rakhulsr/go-furniture/app/models"
	"github.com/Rakhulsr/go-furniture/app/models/migrations"
	"github.com/Rakhulsr/go-furniture/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newQueryServer answers document queries with the fixture registered for
// the $type parameter, or an empty result.
func newQueryServer(t *testing.T, results map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var docType string
		assert.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("$type")), &docType))

		result, ok := results[docType]
		if !ok {
			result = []any{}
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(map[string]any{"result": result}))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newMirror(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func TestSyncService(t *testing.T) {
	catalog := testCatalog()
	cfg := testConfiguration()
	cfg.IsAvailable = true

	srv := newQueryServer(t, map[string]any{
		models.TypeShape:         catalog.Shapes,
		models.TypeMaterial:      catalog.Materials,
		models.TypeSize:          catalog.Sizes,
		models.TypeQuality:       catalog.Qualities,
		models.TypeConfiguration: []models.TableConfiguration{*cfg},
	})

	db := newMirror(t)
	catalogRepo := repositories.NewCatalogRepository(db)
	configurationRepo := repositories.NewConfigurationRepository(db)
	svc := NewSyncService(NewCMSClient(testCMSConfig(srv.URL)), catalogRepo, configurationRepo, zap.NewNop())

	report, err := svc.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncReport{Shapes: 2, Materials: 1, Sizes: 1, Qualities: 2, Configurations: 1}, report)

	// running twice must not fail on existing rows
	_, err = svc.Sync(context.Background())
	require.NoError(t, err)

	shapes, err := catalogRepo.ActiveShapes(context.Background())
	require.NoError(t, err)
	require.Len(t, shapes, 1)
	assert.Equal(t, "Rectangular", shapes[0].Name)

	stored, err := configurationRepo.GetBySlug(context.Background(), "oak-dining-table")
	require.NoError(t, err)

	// the mirror prices the same way the in-memory catalog does
	got, err := NewPricingService(catalogRepo, helpers.NewValidator()).PriceConfiguration(context.Background(), stored)
	require.NoError(t, err)
	assert.Equal(t, 1836.0, StoredPrice(got))
}

func TestSyncServiceQueryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"unauthorized"}`)
	}))
	defer srv.Close()

	db := newMirror(t)
	svc := NewSyncService(NewCMSClient(testCMSConfig(srv.URL)), repositories.NewCatalogRepository(db), repositories.NewConfigurationRepository(db), zap.NewNop())

	_, err := svc.Sync(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestProductPaths(t *testing.T) {
	srv := newQueryServer(t, map[string]any{
		models.TypeProduct: []string{"oak-dining-table", "", "walnut-desk"},
	})

	paths, err := ProductPaths(context.Background(), NewCMSClient(testCMSConfig(srv.URL)))
	require.NoError(t, err)
	assert.Equal(t, []string{"oak-dining-table", "walnut-desk"}, paths)
}
