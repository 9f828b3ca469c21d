package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	serviceRepo "trimly/database/repository/service"
	"trimly/models"
	catalogSvc "trimly/services/catalog"

	"github.com/gin-gonic/gin"
)

// stubCatalog records the filter passed to SearchServices; every other
// Catalog method panics via the embedded nil interface.
type stubCatalog struct {
	catalogSvc.Catalog
	gotFilter serviceRepo.SearchFilter
}

func (s *stubCatalog) SearchServices(ctx context.Context, filter serviceRepo.SearchFilter) ([]models.RatedService, error) {
	s.gotFilter = filter
	return []models.RatedService{}, nil
}

func TestSearchServicesHandlerQueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubCatalog{}
	router := gin.New()
	router.GET("/api/services/search", SearchServicesHandler(stub))

	req := httptest.NewRequest(http.MethodGet, "/api/services/search?term=fade&categoryId=cat-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if stub.gotFilter.Term != "fade" {
		t.Errorf("term = %q, want %q", stub.gotFilter.Term, "fade")
	}
	if stub.gotFilter.CategoryID != "cat-1" {
		t.Errorf("categoryId = %q, want %q", stub.gotFilter.CategoryID, "cat-1")
	}
}
