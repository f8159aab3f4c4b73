package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/internal/catalog"
	"github.com/mstore-labs/pim-backend/internal/monitoring"
	"github.com/mstore-labs/pim-backend/internal/status"
	"github.com/mstore-labs/pim-backend/internal/variants"
	"github.com/mstore-labs/pim-backend/pkg/config"
	"github.com/mstore-labs/pim-backend/pkg/db/models"
	pkgerrors "github.com/mstore-labs/pim-backend/pkg/errors"
	"github.com/mstore-labs/pim-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubStatusService struct {
	report *status.Report
}

func (s *stubStatusService) ProductStatus(_ context.Context, productID uuid.UUID) (*status.Report, error) {
	if s.report == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	report := *s.report
	report.ProductID = productID
	return &report, nil
}

func (s *stubStatusService) ProductStatuses(ctx context.Context, ids []uuid.UUID) ([]*status.Report, error) {
	out := make([]*status.Report, 0, len(ids))
	for _, id := range ids {
		report, err := s.ProductStatus(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, report)
	}
	return out, nil
}

func (s *stubStatusService) Invalidate(context.Context, uuid.UUID) error { return nil }

type stubPolicyStore struct{}

func (stubPolicyStore) Load(context.Context) (monitoring.Policy, error) {
	return monitoring.DefaultPolicy(), nil
}

func (stubPolicyStore) Update(context.Context, monitoring.Policy) error { return nil }

type stubProductSource struct {
	known map[uuid.UUID]bool
}

func (s *stubProductSource) LoadGraph(_ context.Context, productID uuid.UUID) (*catalog.ProductGraph, error) {
	if !s.known[productID] {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &catalog.ProductGraph{Product: models.Product{ID: productID}}, nil
}

func (s *stubProductSource) ListProductIDs(context.Context) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(s.known))
	for id := range s.known {
		ids = append(ids, id)
	}
	return ids, nil
}

type stubVariantBackend struct {
	persisted []models.ProductVariant
}

func (s *stubVariantBackend) CreateVariant(_ context.Context, _ uuid.UUID, _ variants.Draft) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (s *stubVariantBackend) UpdateVariant(context.Context, uuid.UUID, variants.Patch) error {
	return nil
}

func (s *stubVariantBackend) DeleteVariant(context.Context, uuid.UUID) error { return nil }

func (s *stubVariantBackend) Variants(context.Context, uuid.UUID) ([]models.ProductVariant, error) {
	return s.persisted, nil
}

type stubShopVariantLoader struct{}

func (stubShopVariantLoader) Load(context.Context, uuid.UUID, uuid.UUID) ([]variants.ShopVariant, []models.ProductVariant, error) {
	return nil, nil, nil
}

func newTestRouter(t *testing.T, productID uuid.UUID) http.Handler {
	t.Helper()
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	return NewRouter(Deps{
		Cfg:      cfg,
		Logg:     logg,
		DBPinger: stubPinger{},
		StatusService: &stubStatusService{report: &status.Report{
			SKU:         "ABC-1",
			GeneratedAt: time.Now().UTC(),
		}},
		PolicyStore:    stubPolicyStore{},
		Products:       &stubProductSource{known: map[uuid.UUID]bool{productID: true}},
		Sessions:       variants.NewRegistry(time.Minute, logg),
		VariantBackend: &stubVariantBackend{},
		ShopVariants:   stubShopVariantLoader{},
	})
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestHealthRoutes(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	if w := doRequest(t, router, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("/healthz = %d", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, "/health/ready", ""); w.Code != http.StatusOK {
		t.Fatalf("/health/ready = %d", w.Code)
	}
}

func TestProductStatusRoute(t *testing.T) {
	productID := uuid.New()
	router := newTestRouter(t, productID)

	w := doRequest(t, router, http.MethodGet, "/api/v1/products/"+productID.String()+"/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status route = %d body=%s", w.Code, w.Body.String())
	}

	if w := doRequest(t, router, http.MethodGet, "/api/v1/products/not-a-uuid/status", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid id = %d, want 400", w.Code)
	}
}

func TestBatchStatusRoute(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	body := `{"product_ids":["` + uuid.NewString() + `","` + uuid.NewString() + `"]}`
	w := doRequest(t, router, http.MethodPost, "/api/v1/products/status", body)
	if w.Code != http.StatusOK {
		t.Fatalf("batch = %d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodPost, "/api/v1/products/status", `{"product_ids":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty batch = %d, want 400", w.Code)
	}

	w = doRequest(t, router, http.MethodPost, "/api/v1/products/status", `{"all":true}`)
	if w.Code != http.StatusOK {
		t.Fatalf("all-products audit = %d body=%s", w.Code, w.Body.String())
	}

	body = `{"all":true,"product_ids":["` + uuid.NewString() + `"]}`
	w = doRequest(t, router, http.MethodPost, "/api/v1/products/status", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("all plus ids = %d, want 400", w.Code)
	}
}

func TestMonitoringRoutes(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	w := doRequest(t, router, http.MethodGet, "/api/v1/settings/monitoring", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get policy = %d", w.Code)
	}
	var envelope struct {
		Data monitoring.Policy `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode policy: %v", err)
	}
	if len(envelope.Data.Fields) == 0 {
		t.Fatal("expected default policy fields")
	}
}

func TestVariantSessionLifecycle(t *testing.T) {
	productID := uuid.New()
	router := newTestRouter(t, productID)

	w := doRequest(t, router, http.MethodPost, "/api/v1/products/"+productID.String()+"/variant-sessions", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("open session = %d body=%s", w.Code, w.Body.String())
	}
	var opened struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&opened); err != nil {
		t.Fatalf("decode open response: %v", err)
	}
	sessionID := opened.Data["session_id"]
	if sessionID == "" {
		t.Fatal("expected a session id")
	}

	w = doRequest(t, router, http.MethodPost,
		"/api/v1/variant-sessions/"+sessionID+"/creates",
		`{"sku":"ABC-9","name":"Nine","position":1,"is_active":true}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("stage create = %d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/variant-sessions/"+sessionID+"/variants", "")
	if w.Code != http.StatusOK {
		t.Fatalf("merged view = %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "ABC-9") {
		t.Fatalf("staged create missing from merged view: %s", w.Body.String())
	}

	w = doRequest(t, router, http.MethodPost, "/api/v1/variant-sessions/"+sessionID+"/commit", "")
	if w.Code != http.StatusOK {
		t.Fatalf("commit = %d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodDelete, "/api/v1/variant-sessions/"+sessionID+"/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("discard = %d", w.Code)
	}
}

func TestStageCreateTrimsPaddedInput(t *testing.T) {
	productID := uuid.New()
	router := newTestRouter(t, productID)

	w := doRequest(t, router, http.MethodPost, "/api/v1/products/"+productID.String()+"/variant-sessions", "")
	var opened struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&opened); err != nil {
		t.Fatalf("decode open response: %v", err)
	}
	sessionID := opened.Data["session_id"]

	w = doRequest(t, router, http.MethodPost,
		"/api/v1/variant-sessions/"+sessionID+"/creates",
		`{"sku":"  PAD-1  ","name":"  Padded  "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("stage create = %d body=%s", w.Code, w.Body.String())
	}

	w = doRequest(t, router, http.MethodGet, "/api/v1/variant-sessions/"+sessionID+"/variants", "")
	if !strings.Contains(w.Body.String(), `"PAD-1"`) || !strings.Contains(w.Body.String(), `"Padded"`) {
		t.Fatalf("expected trimmed values in the merged view: %s", w.Body.String())
	}
}

func TestStageUpdateUnknownVariantIs404(t *testing.T) {
	productID := uuid.New()
	router := newTestRouter(t, productID)

	w := doRequest(t, router, http.MethodPost, "/api/v1/products/"+productID.String()+"/variant-sessions", "")
	var opened struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&opened); err != nil {
		t.Fatalf("decode open response: %v", err)
	}
	sessionID := opened.Data["session_id"]

	w = doRequest(t, router, http.MethodPatch,
		"/api/v1/variant-sessions/"+sessionID+"/variants/"+uuid.NewString(),
		`{"name":"x"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("stage update on a foreign variant = %d, want 404", w.Code)
	}
}

func TestClassificationLimitParam(t *testing.T) {
	productID := uuid.New()
	router := newTestRouter(t, productID)
	base := "/api/v1/products/" + productID.String() + "/shops/" + uuid.NewString() + "/variants"

	if w := doRequest(t, router, http.MethodGet, base+"?limit=5", ""); w.Code != http.StatusOK {
		t.Fatalf("limit=5 = %d body=%s", w.Code, w.Body.String())
	}
	if w := doRequest(t, router, http.MethodGet, base+"?limit=abc", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("limit=abc = %d, want 400", w.Code)
	}
	if w := doRequest(t, router, http.MethodGet, base+"?limit=9999", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("limit beyond the cap = %d, want 400", w.Code)
	}
}

func TestSessionOpenUnknownProductIs404(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	w := doRequest(t, router, http.MethodPost, "/api/v1/products/"+uuid.NewString()+"/variant-sessions", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("open unknown product = %d, want 404", w.Code)
	}
}

func TestUnknownSessionIs404(t *testing.T) {
	router := newTestRouter(t, uuid.New())

	w := doRequest(t, router, http.MethodGet, "/api/v1/variant-sessions/"+uuid.NewString()+"/variants", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown session = %d, want 404", w.Code)
	}
}
