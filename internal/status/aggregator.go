package status

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mstore-labs/pim-backend/internal/catalog"
	"github.com/mstore-labs/pim-backend/internal/monitoring"
	"github.com/mstore-labs/pim-backend/pkg/enums"
	"github.com/mstore-labs/pim-backend/pkg/logger"
	"github.com/mstore-labs/pim-backend/pkg/metrics"
)

// Catalog loads product graphs and shared lookups.
type Catalog interface {
	LoadGraph(ctx context.Context, productID uuid.UUID) (*catalog.ProductGraph, error)
	LoadGraphs(ctx context.Context, productIDs []uuid.UUID) ([]*catalog.ProductGraph, error)
	LoadSharedContext(ctx context.Context) (*catalog.SharedContext, error)
}

// PolicySource supplies the current monitoring policy.
type PolicySource interface {
	Load(ctx context.Context) (monitoring.Policy, error)
}

// ReportCache stores finished reports keyed by product id and catalog
// version. Implementations must treat misses as (nil, false).
type ReportCache interface {
	Get(ctx context.Context, productID uuid.UUID, updatedAt time.Time) (*Report, bool)
	Set(ctx context.Context, report *Report, updatedAt time.Time)
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error
}

// Service aggregates product status reports.
type Service interface {
	ProductStatus(ctx context.Context, productID uuid.UUID) (*Report, error)
	ProductStatuses(ctx context.Context, productIDs []uuid.UUID) ([]*Report, error)
	Invalidate(ctx context.Context, productID uuid.UUID) error
}

type service struct {
	catalog  Catalog
	policies PolicySource
	cache    ReportCache
	grace    time.Duration
	metrics  *metrics.StatusMetrics
	logg     *logger.Logger
	now      func() time.Time
}

// NewService wires the aggregator. The cache and metrics are optional.
func NewService(cat Catalog, policies PolicySource, cache ReportCache, gracePeriod time.Duration, m *metrics.StatusMetrics, logg *logger.Logger) (Service, error) {
	if cat == nil {
		return nil, errors.New("catalog is required")
	}
	if policies == nil {
		return nil, errors.New("policy source is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		catalog:  cat,
		policies: policies,
		cache:    cache,
		grace:    gracePeriod,
		metrics:  m,
		logg:     logg,
		now:      time.Now,
	}, nil
}

func (s *service) ProductStatus(ctx context.Context, productID uuid.UUID) (*Report, error) {
	start := s.now()
	ctx = s.logg.WithProductID(ctx, productID.String())

	graph, err := s.catalog.LoadGraph(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, productID, graph.Product.UpdatedAt); ok {
			s.metrics.IncCacheHit()
			return cached, nil
		}
		s.metrics.IncCacheMiss()
	}

	shared, err := s.catalog.LoadSharedContext(ctx)
	if err != nil {
		return nil, err
	}
	policy, err := s.policies.Load(ctx)
	if err != nil {
		return nil, err
	}

	report := s.aggregate(graph, shared, policy)
	if s.cache != nil {
		s.cache.Set(ctx, report, graph.Product.UpdatedAt)
	}

	s.metrics.ObserveDuration("single", s.now().Sub(start))
	return report, nil
}

func (s *service) ProductStatuses(ctx context.Context, productIDs []uuid.UUID) ([]*Report, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	start := s.now()

	graphs, err := s.catalog.LoadGraphs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	shared, err := s.catalog.LoadSharedContext(ctx)
	if err != nil {
		return nil, err
	}
	policy, err := s.policies.Load(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*Report, 0, len(graphs))
	for _, graph := range graphs {
		if s.cache != nil {
			if cached, ok := s.cache.Get(ctx, graph.Product.ID, graph.Product.UpdatedAt); ok {
				s.metrics.IncCacheHit()
				reports = append(reports, cached)
				continue
			}
			s.metrics.IncCacheMiss()
		}
		report := s.aggregate(graph, shared, policy)
		if s.cache != nil {
			s.cache.Set(ctx, report, graph.Product.UpdatedAt)
		}
		reports = append(reports, report)
	}

	s.metrics.ObserveDuration("bulk", s.now().Sub(start))
	return reports, nil
}

func (s *service) Invalidate(ctx context.Context, productID uuid.UUID) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateProduct(ctx, productID)
}

// Label fallbacks for connections that never configured a badge.
const (
	defaultLabelColor    = "#808080"
	defaultShopLabelIcon = "shop"
	defaultErpLabelIcon  = "erp"
)

func applyLabelDefaults(integration *IntegrationReport) {
	if integration.LabelColor == "" {
		integration.LabelColor = defaultLabelColor
	}
	if integration.LabelIcon != "" {
		return
	}
	if integration.Type == enums.IntegrationTypeErp {
		integration.LabelIcon = defaultErpLabelIcon
		return
	}
	integration.LabelIcon = defaultShopLabelIcon
}

// aggregate runs every check against one product graph. Products inside
// the import grace period skip checks entirely and report an
// awaiting-validation status.
func (s *service) aggregate(graph *catalog.ProductGraph, shared *catalog.SharedContext, policy monitoring.Policy) *Report {
	product := &graph.Product
	report := &Report{
		ProductID:    product.ID,
		SKU:          product.SKU,
		GlobalIssues: []enums.Issue{},
		Integrations: []IntegrationReport{},
		Variants:     []VariantReport{},
		GeneratedAt:  s.now().UTC(),
	}

	if product.ImportedAt != nil && s.now().Before(product.ImportedAt.Add(s.grace)) {
		report.Status = enums.ProductStatusAwaitingValidation
		report.finalize()
		return report
	}

	report.GlobalIssues = globalIssues(policy, graph, shared)
	for _, issue := range report.GlobalIssues {
		s.metrics.IncIssue(issue.String())
	}

	if graph.ShopDataLoaded {
		for i := range product.ShopData {
			data := &product.ShopData[i]
			integration := IntegrationReport{
				Type:          enums.IntegrationTypeShop,
				IntegrationID: data.ShopID,
				Issues:        shopIssues(policy, graph, data),
			}
			if data.Shop != nil {
				integration.Name = data.Shop.Name
				integration.LabelColor = data.Shop.LabelColor
				integration.LabelIcon = data.Shop.LabelIcon
			}
			applyLabelDefaults(&integration)
			for _, issue := range integration.Issues {
				s.metrics.IncIssue(issue.Issue.String())
			}
			report.Integrations = append(report.Integrations, integration)
		}
	}

	if graph.ErpDataLoaded {
		for i := range product.ErpData {
			data := &product.ErpData[i]
			integration := IntegrationReport{
				Type:          enums.IntegrationTypeErp,
				IntegrationID: data.ErpConnectionID,
				Issues:        erpIssues(policy, graph, data),
			}
			if data.ErpConnection != nil {
				integration.Name = data.ErpConnection.Name
				integration.LabelColor = data.ErpConnection.LabelColor
				integration.LabelIcon = data.ErpConnection.LabelIcon
			}
			applyLabelDefaults(&integration)
			for _, issue := range integration.Issues {
				s.metrics.IncIssue(issue.Issue.String())
			}
			report.Integrations = append(report.Integrations, integration)
		}
	}

	if graph.VariantsLoaded {
		for i := range product.Variants {
			variant := &product.Variants[i]
			variantReport := VariantReport{
				VariantID: variant.ID,
				SKU:       variant.SKU,
				Issues:    variantIssues(policy, variant, shared),
			}
			for _, issue := range variantReport.Issues {
				s.metrics.IncIssue(issue.String())
			}
			report.Variants = append(report.Variants, variantReport)
		}
	}

	report.finalize()
	return report
}
