package services

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	itemdomain "github.com/ghuser/stowage/services/item/domain"
)

// Mutation operation labels for item_mutations_total.
const (
	opCreate   = "create"
	opUpdate   = "update"
	opRelocate = "relocate"
	opDelete   = "delete"
)

// Metrics holds the catalog instruments. A nil *Metrics records nothing.
type Metrics struct {
	mutations metric.Int64Counter
	warnings  metric.Int64Counter
	treeNodes metric.Int64Histogram
}

// NewMetrics registers the catalog instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	mutations, err := meter.Int64Counter("item_mutations_total",
		metric.WithDescription("Committed catalog mutations by operation"))
	if err != nil {
		return nil, fmt.Errorf("item_mutations_total: %w", err)
	}
	warnings, err := meter.Int64Counter("item_warnings_total",
		metric.WithDescription("Non-fatal warnings attached to committed mutations"))
	if err != nil {
		return nil, fmt.Errorf("item_warnings_total: %w", err)
	}
	treeNodes, err := meter.Int64Histogram("item_tree_nodes",
		metric.WithDescription("Node count of materialized trees"),
		metric.WithExplicitBucketBoundaries(0, 1, 5, 10, 25, 50, 100, 250, 500, 1000))
	if err != nil {
		return nil, fmt.Errorf("item_tree_nodes: %w", err)
	}
	return &Metrics{mutations: mutations, warnings: warnings, treeNodes: treeNodes}, nil
}

func (m *Metrics) mutation(ctx context.Context, op string, warnings []itemdomain.Warning) {
	if m == nil {
		return
	}
	m.mutations.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	for _, w := range warnings {
		m.warnings.Add(ctx, 1, metric.WithAttributes(attribute.String("code", string(w.Code))))
	}
}

func (m *Metrics) tree(ctx context.Context, size int) {
	if m == nil {
		return
	}
	m.treeNodes.Record(ctx, int64(size))
}
