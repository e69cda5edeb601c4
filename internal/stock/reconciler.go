package stock

import (
	"context"
	"fmt"
	"strings"

	"github.com/sevasanjeevani/store/internal/domain"
)

// Report is the outcome of reconciling a cart against live stock.
type Report struct {
	Issues []domain.StockIssue
}

func (r Report) IsValid() bool {
	return len(r.Issues) == 0
}

// OutOfStockError is returned by checkout when reconciliation found
// issues. It carries the full issue list so the caller can render a
// per-line message without re-querying.
type OutOfStockError struct {
	Issues []domain.StockIssue
}

func (e *OutOfStockError) Error() string {
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		switch issue.Kind {
		case domain.StockIssueNotFound:
			parts[i] = fmt.Sprintf("product %d no longer available", issue.ProductID)
		default:
			parts[i] = fmt.Sprintf("product %d: requested %d, only %d in stock",
				issue.ProductID, issue.Requested, issue.Available)
		}
	}
	return "out of stock: " + strings.Join(parts, "; ")
}

// Reconciler validates cart lines against current catalog stock.
type Reconciler struct {
	catalog CatalogStock
}

func NewReconciler(catalog CatalogStock) *Reconciler {
	return &Reconciler{catalog: catalog}
}

// Validate checks every line against the catalog. It is read-only and
// mutates neither the cart nor stock. Callers should run it as the
// last read before committing an order to keep the race window small.
func (r *Reconciler) Validate(ctx context.Context, lines []domain.LineItem) (Report, error) {
	var report Report
	for _, line := range lines {
		available, found, err := r.catalog.CurrentStock(ctx, line.ProductID)
		if err != nil {
			return Report{}, fmt.Errorf("stock lookup for product %d: %w", line.ProductID, err)
		}
		if !found {
			report.Issues = append(report.Issues, domain.StockIssue{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Kind:        domain.StockIssueNotFound,
				Requested:   line.Quantity,
			})
			continue
		}
		if line.Quantity > available {
			report.Issues = append(report.Issues, domain.StockIssue{
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Kind:        domain.StockIssueInsufficient,
				Requested:   line.Quantity,
				Available:   available,
			})
		}
	}
	return report, nil
}
