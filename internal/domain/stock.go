package domain

type StockIssueKind string

const (
	StockIssueNotFound     StockIssueKind = "not_found"
	StockIssueInsufficient StockIssueKind = "insufficient"
)

// StockIssue is produced by stock reconciliation and consumed
// immediately by checkout or rendered to the user.
type StockIssue struct {
	ProductID   int64          `json:"product_id"`
	ProductName string         `json:"product_name"`
	Kind        StockIssueKind `json:"kind"`
	Requested   int32          `json:"requested"`
	Available   int32          `json:"available,omitempty"`
}
