// internal/api/types/response.go
package types

// PaginatedTransactions wraps a ledger page with its pagination metadata.
type PaginatedTransactions[T any] struct {
	Transactions []T   `json:"transactions"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
	TotalCount   int64 `json:"totalCount"`
}
