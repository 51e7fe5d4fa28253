// internal/api/types/response.go
package types

// PaginatedResponse is the envelope for list endpoints that page through a
// collection, such as a wallet's transaction history.
type PaginatedResponse[T any] struct {
	Data       []T   `json:"data"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalCount int64 `json:"total_count"`
}
