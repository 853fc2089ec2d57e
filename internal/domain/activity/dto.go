// internal/domain/activity/dto.go
package activity

// PaginatedResponse wraps one page of audit entries.
type PaginatedResponse struct {
	Content       []Log `json:"content"`
	CurrentPage   int   `json:"currentPage"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	HasNext       bool  `json:"hasNext"`
	HasPrevious   bool  `json:"hasPrevious"`
}
