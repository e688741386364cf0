package dto

// APIResponse is the stable JSON envelope every endpoint returns.
// Success: {"status":"success","message":...,"data":{...}}
// Error:   {"status":"error","message":...,"errors":[...]}
type APIResponse struct {
	Status  string       `json:"status" example:"success"`
	Message string       `json:"message,omitempty" example:"Operation completed successfully"`
	Data    interface{}  `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError carries a field-level validation failure
type FieldError struct {
	Field   string `json:"field" example:"content"`
	Message string `json:"message" example:"content is required"`
}

// NewSuccessResponse creates a success envelope around data
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Status: "success",
		Data:   data,
	}
}

// NewSuccessMessageResponse creates a success envelope with a message and optional data
func NewSuccessMessageResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	}
}

// NewErrorResponse creates an error envelope
func NewErrorResponse(message string) APIResponse {
	return APIResponse{
		Status:  "error",
		Message: message,
	}
}

// NewValidationErrorResponse creates an error envelope with field errors
func NewValidationErrorResponse(message string, errors []FieldError) APIResponse {
	return APIResponse{
		Status:  "error",
		Message: message,
		Errors:  errors,
	}
}

// PaginationInfo describes the page window of a list response
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"5"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"42"`
}

// PaginatedResponse represents a paginated list with metadata
type PaginatedResponse struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
