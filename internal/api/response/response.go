package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiResponse is the standard success envelope
type ApiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    interface{}     `json:"data,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

// ErrorResponse is the standard error envelope
type ErrorResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	ErrorCode string      `json:"error_code"`
	Details   interface{} `json:"details,omitempty"`
}

// PaginationMeta describes the position of a page within a listing
type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPaginationMeta computes page counts from the total item count
func NewPaginationMeta(page, perPage int, totalItems int64) *PaginationMeta {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((totalItems + int64(perPage) - 1) / int64(perPage))
	}
	return &PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// OK writes a 200 success envelope
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ApiResponse{Success: true, Message: message, Data: data})
}

// Created writes a 201 success envelope
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ApiResponse{Success: true, Message: message, Data: data})
}

// Paginated writes a 200 success envelope with pagination metadata
func Paginated(c *gin.Context, message string, data interface{}, meta *PaginationMeta) {
	c.JSON(http.StatusOK, ApiResponse{Success: true, Message: message, Data: data, Meta: meta})
}

// Error writes an error envelope with the given status and machine code
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, ErrorResponse{Success: false, Message: message, ErrorCode: code, Details: details})
}
