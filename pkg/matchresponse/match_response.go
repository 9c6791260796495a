package matchresponse

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// --- Structs for Standardized JSON Response Bodies ---

type jsonSuccessResponse struct {
	Status  string      `json:"status"` // always "success"
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type jsonErrorResponse struct {
	Status    string      `json:"status"` // "error" or "fail"
	Message   string      `json:"message"`
	Code      int         `json:"code"`
	ErrorCode string      `json:"error_code,omitempty"` // domain code, e.g. RULE_VIOLATION
	Errors    interface{} `json:"errors,omitempty"`
}

type jsonPaginatedResponse struct {
	Status     string      `json:"status"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
	Pagination pagination  `json:"pagination"`
}

type pagination struct {
	TotalItems   int64 `json:"total_items"`
	TotalPages   int   `json:"total_pages"`
	CurrentPage  int   `json:"current_page"`
	PageSize     int   `json:"page_size"`
	HasNextPage  bool  `json:"has_next_page"`
	HasPrevPage  bool  `json:"has_prev_page"`
	NextPage     *int  `json:"next_page,omitempty"`
	PreviousPage *int  `json:"previous_page,omitempty"`
}

// codedError is satisfied by domain errors that know their HTTP status.
type codedError interface {
	error
	Code() string
	Status() int
}

func statusText(statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "fail" // Differentiate client errors from server failures
	}
	return "error"
}

// ErrorResponse sends a standardized error JSON response.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, jsonErrorResponse{
		Status:  statusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// DomainErrorResponse reports err with the status and code it carries.
// Anything else, and every 5xx, is reported without internal detail.
func DomainErrorResponse(c *gin.Context, err error) {
	var ce codedError
	if !errors.As(err, &ce) {
		_ = c.Error(err)
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := ce.Status()
	message := ce.Error()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		message = "Internal server error"
	}
	c.AbortWithStatusJSON(status, jsonErrorResponse{
		Status:    statusText(status),
		Message:   message,
		Code:      status,
		ErrorCode: ce.Code(),
	})
}

// formatValidationErrors converts validator.ValidationErrors into a map keyed by lowercased field name.
func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	formattedErrors := make(map[string]string)
	for _, err := range errs {
		fieldKey := strings.ToLower(err.Field())
		var errMsg string
		switch err.Tag() {
		case "required":
			errMsg = fmt.Sprintf("The %s field is required.", err.Field())
		case "min":
			errMsg = fmt.Sprintf("The %s field must be at least %s.", err.Field(), err.Param())
		case "max":
			errMsg = fmt.Sprintf("The %s field must not exceed %s.", err.Field(), err.Param())
		case "oneof":
			errMsg = fmt.Sprintf("The %s field must be one of the following: %s.", err.Field(), strings.ReplaceAll(err.Param(), " ", ", "))
		case "nefield":
			errMsg = fmt.Sprintf("The %s field must differ from %s.", err.Field(), err.Param())
		default:
			errMsg = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag.", err.Field(), err.Tag())
		}
		formattedErrors[fieldKey] = errMsg
	}
	return formattedErrors
}

// ValidationErrorResponse sends a structured JSON response for errors from c.ShouldBindJSON().
func ValidationErrorResponse(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		c.AbortWithStatusJSON(http.StatusBadRequest, jsonErrorResponse{
			Status:    "error",
			Message:   "Validation failed. Please check your input.",
			Code:      http.StatusBadRequest,
			ErrorCode: "VALIDATION_ERROR",
			Errors:    formatValidationErrors(ve),
		})
		return
	}
	// malformed JSON and type mismatches
	ErrorResponse(c, http.StatusBadRequest, "Invalid request payload: "+err.Error())
}

// SuccessResponse sends a standardized success JSON response.
// A gin.H with a string "message" key has that key lifted to the top-level message
// and the remaining keys sent as data.
func SuccessResponse(c *gin.Context, statusCode int, responseData interface{}) {
	payload := jsonSuccessResponse{Status: "success"}

	gh, ok := responseData.(gin.H)
	if !ok {
		payload.Data = responseData
		c.JSON(statusCode, payload)
		return
	}

	msg, isStr := gh["message"].(string)
	if !isStr {
		payload.Data = responseData
		c.JSON(statusCode, payload)
		return
	}

	payload.Message = msg
	rest := make(gin.H, len(gh))
	for k, v := range gh {
		if k != "message" {
			rest[k] = v
		}
	}
	if len(rest) > 0 {
		payload.Data = rest
	}
	c.JSON(statusCode, payload)
}

// newPagination describes page currentPage of totalItems split into pages of pageSize.
func newPagination(currentPage, pageSize int, totalItems int64) pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	p := pagination{
		TotalItems:  totalItems,
		CurrentPage: currentPage,
		PageSize:    pageSize,
	}
	if totalItems > 0 {
		p.TotalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}

	p.HasNextPage = currentPage < p.TotalPages
	p.HasPrevPage = currentPage > 1 && currentPage <= p.TotalPages
	if p.HasNextPage {
		next := currentPage + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := currentPage - 1
		p.PreviousPage = &prev
	}
	return p
}

// PaginatedResponse sends a standardized success JSON response for paginated data.
func PaginatedResponse(c *gin.Context, statusCode int, itemsData interface{}, currentPage int, pageSize int, totalItems int64) {
	c.JSON(statusCode, jsonPaginatedResponse{
		Status:     "success",
		Data:       itemsData,
		Pagination: newPagination(currentPage, pageSize, totalItems),
	})
}
