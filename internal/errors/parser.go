package errors

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorInfo carries a mapped error code and user-facing message
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps database errors to user-facing codes without leaking
// internals. Business-rule errors are handled by the services before they
// reach this point; this covers GORM and Postgres constraint failures.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "An unexpected error occurred"}
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Unique constraint violation (23505)
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// Foreign key constraint violation (23503)
	if strings.Contains(errStr, "foreign key constraint") {
		if strings.Contains(errStr, "still referenced") {
			return ErrorInfo{Code: ResourceConflict, Message: "This record is referenced by other data and cannot be deleted"}
		}
		return ErrorInfo{Code: ResourceNotFound, Message: "A referenced record does not exist"}
	}

	// Not-null constraint violation (23502)
	if strings.Contains(errStr, "null value") && strings.Contains(errStr, "not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	// Check constraint violation (23514)
	if strings.Contains(errStr, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidRange, Message: "A field value is out of range"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "The service is temporarily unavailable. Please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "An unexpected error occurred. Please try again later"}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	switch {
	case strings.Contains(errStr, "email"):
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "This email is already in use"}
	case strings.Contains(errStr, "slug"):
		return ErrorInfo{Code: ProductSlugExists, Message: "This product slug is already in use"}
	case strings.Contains(errStr, "sku"):
		return ErrorInfo{Code: ProductSKUExists, Message: "This SKU is already in use"}
	case strings.Contains(errStr, "code") && strings.Contains(errStr, "coupon"):
		return ErrorInfo{Code: CouponCodeExists, Message: "This coupon code already exists"}
	case strings.Contains(errStr, "order_number"):
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Order number collision, please retry"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "A record with these values already exists"}
}

// StatusForCode derives the HTTP status from an error code's category.
func StatusForCode(code string) int {
	switch {
	case code == ResourceNotFound || strings.HasSuffix(code, "_NOT_FOUND"):
		return 404
	case code == ResourceAlreadyExists || code == ResourceConflict || strings.HasSuffix(code, "_EXISTS"):
		return 409
	case strings.HasPrefix(code, "VALIDATION_"):
		return 400
	case strings.HasPrefix(code, "AUTH_"):
		return 401
	case strings.HasPrefix(code, "AUTHZ_"):
		return 403
	default:
		return 500
	}
}

// ParseAndRespond parses an error and writes the mapped response so
// controllers do not repeat the mapping.
func ParseAndRespond(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, StatusForCode(info.Code), info.Code, info.Message)
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)
	switch {
	case strings.Contains(contextLower, "product"):
		return "Product not found"
	case strings.Contains(contextLower, "variant"):
		return "Product variant not found"
	case strings.Contains(contextLower, "coupon"):
		return "Coupon not found"
	case strings.Contains(contextLower, "promotion"):
		return "Promotion not found"
	case strings.Contains(contextLower, "order"):
		return "Order not found"
	case strings.Contains(contextLower, "cart"):
		return "Cart item not found"
	case strings.Contains(contextLower, "address"):
		return "Address not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	}
	return "The requested record was not found"
}
