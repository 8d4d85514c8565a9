package errors

// Error code constants.
// Format: CATEGORY_SPECIFIC_DETAIL
// The frontend maps these codes to localized messages.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Product / Variant (PRODUCT_) ====================
	ProductNotFound     = "PRODUCT_NOT_FOUND"
	ProductSlugExists   = "PRODUCT_SLUG_EXISTS"
	ProductSKUExists    = "PRODUCT_SKU_EXISTS"
	VariantNotFound     = "VARIANT_NOT_FOUND"
	VariantSKUExists    = "VARIANT_SKU_EXISTS"
	VariantWrongProduct = "VARIANT_WRONG_PRODUCT"

	// ==================== Cart (CART_) ====================
	CartItemNotFound   = "CART_ITEM_NOT_FOUND"
	CartSelectionStale = "CART_SELECTION_STALE"

	// ==================== Coupon (COUPON_) ====================
	CouponNotFound   = "COUPON_NOT_FOUND"
	CouponExpired    = "COUPON_EXPIRED"
	CouponExhausted  = "COUPON_EXHAUSTED"
	CouponMinSpend   = "COUPON_BELOW_MIN_SPEND"
	CouponCodeExists = "COUPON_CODE_EXISTS"

	// ==================== Promotion (PROMOTION_) ====================
	PromotionNotFound      = "PROMOTION_NOT_FOUND"
	PromotionInvalidWindow = "PROMOTION_INVALID_WINDOW"

	// ==================== Order (ORDER_) ====================
	OrderNotFound         = "ORDER_NOT_FOUND"
	OrderNotEditable      = "ORDER_NOT_EDITABLE"
	OrderInvalidStatus    = "ORDER_INVALID_STATUS"
	OrderPaymentNotFound  = "ORDER_PAYMENT_METHOD_NOT_FOUND"
	OrderShippingNotFound = "ORDER_SHIPPING_PARTNER_NOT_FOUND"

	// ==================== Address (ADDRESS_) ====================
	AddressNotFound = "ADDRESS_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
