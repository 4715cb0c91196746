package errors

// Error codes in CATEGORY_DETAIL form. They appear in logs and in the JSON
// error bodies of the few machine-facing endpoints.

const (
	// auth
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthSessionExpired     = "AUTH_SESSION_EXPIRED"
	AuthSessionInvalid     = "AUTH_SESSION_INVALID"
	AuthSessionRevoked     = "AUTH_SESSION_REVOKED"
	AuthUsernameExists     = "AUTH_USERNAME_EXISTS"
	AuthPasswordPolicy     = "AUTH_PASSWORD_POLICY"
	AuthTooManyAttempts    = "AUTH_TOO_MANY_ATTEMPTS"

	// validation
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// resources
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// catalog and ratings
	BarberNotFound     = "BARBER_NOT_FOUND"
	ShopNotFound       = "SHOP_NOT_FOUND"
	RatingInvalidValue = "RATING_INVALID_VALUE"

	// uploads
	UploadFailed = "UPLOAD_FAILED"

	// internal
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalStorageError  = "INTERNAL_STORAGE_ERROR"
)
