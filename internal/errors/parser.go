package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a message safe to show to users.
type ErrorInfo struct {
	Code    string
	Message string
}

// IsUniqueViolation reports whether err came from a UNIQUE constraint. gorm only
// translates driver errors into ErrDuplicatedKey when TranslateError is on, so
// the raw sqlite and postgres messages are matched as well.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || // sqlite
		strings.Contains(msg, "duplicate key value") || // postgres 23505
		strings.Contains(msg, "sqlstate 23505")
}

// IsForeignKeyViolation reports whether err came from a FOREIGN KEY constraint.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}

// IsNotFound reports whether err is gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ParseError maps a storage error to a user-facing message. context names the
// operation ("register", "rate barber", ...) and shapes the fallback message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong. Please try again.",
		}
	}

	if IsNotFound(err) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	if IsUniqueViolation(err) {
		return parseDuplicateKeyError(err.Error())
	}

	if IsForeignKeyViolation(err) {
		return parseForeignKeyError(err.Error())
	}

	errLower := strings.ToLower(err.Error())
	if strings.Contains(errLower, "database is locked") ||
		strings.Contains(errLower, "connection refused") ||
		strings.Contains(errLower, "timeout") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "The database is busy. Please try again in a moment.",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "username") || strings.Contains(errLower, "idx_users_username") {
		return ErrorInfo{
			Code:    AuthUsernameExists,
			Message: "Username already exists. Please choose a different one.",
		}
	}

	if strings.Contains(errLower, "idx_ratings_user_barber") ||
		(strings.Contains(errLower, "ratings") && strings.Contains(errLower, "barber_id")) {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "You have already rated this barber.",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "That record already exists.",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "shop_id") || strings.Contains(errLower, "fk_shops") {
		return ErrorInfo{Code: ShopNotFound, Message: "Please choose an existing shop."}
	}
	if strings.Contains(errLower, "barber_id") || strings.Contains(errLower, "fk_barbers") {
		return ErrorInfo{Code: BarberNotFound, Message: "Barber not found"}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "A referenced record does not exist.",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "barber"):
		return "Barber not found"
	case strings.Contains(contextLower, "shop"):
		return "Shop not found"
	case strings.Contains(contextLower, "rating"):
		return "No rating found."
	case strings.Contains(contextLower, "user"):
		return "User not found."
	}
	return "Not found"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "register"):
		return "We could not create your account. Please try again."
	case strings.Contains(contextLower, "rate") || strings.Contains(contextLower, "rating"):
		return "We could not save your rating. Please try again."
	case strings.Contains(contextLower, "upload") || strings.Contains(contextLower, "add"):
		return "We could not save your upload. Please try again."
	case strings.Contains(contextLower, "delete"):
		return "We could not delete that. Please try again."
	}
	return "Something went wrong. Please try again."
}
