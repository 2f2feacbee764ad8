package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrCodePolicyViolation ErrorCode = "POLICY_VIOLATION"
	ErrCodeConflict        ErrorCode = "CONFLICT"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeDatabaseError   ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodePolicyViolation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки приложения или INTERNAL_ERROR для чужих ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

func is(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool {
	return is(err, ErrCodeNotFound)
}

func IsUnauthorized(err error) bool {
	return is(err, ErrCodeUnauthorized)
}

func IsForbidden(err error) bool {
	return is(err, ErrCodeForbidden)
}

func IsValidation(err error) bool {
	return is(err, ErrCodeValidation)
}

func IsPolicyViolation(err error) bool {
	return is(err, ErrCodePolicyViolation)
}

func IsConflict(err error) bool {
	return is(err, ErrCodeConflict)
}

var (
	ErrUserNotFound              = New(ErrCodeNotFound, "пользователь не найден")
	ErrPostNotFound              = New(ErrCodeNotFound, "пост не найден")
	ErrResponseNotFound          = New(ErrCodeNotFound, "отклик не найден")
	ErrDealNotFound              = New(ErrCodeNotFound, "сделка не найдена")
	ErrComplaintNotFound         = New(ErrCodeNotFound, "жалоба не найдена")
	ErrDocumentNotFound          = New(ErrCodeNotFound, "документ не найден")
	ErrDocumentComplaintNotFound = New(ErrCodeNotFound, "жалоба на документ не найдена")
	ErrProfileErrorNotFound      = New(ErrCodeNotFound, "заявка на проверку профиля не найдена")
	ErrPostErrorNotFound         = New(ErrCodeNotFound, "заявка на проверку поста не найдена")
	ErrUnauthorized              = New(ErrCodeUnauthorized, "требуется авторизация")
	ErrForbidden                 = New(ErrCodeForbidden, "недостаточно прав")
	ErrModeratorOnly             = New(ErrCodeForbidden, "действие доступно только модератору")
	ErrInvalidCredentials        = New(ErrCodeUnauthorized, "неверные учетные данные")
	ErrStaleTarget               = New(ErrCodePolicyViolation, "ответить можно только на последний допустимый отклик в цепочке")
	ErrPostClosed                = New(ErrCodeConflict, "пост уже закрыт")
	ErrAlreadyResponded          = New(ErrCodeConflict, "вы уже откликнулись на этот пост")
	ErrAccountHasHistory         = New(ErrCodeConflict, "аккаунт нельзя удалить: по нему есть посты, отклики, сделки или жалобы")
	ErrPriceDecrease             = New(ErrCodePolicyViolation, "цену поста можно только повысить")
)
