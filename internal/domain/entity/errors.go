package entity

import "errors"

// ErrorKind groups domain errors by how the caller should react.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindNotFound
	KindPermission
	KindConflict
	KindAuthentication
)

// BusinessErrorCode is the enumerable code returned to clients alongside authentication and account errors.
type BusinessErrorCode int

const (
	CodeNone                     BusinessErrorCode = 0
	CodeIncorrectCurrentPassword BusinessErrorCode = 300
	CodeNewPasswordDoesNotMatch  BusinessErrorCode = 301
	CodeAccountLocked            BusinessErrorCode = 302
	CodeAccountDisabled          BusinessErrorCode = 303
	CodeBadCredentials           BusinessErrorCode = 304
)

var codeDescriptions = map[BusinessErrorCode]string{
	CodeNone:                     "No code",
	CodeIncorrectCurrentPassword: "Current password is incorrect",
	CodeNewPasswordDoesNotMatch:  "The new password does not match",
	CodeAccountLocked:            "User account is locked",
	CodeAccountDisabled:          "User account is disabled",
	CodeBadCredentials:           "Login and / or password is incorrect",
}

// Description is the human readable text sent with the code.
func (c BusinessErrorCode) Description() string {
	return codeDescriptions[c]
}

// AppError is a domain error with a category and an optional business code.
type AppError struct {
	Kind    ErrorKind
	Code    BusinessErrorCode
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func newError(kind ErrorKind, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg}
}

var (
	// not found
	ErrUserNotFound = newError(KindNotFound, "user not found")
	ErrRoleNotFound = newError(KindNotFound, "role not found")
	ErrBookNotFound = newError(KindNotFound, "no book found with the given id")
	ErrInvalidToken = newError(KindNotFound, "invalid token")

	// permission
	ErrNotBookOwner = newError(KindPermission, "you cannot update a book you do not own")

	// conflict / business rule
	ErrBookNotBorrowable      = newError(KindConflict, "the requested book cannot be borrowed since it is archived or not shareable")
	ErrSelfBorrow             = newError(KindConflict, "you cannot borrow your own book")
	ErrSelfReturn             = newError(KindConflict, "you cannot borrow or return your own book")
	ErrBookAlreadyBorrowed    = newError(KindConflict, "the requested book is already borrowed")
	ErrBookNotBorrowed        = newError(KindConflict, "you did not borrow this book")
	ErrReturnNotPending       = newError(KindConflict, "the book is not returned yet, you cannot approve its return")
	ErrFeedbackNotAllowed     = newError(KindConflict, "you cannot give a feedback for an archived or non-shareable book")
	ErrSelfFeedback           = newError(KindConflict, "you cannot give a feedback to your own book")
	ErrEmailAlreadyRegistered = newError(KindConflict, "an account with this email already exists")
	ErrActivationTokenExpired = newError(KindConflict, "activation token has expired, a new token has been sent to the same email address")
	ErrTokenAlreadyValidated  = newError(KindConflict, "activation token has already been used")
	ErrActivationCodeTaken    = newError(KindConflict, "activation code is already held by another pending token")

	// validation
	ErrInvalidPagination = newError(KindValidation, "page must be >= 0 and size between 1 and 100")
	ErrEmptyFile         = newError(KindValidation, "uploaded file is empty")

	// authentication
	ErrBadCredentials  = &AppError{Kind: KindAuthentication, Code: CodeBadCredentials, Message: "login and/or password is incorrect"}
	ErrAccountLocked   = &AppError{Kind: KindAuthentication, Code: CodeAccountLocked, Message: "user account is locked"}
	ErrAccountDisabled = &AppError{Kind: KindAuthentication, Code: CodeAccountDisabled, Message: "user account is disabled"}
	ErrUnauthenticated = newError(KindAuthentication, "full authentication is required to access this resource")

	// internal
	ErrDefaultRoleMissing = newError(KindInternal, "role USER was not initialized")
)

// KindOf returns the category of err, KindInternal for anything that is not an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
