package util

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmailRegistered         = errors.New("email already registered")
	ErrUsernameRegistered      = errors.New("username already registered")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrResetTokenInvalid       = errors.New("reset token expired or invalid")
	ErrPermissionDenied        = errors.New("permission denied")
	ErrAssessmentNotReady      = errors.New("assessment not ready yet")
	ErrAttemptNotFound         = errors.New("attempt not found")
	ErrAttemptAlreadySubmitted = errors.New("attempt already submitted")
	ErrNoCaptions              = errors.New("video does not have captions available")
	ErrWorkflowResolved        = errors.New("workflow request already resolved")
	ErrFileTooLarge            = errors.New("file too large")
	ErrFileTypeNotAllowed      = errors.New("file type not allowed")
)
