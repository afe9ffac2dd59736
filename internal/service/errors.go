package service

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeAuthRequired      = "AUTH_REQUIRED"
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeMissingText       = "MISSING_TEXT"
	CodeEmptyText         = "EMPTY_TEXT"
	CodeTextTooLong       = "TEXT_TOO_LONG"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeNetworkError      = "NETWORK_ERROR"
	CodeTimeoutError      = "TIMEOUT_ERROR"
	CodeAIError           = "AI_ERROR"
	CodeParseError        = "PARSE_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"

	CodeUsernameTaken      = "USERNAME_TAKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// 错误文案直接面向终端用户
var (
	ErrAuthRequired   = errors.New("Authentication required. Please log in to use the predictor.")
	ErrInvalidRequest = errors.New("Invalid request format. Please try again.")
	ErrMissingText    = errors.New("Please enter some text to analyze.")
	ErrEmptyText      = errors.New("Please enter some text to analyze.")
	ErrTextTooLong    = errors.New("Your post is too long. Please keep it under 500 characters.")
	ErrNetwork        = errors.New("Network error. Please check your connection and try again.")
	ErrTimeout        = errors.New("Request timed out. Please try again.")
	ErrAIFailed       = errors.New("Failed to analyze your post. Please try again in a moment.")
	ErrParse          = errors.New("Received an invalid response from the AI. Please try again.")
	ErrValidation     = errors.New("Received an incomplete prediction. Please try again.")
	ErrInternal       = errors.New("An unexpected error occurred. Please try again.")

	ErrUsernameTaken      = errors.New("That username is already taken.")
	ErrInvalidCredentials = errors.New("Incorrect username or password.")
)

// ErrorMeta 错误码在对外接口上的表现
type ErrorMeta struct {
	Status    int
	Code      string
	Retryable bool
}

var ErrorMap = map[error]ErrorMeta{
	ErrAuthRequired:   {Status: http.StatusUnauthorized, Code: CodeAuthRequired},
	ErrInvalidRequest: {Status: http.StatusBadRequest, Code: CodeInvalidRequest},
	ErrMissingText:    {Status: http.StatusBadRequest, Code: CodeMissingText},
	ErrEmptyText:      {Status: http.StatusBadRequest, Code: CodeEmptyText},
	ErrTextTooLong:    {Status: http.StatusBadRequest, Code: CodeTextTooLong},
	ErrNetwork:        {Status: http.StatusServiceUnavailable, Code: CodeNetworkError, Retryable: true},
	ErrTimeout:        {Status: http.StatusGatewayTimeout, Code: CodeTimeoutError, Retryable: true},
	ErrAIFailed:       {Status: http.StatusInternalServerError, Code: CodeAIError, Retryable: true},
	ErrParse:          {Status: http.StatusInternalServerError, Code: CodeParseError, Retryable: true},
	ErrValidation:     {Status: http.StatusInternalServerError, Code: CodeValidationError, Retryable: true},
	ErrInternal:       {Status: http.StatusInternalServerError, Code: CodeInternalError, Retryable: true},

	ErrUsernameTaken:      {Status: http.StatusBadRequest, Code: CodeUsernameTaken},
	ErrInvalidCredentials: {Status: http.StatusUnauthorized, Code: CodeInvalidCredentials},
}

// QuotaExceededError 配额用尽。重置按天发生，不标记为可重试
type QuotaExceededError struct {
	DailyLimit int
	TodayCount int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("You've reached your daily limit of %d predictions. Your limit will reset tomorrow.", e.DailyLimit)
}
