package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// Codes:
//
//	USR001 - User not found: The user no longer exists
//	         Action: Refresh the page to see the current list
//
//	FRM001 - Form closed: The form was closed before this action
//	         Action: Open the form again
//
//	FTR001 - Editing disabled: Editing users is turned off
//	         Action: Ask an administrator to enable FEATURE_EDITABLE_USERS
//
//	FTR002 - Deleting disabled: Deleting users is turned off
//	         Action: Ask an administrator to enable FEATURE_DELETABLE_USERS
//
//	STO001 - Storage failure: Changes could not be saved
//	         Action: Check the storage backend and try again
//
//	STO002 - Storage unavailable: Storage backend is unreachable
//	         Action: Check the storage backend and try again
//
//	REQ001 - Bad request: The request could not be read
//	         Action: Check the submitted data
//
//	ERR000 - Unknown error: An unexpected error occurred
//	         Action: Please try again or check the server log
//
// Sentinel errors are matched with errors.Is first. Errors that only carry
// text (driver and OS errors) fall back to case-insensitive substring
// patterns; the first match wins.

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var sentinelMessages = []struct {
	err error
	msg UserMessage
}{
	{ErrUserNotFound, UserMessage{"The user no longer exists", "Refresh the page to see the current list", "USR001"}},
	{ErrFormClosed, UserMessage{"The form was closed before this action", "Open the form again", "FRM001"}},
	{ErrEditDisabled, UserMessage{"Editing users is turned off", "Ask an administrator to enable FEATURE_EDITABLE_USERS", "FTR001"}},
	{ErrDeleteDisabled, UserMessage{"Deleting users is turned off", "Ask an administrator to enable FEATURE_DELETABLE_USERS", "FTR002"}},
	{ErrStorage, UserMessage{"Changes could not be saved", "Check the storage backend and try again", "STO001"}},
	{ErrBadRequest, UserMessage{"The request could not be read", "Check the submitted data", "REQ001"}},
}

var errorPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"connection refused", UserMessage{"Storage backend is unreachable", "Check the storage backend and try again", "STO002"}},
	{"no such host", UserMessage{"Storage backend is unreachable", "Check the storage backend and try again", "STO002"}},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or check the server log",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns an empty UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.err) {
			return s.msg
		}
	}

	lower := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders "Message (Code: XXX). Action", or "" for nil.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to something more specific than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
