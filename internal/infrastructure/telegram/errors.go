package telegram

import (
	"errors"
	"fmt"
)

// APIError is a failed Bot API response.
type APIError struct {
	ErrorCode   int
	Description string
	// RetryAfter is only set on 429 responses.
	RetryAfter int
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("telegram API error %d: %s (retry_after=%ds)", e.ErrorCode, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("telegram API error %d: %s", e.ErrorCode, e.Description)
}

// IsChatUnavailable reports a 403, e.g. the bot was removed from the shop chat.
func IsChatUnavailable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode == 403
}

// GetRetryAfter returns the retry_after seconds of a 429 error, or 0.
func GetRetryAfter(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode == 429 {
		return apiErr.RetryAfter
	}
	return 0
}
