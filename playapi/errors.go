package playapi

import (
	"errors"
	"fmt"

	"google.golang.org/api/googleapi"
)

// apiError wraps a failed API call, adding the HTTP status and the server message when available.
func apiError(action string, err error) error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = gErr.Body
		}
		return fmt.Errorf("%s failed with status %d (%s): %w", action, gErr.Code, msg, err)
	}
	return fmt.Errorf("%s failed: %w", action, err)
}
