package cmdutil

import (
	"context"
	"errors"
	"fmt"

	"github.com/open-cli-collective/chatmd/internal/directory"
)

// ErrAuthentication and ErrAccessDenied classify a failed directory check.
var (
	ErrAuthentication = errors.New("authentication failed - check your directory token")
	ErrAccessDenied   = errors.New("access denied - check your permissions")
)

// VerifyDirectory makes a minimal listing request to confirm the
// directory is reachable with the client's credentials.
func VerifyDirectory(ctx context.Context, client *directory.Client) error {
	_, err := client.ListMembers(ctx, &directory.ListOptions{Limit: 1})
	if err == nil {
		return nil
	}

	var apiErr *directory.ErrorResponse
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsUnauthorized():
			return ErrAuthentication
		case apiErr.IsForbidden():
			return ErrAccessDenied
		default:
			return fmt.Errorf("unexpected status code: %d", apiErr.StatusCode)
		}
	}
	return err
}
