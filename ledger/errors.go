package ledger

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrBidNotFound       error = errors.New("bid not found")
	ErrPlayerNotEligible error = errors.New("player is no longer available")
)

// ValidationError reports which required bid fields were missing or
// unusable. The web layer maps it to a 400 response.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid bid data: missing %s", strings.Join(e.Missing, ", "))
}
