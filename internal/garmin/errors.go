package garmin

import "errors"

// Error taxonomy for remote failures. Every remote error is fatal to the
// running workflow; callers translate these into exit status at the program
// boundary instead of retrying.
var (
	ErrAuth        = errors.New("garmin: authentication failed")
	ErrMFARequired = errors.New("garmin: MFA code required")
	ErrRateLimited = errors.New("garmin: rate limit exceeded")
)
