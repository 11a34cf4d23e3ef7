package errs

// Cross-layer categories. Usecases mark concrete errors with one of these so
// the HTTP layer can pick a status without importing every package.
var (
	ErrNotFound    = New("not found")
	ErrValidation  = New("validation failed")
	ErrForbidden   = New("forbidden")
	ErrConflict    = New("conflict")
	ErrUnavailable = New("dependency unavailable")
	ErrTimeout     = New("deadline exceeded before the operation started")
)

var ErrRateLimited = New("rate limit exceeded")
