package httperr

import (
	"net/http"

	"save-serve/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message   string `json:"message"`
		Retryable bool   `json:"retryable,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Error.Retryable = status == http.StatusServiceUnavailable || status == http.StatusTooManyRequests
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type category struct {
	err     error
	status  int
	message string
	// reveal the root cause to the client
	explain bool
}

var categories = []category{
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request", true},
	{errs.ErrNotFound, http.StatusNotFound, "Not found", false},
	{errs.ErrForbidden, http.StatusForbidden, "Forbidden", true},
	{errs.ErrConflict, http.StatusConflict, "Conflict", true},
	{errs.ErrRateLimited, http.StatusTooManyRequests, "Too many requests", false},
	{errs.ErrTimeout, http.StatusGatewayTimeout, "Request timed out", false},
	{errs.ErrUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable", false},
}

// StatusOf maps a categorized usecase error to an HTTP status.
// Uncategorized errors are 500.
func StatusOf(err error) int {
	for _, cat := range categories {
		if errs.Is(err, cat.err) {
			return cat.status
		}
	}
	return http.StatusInternalServerError
}

// AbortWithUsecaseError picks the status from the error category. msg is
// used when the category has no client-facing wording of its own.
func AbortWithUsecaseError(c *gin.Context, err error, msg string) {
	for _, cat := range categories {
		if !errs.Is(err, cat.err) {
			continue
		}
		var detail any
		if cat.explain {
			detail = gin.H{"reason": errs.Cause(err).Error()}
		}
		AbortWithError(c, cat.status, err, cat.message, detail)
		return
	}
	AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
}
