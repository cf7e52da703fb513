package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiptrain/portal/internal/middleware"
	"github.com/shiptrain/portal/internal/models"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondEnvelope writes the {code, message, data} wrapper. The HTTP status and
// the envelope code usually agree; the sample endpoint is the exception.
func respondEnvelope(c *gin.Context, status, code int, message string, data any) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
		"data":    data,
	})
}

func respondOK(c *gin.Context, message string, data any) {
	respondEnvelope(c, http.StatusOK, http.StatusOK, message, data)
}

// respondError sends an error envelope and attaches err for the request log
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	respondEnvelope(c, status, status, message, nil)
}

// respondValidationError reports binding failures as a 400 envelope whose data
// lists the offending fields
func respondValidationError(c *gin.Context, err error) {
	attachError(c, err)
	details := ParseValidationErrors(err)
	message := "invalid parameters"
	if len(details) > 0 {
		message += ": " + details[0].Message
	}
	respondEnvelope(c, http.StatusBadRequest, http.StatusBadRequest, message, details)
}

// requireSession returns the authenticated session, answering 401 when the route
// was mounted without an auth middleware
func requireSession(c *gin.Context) (*models.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "not logged in or session expired", errors.New("no session in context"))
	}
	return session, ok
}
