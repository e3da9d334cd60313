package handlers

import (
	"errors"
	"net/http"

	"delivery-platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var statusByKind = map[apperr.Kind]int{
	apperr.Validation:        http.StatusBadRequest,
	apperr.Authentication:    http.StatusUnauthorized,
	apperr.Authorization:     http.StatusForbidden,
	apperr.NotFound:          http.StatusNotFound,
	apperr.Conflict:          http.StatusConflict,
	apperr.InvalidTransition: http.StatusConflict,
	apperr.Precondition:      http.StatusUnprocessableEntity,
	apperr.Internal:          http.StatusInternalServerError,
}

// fail maps a typed service error onto its HTTP status. Internal causes
// are logged and replaced with a generic message — store details never
// cross the boundary.
func fail(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status := statusByKind[kind]

	msg := err.Error()
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		msg = appErr.Message()
	}
	if kind == apperr.Internal {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		msg = "internal server error"
	}
	c.JSON(status, gin.H{"success": false, "error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
}
