package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"garage/internal/application/serviceorder/usecases"
	"garage/internal/shared/authorization"
	"garage/internal/shared/biztime"
	"garage/internal/shared/constants"
	"garage/internal/shared/errors"
)

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c *gin.Context, name, label string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid %s", label))
	}
	return uint(id), nil
}

// parseOptionalUintQuery returns nil when key is absent.
func parseOptionalUintQuery(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return nil, errors.NewFieldValidationError(key, fmt.Sprintf("%s must be a positive integer", key))
	}
	v := uint(n)
	return &v, nil
}

func parseOptionalFloatQuery(c *gin.Context, key string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.NewFieldValidationError(key, fmt.Sprintf("%s must be a number", key))
	}
	return &f, nil
}

func parseBoolQuery(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(c.Query(key))
	return b
}

// parseDateTimeField converts an optional request timestamp.
func parseDateTimeField(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := biztime.ParseDateTime(strings.TrimSpace(*raw))
	if err != nil {
		return nil, errors.NewFieldValidationError(field, fmt.Sprintf("%s must be a date or date-time", field))
	}
	return &t, nil
}

// actorFromContext reads the identity stored by the auth middleware.
func actorFromContext(c *gin.Context) usecases.Actor {
	actor := usecases.Actor{
		UserID: c.GetUint(constants.ContextKeyUserID),
		Role:   authorization.UserRole(c.GetString(constants.ContextKeyUserRole)),
	}
	if v, ok := c.Get(constants.ContextKeyServiceCenterID); ok {
		if id, ok := v.(uint); ok {
			actor.ServiceCenterID = &id
		}
	}
	return actor
}
