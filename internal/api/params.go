package api

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"company_backend/internal/domain"
)

// PathUUID binds the named path parameter as a UUID.
// A malformed value is reported as ErrNotFound: the route does not match a resource.
func PathUUID(c *gin.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return id, fmt.Errorf("%w: invalid %s %q", domain.ErrNotFound, name, c.Param(name))
	}
	return id, nil
}

// LimitOffset reads limit/offset query parameters.
// ok is false when the client did not ask for pagination.
func LimitOffset(c *gin.Context, maxLimit int) (limit, offset int, ok bool, err error) {
	rawLimit, hasLimit := c.GetQuery("limit")
	if !hasLimit {
		return 0, 0, false, nil
	}
	limit, err = strconv.Atoi(rawLimit)
	if err != nil || limit <= 0 {
		return 0, 0, true, fmt.Errorf("%w: limit must be a positive integer", domain.ErrValidation)
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if rawOffset := c.Query("offset"); rawOffset != "" {
		offset, err = strconv.Atoi(rawOffset)
		if err != nil || offset < 0 {
			return 0, 0, true, fmt.Errorf("%w: offset must be a non-negative integer", domain.ErrValidation)
		}
	}
	return limit, offset, true, nil
}
