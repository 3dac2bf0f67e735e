package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Pagination contains information about the pagination of list responses.
type Pagination struct {
	Count  int   `json:"count"`  // The amount of records returned in this response
	Offset uint  `json:"offset"` // The offset for the first record returned
	Limit  int   `json:"limit"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total"`  // The total number of resources matching the query
}

// parseID parses the "id" URI parameter of the request.
func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errInvalidUUID
	}

	return id, nil
}

// listLimit returns the limit for a list request, defaulting to 50.
// A negative limit disables the limit.
func listLimit(limit *int) int {
	if limit == nil {
		return 50
	}

	return *limit
}
