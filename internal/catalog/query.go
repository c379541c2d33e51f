package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

const defaultPageSize = int64(20)

// ValidateQuery turns GET /grocery query parameters into a repository
// query. An empty query lists the whole catalog; otherwise at least one of
// category, name or _id must be present.
func ValidateQuery(values url.Values) (repository.GroceryQuery, error) {
	var query repository.GroceryQuery
	if len(values) == 0 {
		return query, nil
	}

	query.Category = strings.TrimSpace(values.Get("category"))
	query.Name = strings.TrimSpace(values.Get("name"))
	rawID := strings.TrimSpace(values.Get("_id"))
	if query.Category == "" && query.Name == "" && rawID == "" {
		return query, response.New(response.QueryError, "No category, name or _id specified in query.")
	}

	if rawID != "" {
		id, err := primitive.ObjectIDFromHex(rawID)
		if err != nil {
			return query, response.Errorf(response.CastError, "Invalid grocery _id: '%s'.", rawID)
		}
		query.ID = &id
	}

	skip, limit, err := parsePagination(values.Get("page"), values.Get("limit"))
	if err != nil {
		return query, err
	}
	query.Skip, query.Limit = skip, limit
	return query, nil
}

// parsePagination maps page and limit to skip and limit. Without either the
// result is unbounded; a page without a limit uses the default page size.
func parsePagination(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(0)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, response.Errorf(response.QueryError, "Invalid page '%s'.", pageStr)
		}
		page = p
		limit = defaultPageSize
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, response.Errorf(response.QueryError, "Invalid limit '%s'.", limitStr)
		}
		limit = l
	}

	if limit == 0 {
		return 0, 0, nil
	}
	return (page - 1) * limit, limit, nil
}
