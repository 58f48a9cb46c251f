package httputil

import (
	"net/http"
	"strings"

	"org-access-registry/internal/platform/pagination"
)

// ParsePagination reads limit, offset and name from the query string. limit defaults to defaultLimit;
// negative values are rejected.
func ParsePagination(r *http.Request, defaultLimit int64) (pagination.Params, error) {
	limit, err := ParseQueryInt64(r, "limit", defaultLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	offset, err := ParseQueryInt64(r, "offset", 0)
	if err != nil {
		return pagination.Params{}, err
	}
	p := pagination.Params{
		Limit:  limit,
		Offset: offset,
		Name:   strings.TrimSpace(ParseQueryString(r, "name", "")),
	}
	if err := p.Validate(); err != nil {
		return pagination.Params{}, err
	}
	return p, nil
}
