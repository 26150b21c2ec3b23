package catalog

import (
	"fmt"

	"github.com/magnetlabs/magnet/internal/errors"
	"github.com/magnetlabs/magnet/internal/filter"
)

// Filter keys accepted by FilterServers.
const (
	// FilterKeyQuery matches a substring of the identifier, title or description.
	FilterKeyQuery = "query"

	// FilterKeyTags matches servers carrying every comma-separated tag.
	FilterKeyTags = "tags"

	// FilterKeyCreator matches the catalog creator exactly, ignoring case.
	FilterKeyCreator = "creator"
)

func serverMatchers() filter.Matchers[FrontendServer] {
	return filter.Matchers[FrontendServer]{
		FilterKeyQuery: filter.ContainsAny(
			func(s FrontendServer) string { return s.ID },
			func(s FrontendServer) string { return s.Title },
			func(s FrontendServer) string { return s.Description },
		),
		FilterKeyTags:    filter.HasAll(func(s FrontendServer) []string { return s.Tags }),
		FilterKeyCreator: filter.Equals(func(s FrontendServer) string { return s.Creator }),
	}
}

// FilterServers keeps the servers matching every filter, in catalog order.
// Filters with an empty value are ignored.
func FilterServers(servers []FrontendServer, filters map[string]string) ([]FrontendServer, error) {
	active := make(map[string]string, len(filters))
	for k, v := range filters {
		if filter.NormalizeString(v) != "" {
			active[k] = v
		}
	}
	if len(active) == 0 {
		return servers, nil
	}

	got, err := filter.Apply(servers, active, serverMatchers())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrBadRequest, err)
	}
	return got, nil
}
