package canvas

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/skematic/wirely"
)

const (
	defaultSearchLimit = 8
	maxSearchLimit     = 20
)

// SearchArgs are the arguments of the component_search tool.
type SearchArgs struct {
	Query string `json:"query" description:"Free-text description of the component to find, e.g. '555 timer' or 'npn transistor'"`
	Limit int    `json:"limit,omitempty" description:"Maximum number of results (default 8, at most 20)"`
}

// Validate implements wirely.Validatable.
func (a SearchArgs) Validate() error {
	if strings.TrimSpace(a.Query) == "" {
		return errors.New("query must not be empty")
	}
	if a.Limit < 0 {
		return errors.New("limit must not be negative")
	}
	return nil
}

// NewSearchTool builds the component_search tool over a parts catalog.
// Candidates are scored per query keyword: 3 for a name match, 2 for a
// description match, 1 for a keyword-field match; only candidates with a
// positive score are returned, best first, truncated to the limit.
func NewSearchTool(catalog Catalog) (wirely.Tool, error) {
	return wirely.NewTool(
		"component_search",
		"Search the parts library for components matching a free-text query.",
		func(_ context.Context, args SearchArgs) (wirely.ToolResult, error) {
			limit := args.Limit
			if limit == 0 {
				limit = defaultSearchLimit
			}
			if limit > maxSearchLimit {
				limit = maxSearchLimit
			}

			ranked := rankRecords(catalog.Search(args.Query), queryKeywords(args.Query))
			if len(ranked) > limit {
				ranked = ranked[:limit]
			}
			return wirely.ToolResult{
				Success: true,
				Message: fmt.Sprintf("found %d matching components", len(ranked)),
				Data:    ranked,
			}, nil
		},
	)
}

// queryKeywords lower-cases and splits the query on whitespace.
func queryKeywords(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// rankRecords scores each record against the query keywords and returns the
// positively-scored ones in descending score order. The sort is stable so
// equal scores keep catalog order.
func rankRecords(records []Record, keywords []string) []Record {
	type scored struct {
		rec   Record
		score int
	}
	matches := make([]scored, 0, len(records))
	for _, rec := range records {
		name := strings.ToLower(rec.Name)
		desc := strings.ToLower(rec.Description)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(name, kw) {
				score += 3
			}
			if strings.Contains(desc, kw) {
				score += 2
			}
			for _, field := range rec.Keywords {
				if strings.Contains(strings.ToLower(field), kw) {
					score++
					break
				}
			}
		}
		if score > 0 {
			matches = append(matches, scored{rec: rec, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	out := make([]Record, len(matches))
	for i, m := range matches {
		out[i] = m.rec
	}
	return out
}
