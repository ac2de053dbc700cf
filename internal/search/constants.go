// Package search holds the field constants and query patterns shared by the
// search surfaces.
package search

import (
	"regexp"
	"strconv"
	"strings"
)

// Fields used for highlighting in search results, per search surface.
var (
	OpinionHLFields = []string{
		"caseName",
		"citation",
		"court_citation_string",
		"docketNumber",
		"judge",
		"lexisCite",
		"neutralCite",
		"suitNature",
		"text",
	}

	RECAPHLFields = []string{
		"assignedTo",
		"assignedTo.exact",
		"caseName",
		"caseName.exact",
		"cause",
		"cause.exact",
		"court_citation_string",
		"docketNumber",
		"docketNumber.exact",
		"juryDemand",
		"juryDemand.exact",
		"referredTo",
		"referredTo.exact",
		"short_description",
		"suitNature",
		"suitNature.exact",
		"text",
	}

	RECAPChildHLFields = []string{
		"short_description",
		"short_description.exact",
		"description",
		"description.exact",
		"document_type",
		"document_type.exact",
		"document_number",
		"attachment_number",
	}

	OralArgumentHLFields = []string{
		"caseName",
		"caseName.exact",
		"judge",
		"judge.exact",
		"docketNumber",
		"docketNumber.exact",
		"court_citation_string",
		"text",
		"text.exact",
	}

	AlertsOralArgumentHLFields = []string{
		"text",
		"text.exact",
		"docketNumber",
		"docketNumber.exact",
		"judge",
		"judge.exact",
	}

	PeopleHLFields = []string{
		"name",
		"name.exact",
		"dob_city",
		"dob_state_id",
		"text",
		"text.exact",
	}
)

// HTML tags wrapped around highlighted terms.
const (
	SearchHLTag = "mark"
	AlertsHLTag = "strong"
)

// RelatedPattern matches a "related:" prefix query: one or more
// comma-separated integer IDs, bounded by whitespace or string edges.
var RelatedPattern = regexp.MustCompile(
	`(^|\s)(related:((?:[0-9]+)(?:,[0-9]+)*))($|\s)`,
)

// ParseRelated extracts the opinion IDs of a related-items query. The
// second result is false when the query carries no related: prefix.
func ParseRelated(query string) ([]int64, bool) {
	m := RelatedPattern.FindStringSubmatch(query)
	if m == nil {
		return nil, false
	}

	parts := strings.Split(m[3], ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
