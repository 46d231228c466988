package assemble

import (
	"fmt"
	"strings"

	"assembly-rag/internal/retrieval"
)

// Sources lists the documents an answer drew on, minutes first then web pages.
// It returns an empty string for no documents.
func Sources(docs []retrieval.Document) string {
	var internal, external []retrieval.Document
	for _, d := range docs {
		if d.IsInternal() {
			internal = append(internal, d)
		} else {
			external = append(external, d)
		}
	}
	if len(internal) == 0 && len(external) == 0 {
		return ""
	}

	var b strings.Builder
	if len(internal) > 0 {
		b.WriteString("국회 회의록:\n")
		for i, d := range internal {
			var meta retrieval.StatementMeta
			if d.Statement != nil {
				meta = *d.Statement
			}
			fmt.Fprintf(&b, "  %d. %s - %s\n", i+1, Speaker(meta), defaultDates.Format(meta.MinutesDate))
		}
	}
	if len(external) > 0 {
		b.WriteString("웹 검색 결과:\n")
		for i, d := range external {
			title := untitled
			if d.Web != nil && d.Web.Title != "" {
				title = d.Web.Title
			}
			fmt.Fprintf(&b, "  %d. %s (%s)\n", i+1, title, orDefault(d.SourceName, retrieval.SourceNameWeb))
		}
	}
	return b.String()
}
