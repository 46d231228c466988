// Package retrieval runs the internal (meeting minutes) and external (web) searches
// and merges their results under a strategy-specific policy.
package retrieval

import (
	"strings"

	"assembly-rag/internal/vectorstore"
)

// SourceType discriminates where a document came from.
type SourceType string

const (
	SourceInternal        SourceType = "internal"
	SourceExternal        SourceType = "external"
	SourceExternalSummary SourceType = "external_summary"
)

// Display names carried in Document.SourceName.
const (
	SourceNameMinutes = "국회 회의록"
	SourceNameWeb     = "웹 검색"
	SourceNameSummary = "Tavily 요약"
)

// StatementMeta describes the meeting a minutes excerpt was spoken in.
type StatementMeta struct {
	DocumentID     string `json:"document_id"`
	SpeakerName    string `json:"speaker_name"`
	Position       string `json:"position"`
	MinutesDate    string `json:"minutes_date"`
	AssemblyNumber string `json:"assembly_number"`
	SessionNumber  string `json:"session_number"`
	MinutesType    string `json:"minutes_type"`
}

// WebMeta describes a web page or synthesized web answer.
type WebMeta struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Document is one retrieved passage. Exactly one of Statement and Web is set,
// matching SourceType. Content is never empty once past a retriever.
type Document struct {
	SourceType SourceType     `json:"source_type"`
	Content    string         `json:"content"`
	Score      float64        `json:"score"`
	SourceName string         `json:"source_name"`
	Statement  *StatementMeta `json:"statement,omitempty"`
	Web        *WebMeta       `json:"web,omitempty"`
}

// IsInternal reports whether the document comes from the minutes index.
func (d Document) IsInternal() bool {
	return d.SourceType == SourceInternal
}

// CountBySource counts internal and external (including summary) documents.
func CountBySource(docs []Document) (internal, external int) {
	for _, d := range docs {
		if d.IsInternal() {
			internal++
		} else {
			external++
		}
	}
	return internal, external
}

// Filter narrows internal search to exact metadata matches. Zero fields are ignored.
type Filter struct {
	AssemblyNumber string `json:"assembly_number,omitempty"`
	MinutesType    string `json:"minutes_type,omitempty"`
	SpeakerName    string `json:"speaker_name,omitempty"`
}

// Map converts the filter into vector-store payload filters; nil when empty.
func (f Filter) Map() map[string]any {
	m := make(map[string]any, 3)
	if v := strings.TrimSpace(f.AssemblyNumber); v != "" {
		m[vectorstore.FieldAssemblyNumber] = v
	}
	if v := strings.TrimSpace(f.MinutesType); v != "" {
		m[vectorstore.FieldMinutesType] = v
	}
	if v := strings.TrimSpace(f.SpeakerName); v != "" {
		m[vectorstore.FieldSpeakerName] = v
	}
	if len(m) == 0 {
		return nil
	}
	return m
}

// Request is a single retrieval call.
type Request struct {
	Query  string
	K      int
	Filter Filter
}

func (r Request) withK(k int) Request {
	r.K = k
	return r
}

// keepValid drops documents without content or source type.
func keepValid(docs []Document) []Document {
	out := docs[:0:0]
	for _, d := range docs {
		if d.SourceType == "" || strings.TrimSpace(d.Content) == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}
