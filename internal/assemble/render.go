// Package assemble turns retrieved documents into the prompt context and source listings.
package assemble

import (
	"fmt"
	"strings"

	"assembly-rag/internal/retrieval"
)

// EmptyContext is the context used when nothing was retrieved.
const EmptyContext = "관련된 정보를 찾을 수 없습니다."

const (
	unknownSpeaker = "발언자 미상"
	unknownField   = "정보없음"
	defaultMeeting = "회의"
	untitled       = "제목 없음"
)

var defaultDates = NewDateFormatter(DefaultDateCacheSize)

// Render builds the numbered, listener-oriented context block for docs.
// Dates go through the package date formatter.
func Render(docs []retrieval.Document) string {
	return RenderWith(docs, defaultDates)
}

// RenderWith is Render with an explicit date formatter.
func RenderWith(docs []retrieval.Document, dates *DateFormatter) string {
	if len(docs) == 0 {
		return EmptyContext
	}

	parts := make([]string, 0, len(docs))
	internal, external := 0, 0
	for i, doc := range docs {
		n := i + 1
		switch doc.SourceType {
		case retrieval.SourceInternal:
			internal++
			parts = append(parts, renderStatement(n, doc, dates))
		case retrieval.SourceExternal, retrieval.SourceExternalSummary:
			external++
			parts = append(parts, renderWeb(n, doc))
		default:
			parts = append(parts, fmt.Sprintf("\n%d번째 정보:\n내용: %s\n", n, doc.Content))
		}
	}

	summary := fmt.Sprintf("\n검색 결과 요약: 국회 회의록 %d개, 최신 웹 정보 %d개를 찾았습니다.\n", internal, external)
	return summary + strings.Join(parts, "\n")
}

func renderStatement(n int, doc retrieval.Document, dates *DateFormatter) string {
	var meta retrieval.StatementMeta
	if doc.Statement != nil {
		meta = *doc.Statement
	}
	return fmt.Sprintf("\n%d번째 정보 - 국회 회의록에서 찾은 내용입니다.\n발언자: %s\n회의일: %s\n회의: 제%s대 국회 제%s회 %s\n내용: %s\n",
		n,
		Speaker(meta),
		dates.Format(meta.MinutesDate),
		orDefault(meta.AssemblyNumber, unknownField),
		orDefault(meta.SessionNumber, unknownField),
		orDefault(meta.MinutesType, defaultMeeting),
		doc.Content,
	)
}

func renderWeb(n int, doc retrieval.Document) string {
	title := untitled
	if doc.Web != nil && doc.Web.Title != "" {
		title = doc.Web.Title
	}
	return fmt.Sprintf("\n%d번째 정보 - %s에서 찾은 최신 정보입니다.\n제목: %s\n내용: %s\n",
		n,
		orDefault(doc.SourceName, retrieval.SourceNameWeb),
		title,
		doc.Content,
	)
}

// Speaker renders "name position", or the name alone when the position is unknown.
func Speaker(meta retrieval.StatementMeta) string {
	name := orDefault(meta.SpeakerName, unknownSpeaker)
	if meta.Position == "" {
		return name
	}
	return name + " " + meta.Position
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
