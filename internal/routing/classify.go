package routing

import "strings"

var (
	assemblyKeywords = []string{
		"국회", "의원", "국정감사", "국감", "회의록", "본회의", "위원회", "법안",
		"예산", "정부", "장관", "대통령", "의장", "국회의원", "발의안",
	}
	recencyKeywords = []string{
		"최근", "현재", "지금", "오늘", "이번", "올해", "2024", "2025",
		"최신", "동향", "트렌드", "뉴스", "소식",
	}
	generalKeywords = []string{
		"설명", "정의", "의미", "개념", "역사", "배경", "원인", "이유",
	}
)

// Scores counts how many keywords of each set occur in a query.
type Scores struct {
	Assembly int
	Recency  int
	General  int
}

// Score counts keyword presence per set. Each keyword counts once, overlapping
// keywords (국회 and 국회의원) count separately.
func Score(query string) Scores {
	q := strings.ToLower(query)
	return Scores{
		Assembly: countPresent(q, assemblyKeywords),
		Recency:  countPresent(q, recencyKeywords),
		General:  countPresent(q, generalKeywords),
	}
}

// Classify picks a strategy from keyword scores:
// two or more assembly keywords, then any recency keyword, then any general keyword.
// Callers pass the expanded query so synonym terms count toward the scores.
func Classify(query string) Strategy {
	s := Score(query)
	switch {
	case s.Assembly >= 2:
		return InternalOnly
	case s.Recency >= 1:
		return ExternalPriority
	case s.General >= 1:
		return HybridBalanced
	default:
		return HybridInternalPriority
	}
}

func countPresent(q string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(q, k) {
			n++
		}
	}
	return n
}
