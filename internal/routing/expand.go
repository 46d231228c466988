package routing

import "strings"

type expansion struct {
	key   string
	terms string
}

// Table order is match order; the first key found in the query wins.
var expansions = []expansion{
	{"저출산", "저출생"},
	{"저출생", "저출생 저출산 출생률"},
	{"기후변화", "기후변화 환경 탄소중립"},
	{"부동산", "부동산 주택 임대료"},
	{"교육", "교육 학교 대학 학생"},
	{"의료", "의료 병원 건강보험"},
	{"복지", "복지 사회보장 연금"},
	{"경제", "경제 일자리 고용"},
	{"국정감사", "국정감사 국감"},
	{"예산", "예산 재정 세금"},
	{"환경", "환경 기후변화 탄소중립 친환경"},
	{"발의안", "발의안 법안 의안"},
}

// Expand appends the synonym terms of the first matching key to query.
// At most one expansion is applied; queries without a key are returned unchanged.
func Expand(query string) string {
	for _, e := range expansions {
		if strings.Contains(query, e.key) {
			return query + " " + e.terms
		}
	}
	return query
}
