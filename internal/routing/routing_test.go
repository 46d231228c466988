package routing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "first key wins",
			query: "저출산 문제",
			want:  "저출산 문제 저출생",
		},
		{
			name:  "key order beats position in query",
			query: "환경 교육 정책",
			want:  "환경 교육 정책 교육 학교 대학 학생",
		},
		{
			name:  "audit expands with short form",
			query: "국정감사에서 나온 주요 이슈는?",
			want:  "국정감사에서 나온 주요 이슈는? 국정감사 국감",
		},
		{
			name:  "no key",
			query: "오늘 날씨",
			want:  "오늘 날씨",
		},
		{
			name:  "empty",
			query: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.query))
		})
	}
}

func TestExpand_SingleExpansion(t *testing.T) {
	got := Expand("저출산 문제")
	assert.Equal(t, 1, strings.Count(got, "저출생"), "only the first matching key may expand")
	assert.Equal(t, got, Expand("저출산 문제"), "expansion is deterministic")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Strategy
	}{
		{
			name:  "two assembly keywords",
			query: "국회의원 법안 발의 현황",
			want:  InternalOnly,
		},
		{
			name:  "assembly beats recency",
			query: "최근 국회 본회의 안건",
			want:  InternalOnly,
		},
		{
			name:  "single assembly keyword with recency",
			query: "최근 정부 발표",
			want:  ExternalPriority,
		},
		{
			name:  "year counts as recency",
			query: "2025 출생률 통계",
			want:  ExternalPriority,
		},
		{
			name:  "general keyword",
			query: "탄소중립의 개념",
			want:  HybridBalanced,
		},
		{
			name:  "nothing matches",
			query: "청년 주거 지원",
			want:  HybridInternalPriority,
		},
		{
			name:  "expanded audit query",
			query: Expand("국정감사에서 나온 주요 이슈는?"),
			want:  InternalOnly,
		},
		{
			name:  "recency keyword next to latin text",
			query: "AI 트렌드",
			want:  ExternalPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.query))
		})
	}
}

func TestScore_OverlappingKeywordsCountSeparately(t *testing.T) {
	s := Score("국회의원")
	assert.Equal(t, 3, s.Assembly, "국회, 의원 and 국회의원 each count once")
	assert.Zero(t, s.Recency)
	assert.Zero(t, s.General)

	assert.Equal(t, 1, Score("국회 국회 국회").Assembly, "repeated keyword counts once")
}

func TestStrategy(t *testing.T) {
	for _, s := range Strategies {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, s.String(), s.Label(), "%s should have a display name", s)
		assert.NotEqual(t, defaultDescription, s.Description())

		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	assert.Equal(t, "국회 회의록 전용", InternalOnly.Label())
	assert.Equal(t, "국회 회의록만을 참고하여", InternalOnly.Description())
	assert.False(t, InternalOnly.UsesExternal())
	assert.True(t, HybridBalanced.UsesExternal())

	unknown := Strategy("keyword_only")
	assert.False(t, unknown.Valid())
	assert.Equal(t, "keyword_only", unknown.Label())
	assert.Equal(t, defaultDescription, unknown.Description())

	_, err := ParseStrategy("keyword_only")
	assert.Error(t, err)
}
