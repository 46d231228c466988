package agent_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"assembly-rag/internal/agent"
	"assembly-rag/internal/agent/mocks"
	"assembly-rag/internal/answer"
	"assembly-rag/internal/retrieval"
	retrievalmocks "assembly-rag/internal/retrieval/mocks"
	"assembly-rag/internal/routing"
)

func minutesDoc(content string) retrieval.Document {
	return retrieval.Document{
		SourceType: retrieval.SourceInternal,
		Content:    content,
		SourceName: retrieval.SourceNameMinutes,
		Statement: &retrieval.StatementMeta{
			DocumentID:  content,
			SpeakerName: "홍길동",
			Position:    "위원",
			MinutesDate: "2024-10-07",
		},
	}
}

func webDoc(content string) retrieval.Document {
	return retrieval.Document{
		SourceType: retrieval.SourceExternal,
		Content:    content,
		SourceName: retrieval.SourceNameWeb,
		Web:        &retrieval.WebMeta{Title: content},
	}
}

func TestRun_EmptyQuery(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().Merge(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	o := agent.NewOrchestrator(merger, generator, agent.Config{})
	res := o.Run(context.Background(), agent.Request{Query: "   "})

	assert.Equal(t, agent.ReasonNoQuery, res.Reason)
	assert.Equal(t, 1, res.StepCount)
	assert.Equal(t, agent.NoQueryAnswer, res.Answer)
	assert.False(t, res.Success())
}

func TestRun_NoResults(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().Merge(gomock.Any(), gomock.Any(), gomock.Any()).Return(retrieval.MergeResult{})
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	o := agent.NewOrchestrator(merger, generator, agent.Config{})
	res := o.Run(context.Background(), agent.Request{Query: "아무도 모르는 주제"})

	assert.Equal(t, agent.ReasonNoResults, res.Reason)
	assert.Equal(t, agent.NoResultsAnswer, res.Answer)
	assert.Equal(t, 3, res.StepCount)
	assert.Empty(t, res.Context)
}

func TestRun_EndToEndInternalOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	internal := retrievalmocks.NewMockSearcher(ctrl)
	external := retrievalmocks.NewMockSearcher(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	const query = "국정감사에서 나온 주요 이슈는?"

	internal.EXPECT().
		Search(gomock.Any(), retrieval.Request{Query: query, K: 5}).
		Return([]retrieval.Document{minutesDoc("감사 지적 사항"), minutesDoc("예산 집행 문제")})
	external.EXPECT().Search(gomock.Any(), gomock.Any()).Times(0)

	generator.EXPECT().
		Generate(gomock.Any(), query, gomock.Any(), routing.InternalOnly).
		DoAndReturn(func(_ context.Context, _, contextText string, _ routing.Strategy) answer.Result {
			assert.Contains(t, contextText, "국회 회의록 2개, 최신 웹 정보 0개")
			assert.Contains(t, contextText, "국회 회의록에서 찾은 내용입니다.")
			assert.NotContains(t, contextText, "최신 정보입니다.")
			return answer.Result{Answer: "국정감사에서는 예산 집행 문제가 지적되었습니다.", Generated: true}
		}).
		Times(1)

	merger := retrieval.NewMerger(internal, external, time.Second)
	o := agent.NewOrchestrator(merger, generator, agent.Config{})
	res := o.Run(context.Background(), agent.Request{Query: query})

	assert.Equal(t, agent.ReasonSuccess, res.Reason)
	assert.True(t, res.Success())
	assert.Equal(t, routing.InternalOnly, res.Strategy)
	assert.Equal(t, 4, res.StepCount)
	assert.Equal(t, 2, res.InternalCount())
	assert.Equal(t, 0, res.ExternalCount())
	assert.Len(t, res.Documents, 2)
	assert.Equal(t, "국정감사에서는 예산 집행 문제가 지적되었습니다.", res.Answer)
}

func TestRun_ClassifiesRecency(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().
		Merge(gomock.Any(), retrieval.Request{Query: "최근 AI 동향", K: 5}, routing.ExternalPriority).
		Return(retrieval.MergeResult{
			Documents: []retrieval.Document{webDoc("기사")},
			External:  []retrieval.Document{webDoc("기사")},
		})
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), routing.ExternalPriority).
		Return(answer.Result{Answer: "요즘 상황입니다.", Generated: true})

	o := agent.NewOrchestrator(merger, generator, agent.Config{})
	res := o.Run(context.Background(), agent.Request{Query: "최근 AI 동향"})

	assert.Equal(t, agent.ReasonSuccess, res.Reason)
	assert.Equal(t, routing.ExternalPriority, res.Strategy)
	assert.Equal(t, 1, res.ExternalCount())
}

func TestRun_ForcedStrategyAndK(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	filter := retrieval.Filter{AssemblyNumber: "21"}
	merger.EXPECT().
		Merge(gomock.Any(), retrieval.Request{Query: "국회 예산 심사", K: 3, Filter: filter}, routing.HybridBalanced).
		Return(retrieval.MergeResult{
			Documents: []retrieval.Document{minutesDoc("a")},
			Internal:  []retrieval.Document{minutesDoc("a")},
		})
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), routing.HybridBalanced).
		Return(answer.Result{Answer: "ok", Generated: true})

	o := agent.NewOrchestrator(merger, generator, agent.Config{DefaultK: 7})
	res := o.Run(context.Background(), agent.Request{
		Query:    "국회 예산 심사",
		K:        3,
		Strategy: routing.HybridBalanced,
		Filter:   filter,
	})

	assert.Equal(t, routing.HybridBalanced, res.Strategy)
	assert.Equal(t, agent.ReasonSuccess, res.Reason)
}

func TestRun_InvalidForcedStrategyIsClassified(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().
		Merge(gomock.Any(), retrieval.Request{Query: "기본소득", K: 7}, routing.HybridInternalPriority).
		Return(retrieval.MergeResult{})

	o := agent.NewOrchestrator(merger, generator, agent.Config{DefaultK: 7})
	res := o.Run(context.Background(), agent.Request{Query: "기본소득", Strategy: routing.Strategy("bogus")})

	assert.Equal(t, routing.HybridInternalPriority, res.Strategy)
	assert.Equal(t, agent.ReasonNoResults, res.Reason)
}

func TestRun_GenerationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().Merge(gomock.Any(), gomock.Any(), gomock.Any()).Return(retrieval.MergeResult{
		Documents: []retrieval.Document{minutesDoc("a")},
		Internal:  []retrieval.Document{minutesDoc("a")},
	})
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(answer.Result{Answer: answer.Fallback})

	o := agent.NewOrchestrator(merger, generator, agent.Config{})
	res := o.Run(context.Background(), agent.Request{Query: "질문"})

	assert.Equal(t, agent.ReasonGenerationError, res.Reason)
	assert.Equal(t, answer.Fallback, res.Answer)
	assert.Equal(t, 4, res.StepCount)
}

func TestRun_StepLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().Merge(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	o := agent.NewOrchestrator(merger, generator, agent.Config{StepLimit: 1})
	res := o.Run(context.Background(), agent.Request{Query: "질문"})

	assert.Equal(t, agent.ReasonStepLimit, res.Reason)
	assert.Equal(t, 2, res.StepCount)
}

func TestRun_StepLimitAfterSearch(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	merger.EXPECT().Merge(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(retrieval.MergeResult{
			Internal:  []retrieval.Document{minutesDoc("A")},
			Documents: []retrieval.Document{minutesDoc("A")},
		}).Times(1)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	o := agent.NewOrchestrator(merger, generator, agent.Config{StepLimit: 2})
	res := o.Run(context.Background(), agent.Request{Query: "국회 예산 심의"})

	assert.Equal(t, agent.ReasonStepLimit, res.Reason)
	assert.Equal(t, 3, res.StepCount)
	assert.Equal(t, answer.Fallback, res.Answer)
	assert.Len(t, res.Internal, 1)
}

func TestRun_Canceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	merger := mocks.NewMockMerger(ctrl)
	generator := mocks.NewMockGenerator(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := agent.NewOrchestrator(merger, generator, agent.Config{})
	res := o.Run(ctx, agent.Request{Query: "질문"})

	assert.Equal(t, agent.ReasonCanceled, res.Reason)
	assert.Equal(t, 0, res.StepCount)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "entry", agent.StateEntry.String())
	assert.Equal(t, "terminal", agent.StateTerminal.String())
	assert.Equal(t, "unknown", agent.State(42).String())
}
