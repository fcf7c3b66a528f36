package job

import (
	"Touchline/internal/model"
	"Touchline/internal/service"
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memQueue struct {
	members map[string]struct{}
}

func newMemQueue(members ...string) *memQueue {
	q := &memQueue{members: map[string]struct{}{}}
	_ = q.Mark(context.Background(), members...)
	return q
}

func (q *memQueue) Mark(_ context.Context, members ...string) error {
	for _, m := range members {
		q.members[m] = struct{}{}
	}
	return nil
}

func (q *memQueue) Drain(context.Context) ([]string, error) {
	out := make([]string, 0, len(q.members))
	for m := range q.members {
		out = append(out, m)
	}
	q.members = map[string]struct{}{}
	sort.Strings(out)
	return out, nil
}

type stubTopicService struct {
	service.TopicService
	fail    map[uint64]bool
	indexed []model.Ref
}

func (s *stubTopicService) Reindex(_ context.Context, ref model.Ref) error {
	if s.fail[ref.ID] {
		return errors.New("es unavailable")
	}
	s.indexed = append(s.indexed, ref)
	return nil
}

type stubRanking struct {
	service.RankingService
	calls int
}

func (s *stubRanking) Sweep(context.Context) (int, int, error) {
	s.calls++
	return 2, 1, nil
}

func TestTopicIndexJob_RequeuesFailures(t *testing.T) {
	queue := newMemQueue("Topic:1", "NbaTopic:2", "Topic:3", "garbage")
	svc := &stubTopicService{fail: map[uint64]bool{3: true}}
	j := NewTopicIndexJob(svc, queue)

	total, success := j.sync(context.Background())
	assert.Equal(t, 4, total)
	assert.Equal(t, 2, success)
	assert.ElementsMatch(t, []model.Ref{
		{Kind: model.KindTopic, ID: 1},
		{Kind: model.KindNbaTopic, ID: 2},
	}, svc.indexed)

	left, err := queue.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Topic:3"}, left)
}

func TestTopicIndexJob_EmptyQueue(t *testing.T) {
	svc := &stubTopicService{}
	total, success := NewTopicIndexJob(svc, newMemQueue()).sync(context.Background())
	assert.Zero(t, total)
	assert.Zero(t, success)
	assert.Empty(t, svc.indexed)
}

func TestRankSweepJob_Run(t *testing.T) {
	ranking := &stubRanking{}
	NewRankSweepJob(ranking).Run()
	assert.Equal(t, 1, ranking.calls)
}
