package service

import (
	"Touchline/internal/model"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/repository"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRanking_HotGrowsWithComments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createMatch(t, "m-hot")

	prev := -1.0
	for i := 0; i < 12; i++ {
		match, err := e.matchRepo.Get(ctx, ref.ID, repository.ScopeActive)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, match.Hot, prev)
		prev = match.Hot
		_, err = e.engagement.AddComment(ctx, e.alice.ID, ref, "again")
		require.NoError(t, err)
	}
}

func TestRanking_SweepRetriesPending(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createTopic(t, e.alice, model.SectionSoccer, "sweep")

	require.NoError(t, e.db.Table("topics").Where("id = ?", ref.ID).Update("hot", 0).Error)
	require.NoError(t, e.rankDirty.Mark(ctx, ref.String(), "garbage", model.NewRef(model.KindMatch, 404).String()))

	total, success, err := e.ranking.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, success)

	topic := e.topic(t, ref)
	assert.InDelta(t, model.CalculateHot(0, topic.CreatedAt), topic.Hot, 1e-6)

	total, _, err = e.ranking.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRanking_TouchIgnoresUnrankedKinds(t *testing.T) {
	e := newTestEnv(t)
	assert.NoError(t, e.ranking.Touch(context.Background(), model.NewRef(model.KindComment, 1)))
	assert.NoError(t, e.ranking.Touch(context.Background(), model.NewRef(model.KindTopic, 404)))
}

type brokenQueue struct{}

func (brokenQueue) Mark(context.Context, ...string) error { return errors.New("redis down") }
func (brokenQueue) Drain(context.Context) ([]string, error) { return nil, errors.New("redis down") }

func TestRanking_TouchQueuesFailedUpdate(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createMatch(t, "m-gone")
	require.NoError(t, e.db.Exec("DROP TABLE matches").Error)

	require.NoError(t, e.ranking.Touch(ctx, ref))
	assert.Equal(t, []string{ref.String()}, e.drain(t, e.rankDirty))

	lossy := NewRankingService(e.registry, e.topics, e.userRepo, brokenQueue{}, nil)
	err := lossy.Touch(ctx, ref)
	require.Error(t, err)
	assert.ErrorContains(t, err, "queue "+ref.String()+" for sweep")
}

func TestRanking_HotFeedIsCached(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	e.createTopic(t, e.alice, model.SectionSoccer, "soccer one")
	e.createTopic(t, e.alice, model.SectionNBA, "nba one")

	feed, err := e.ranking.HotFeed(ctx, 10)
	require.NoError(t, err)
	require.Len(t, feed.Topics, 1)
	require.Len(t, feed.NbaTopics, 1)
	assert.Equal(t, "soccer one", feed.Topics[0].Title)

	n, err := e.rdb.Exists(ctx, consts.HotFeedKey+":10").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	e.createTopic(t, e.alice, model.SectionSoccer, "soccer two")
	cached, err := e.ranking.HotFeed(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, cached.Topics, 1)
}
