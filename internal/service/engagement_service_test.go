package service

import (
	"Touchline/internal/model"
	"Touchline/internal/repository"
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagement_LikeIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createTopic(t, e.alice, model.SectionSoccer, "likes")

	res, err := e.engagement.Like(ctx, e.bob.ID, ref)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.Equal(t, 1, res.LikesCount)

	res, err = e.engagement.Like(ctx, e.bob.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, 1, res.LikesCount)

	liked, err := e.engagement.IsLiked(ctx, e.bob.ID, ref)
	require.NoError(t, err)
	assert.True(t, liked)

	res, err = e.engagement.Unlike(ctx, e.bob.ID, ref)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.Equal(t, 0, res.LikesCount)

	res, err = e.engagement.Unlike(ctx, e.bob.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, 0, res.LikesCount)

	liked, err = e.engagement.IsLiked(ctx, 0, ref)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestEngagement_LikeMissingTarget(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.engagement.Like(context.Background(), e.bob.ID, model.NewRef(model.KindMatch, 404))
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEngagement_AddCommentValidation(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createTopic(t, e.alice, model.SectionSoccer, "rules")

	_, err := e.engagement.AddComment(ctx, e.bob.ID, ref, "  <script>alert(1)</script> ")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Messages)
	assert.Equal(t, 0, e.topic(t, ref).CommentsCount)

	_, err = e.engagement.AddComment(ctx, e.bob.ID, model.NewRef(model.KindComment, 1), "nested")
	assert.ErrorIs(t, err, ErrNotCommentable)

	_, err = e.engagement.AddComment(ctx, e.bob.ID, model.NewRef(model.KindTopic, 9999), "orphan")
	assert.ErrorIs(t, err, ErrEntityNotFound)

	_, err = e.lifecycle.Trash(ctx, e.alice, ref)
	require.NoError(t, err)
	_, err = e.engagement.AddComment(ctx, e.bob.ID, ref, "too late")
	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestEngagement_CommentPages(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createMatch(t, "m-pages")

	var ids []uint64
	for i := 1; i <= 7; i++ {
		c, err := e.engagement.AddComment(ctx, e.alice.ID, ref, "comment "+strconv.Itoa(i))
		require.NoError(t, err)
		assert.Equal(t, (i-1)/3+1, c.Page)
		ids = append(ids, c.ID)
	}

	page, err := e.engagement.ListComments(ctx, e.bob.ID, ref, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Comments, 1)
	assert.Equal(t, ids[6], page.Comments[0].ID)
	assert.Equal(t, "alice", page.Comments[0].Username)

	_, err = e.lifecycle.Trash(ctx, e.admin, model.NewRef(model.KindComment, ids[0]))
	require.NoError(t, err)
	p, err := e.engagement.PageOf(ctx, &model.Comment{ID: ids[3], CommentableType: model.KindMatch, CommentableID: ref.ID}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, p)

	detail, err := e.matchSvc.Get(ctx, 0, ref.ID, ids[6], 1)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Comments.Page)
}

func TestEngagement_UpdateComment(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createTopic(t, e.alice, model.SectionSoccer, "edit")
	c, err := e.engagement.AddComment(ctx, e.bob.ID, ref, "first draft")
	require.NoError(t, err)

	_, err = e.engagement.UpdateComment(ctx, e.alice, c.ID, "hijack")
	assert.ErrorIs(t, err, UnauthorizedError)

	updated, err := e.engagement.UpdateComment(ctx, e.bob, c.ID, "<b>final</b>")
	require.NoError(t, err)
	assert.Equal(t, "<b>final</b>", updated.Body)

	stored, err := e.commentRepo.Get(ctx, c.ID, repository.ScopeActive)
	require.NoError(t, err)
	assert.Equal(t, "<b>final</b>", stored.Body)

	_, err = e.engagement.UpdateComment(ctx, e.admin, 9999, "x")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestEngagement_UserAndLikedComments(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	ref := e.createTopic(t, e.alice, model.SectionSoccer, "lists")
	c1, err := e.engagement.AddComment(ctx, e.bob.ID, ref, "one")
	require.NoError(t, err)
	c2, err := e.engagement.AddComment(ctx, e.bob.ID, ref, "two")
	require.NoError(t, err)

	mine, err := e.engagement.ListUserComments(ctx, e.bob.ID, 1)
	require.NoError(t, err)
	require.Len(t, mine.Comments, 2)
	assert.Equal(t, c2.ID, mine.Comments[0].ID)

	_, err = e.engagement.Like(ctx, e.alice.ID, model.NewRef(model.KindComment, c1.ID))
	require.NoError(t, err)
	liked, err := e.engagement.LikedComments(ctx, e.alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, liked.Comments, 1)
	assert.Equal(t, c1.ID, liked.Comments[0].ID)
	assert.True(t, liked.Comments[0].Liked)
	assert.Equal(t, 1, liked.Comments[0].LikesCount)
}
