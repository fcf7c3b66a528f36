package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

func toTopicDTO(t *model.Topic) *dto.TopicDTO {
	d := &dto.TopicDTO{}
	_ = copier.Copy(d, t)
	d.Kind = string(t.Section.Kind())
	d.Section = t.Section.String()
	return d
}

func toCategoryDTO(c *model.Category) *dto.CategoryDTO {
	if c == nil {
		return nil
	}
	d := &dto.CategoryDTO{}
	_ = copier.Copy(d, c)
	d.Group = int8(c.Group)
	return d
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	d := &dto.CommentDTO{}
	_ = copier.Copy(d, c)
	d.CommentableType = string(c.CommentableType)
	return d
}

func toMatchDTO(m *model.Match) *dto.MatchDTO {
	d := &dto.MatchDTO{}
	_ = copier.Copy(d, m)
	return d
}

// ToUserDTO 用户公开信息
func ToUserDTO(u *model.User) *dto.UserDTO {
	d := &dto.UserDTO{}
	_ = copier.Copy(d, u)
	return d
}

func newPage(page, perPage int, total int64) dto.PageDTO {
	if page < 1 {
		page = 1
	}
	return dto.PageDTO{Page: page, TotalPages: util.TotalPages(total, perPage), Total: total}
}

// usernames 批量取用户名，查不到的用户留空
func usernames(ctx context.Context, userRepo repository.UserRepo, ids []uint64) map[uint64]string {
	names := make(map[uint64]string, len(ids))
	if len(ids) == 0 {
		return names
	}
	users, err := userRepo.GetUsersByIds(ctx, ids)
	if err != nil {
		return names
	}
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names
}

// likedSet 浏览者点赞过的 id 集合，未登录时为空
func likedSet(ctx context.Context, likeRepo repository.LikeRepo, viewerID uint64, kind model.Kind, ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool)
	if viewerID == 0 || len(ids) == 0 {
		return set
	}
	liked, err := likeRepo.FilterLiked(ctx, viewerID, kind, ids)
	if err != nil {
		return set
	}
	for _, id := range liked {
		set[id] = true
	}
	return set
}

// topicDTOs 转换并补全作者与点赞状态，列表中去掉正文
func topicDTOs(ctx context.Context, userRepo repository.UserRepo, likeRepo repository.LikeRepo, viewerID uint64, topics []*model.Topic, withBody bool) []*dto.TopicDTO {
	res := make([]*dto.TopicDTO, 0, len(topics))
	if len(topics) == 0 {
		return res
	}
	userIDs := make([]uint64, 0, len(topics))
	ids := make([]uint64, 0, len(topics))
	for _, t := range topics {
		userIDs = append(userIDs, t.UserID)
		ids = append(ids, t.ID)
	}
	names := usernames(ctx, userRepo, userIDs)
	liked := likedSet(ctx, likeRepo, viewerID, topics[0].Section.Kind(), ids)
	for _, t := range topics {
		d := toTopicDTO(t)
		d.Username = names[t.UserID]
		d.Liked = liked[t.ID]
		if !withBody {
			d.Body = ""
		}
		res = append(res, d)
	}
	return res
}

func commentDTOs(ctx context.Context, userRepo repository.UserRepo, likeRepo repository.LikeRepo, viewerID uint64, comments []*model.Comment) []*dto.CommentDTO {
	res := make([]*dto.CommentDTO, 0, len(comments))
	userIDs := make([]uint64, 0, len(comments))
	ids := make([]uint64, 0, len(comments))
	for _, c := range comments {
		userIDs = append(userIDs, c.UserID)
		ids = append(ids, c.ID)
	}
	names := usernames(ctx, userRepo, userIDs)
	liked := likedSet(ctx, likeRepo, viewerID, model.KindComment, ids)
	for _, c := range comments {
		d := toCommentDTO(c)
		d.Username = names[c.UserID]
		d.Liked = liked[c.ID]
		res = append(res, d)
	}
	return res
}

func matchDTOs(ctx context.Context, likeRepo repository.LikeRepo, viewerID uint64, matches []*model.Match) []*dto.MatchDTO {
	res := make([]*dto.MatchDTO, 0, len(matches))
	ids := make([]uint64, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.ID)
	}
	liked := likedSet(ctx, likeRepo, viewerID, model.KindMatch, ids)
	for _, m := range matches {
		d := toMatchDTO(m)
		d.Liked = liked[m.ID]
		res = append(res, d)
	}
	return res
}

// reorder 按给定 id 顺序重排查询结果，缺失的跳过
func reorder[T any](ids []uint64, items []T, idOf func(T) uint64) []T {
	byID := make(map[uint64]T, len(items))
	for _, it := range items {
		byID[idOf(it)] = it
	}
	res := make([]T, 0, len(items))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			res = append(res, it)
		}
	}
	return res
}
