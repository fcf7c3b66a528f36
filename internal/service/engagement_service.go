package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
	"unicode/utf8"
)

const notificationSnippetLen = 100

type EngagementService interface {
	Like(ctx context.Context, userID uint64, ref model.Ref) (*dto.LikeDTO, error)
	Unlike(ctx context.Context, userID uint64, ref model.Ref) (*dto.LikeDTO, error)
	IsLiked(ctx context.Context, userID uint64, ref model.Ref) (bool, error)

	AddComment(ctx context.Context, userID uint64, parent model.Ref, body string) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, actor *model.User, commentID uint64, body string) (*dto.CommentDTO, error)
	// PageOf 评论所在页码，从 1 开始
	PageOf(ctx context.Context, comment *model.Comment, perPage int) (int, error)
	ListComments(ctx context.Context, viewerID uint64, parent model.Ref, page int) (*dto.CommentPageDTO, error)
	ListUserComments(ctx context.Context, userID uint64, page int) (*dto.CommentPageDTO, error)
	LikedComments(ctx context.Context, userID uint64, page int) (*dto.CommentPageDTO, error)
	AdminListComments(ctx context.Context, scope repository.Scope, page int) (*dto.CommentPageDTO, error)
}

type engagementServiceImpl struct {
	registry         *repository.Registry
	commentRepo      repository.CommentRepo
	likeRepo         repository.LikeRepo
	userRepo         repository.UserRepo
	notificationRepo mongo.NotificationRepo
	ranking          RankingService
	perPage          int
}

func NewEngagementService(
	registry *repository.Registry,
	commentRepo repository.CommentRepo,
	likeRepo repository.LikeRepo,
	userRepo repository.UserRepo,
	notificationRepo mongo.NotificationRepo,
	ranking RankingService,
	perPage int,
) EngagementService {
	return &engagementServiceImpl{
		registry:         registry,
		commentRepo:      commentRepo,
		likeRepo:         likeRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		ranking:          ranking,
		perPage:          perPage,
	}
}

// Like 已点过赞时直接返回当前状态，不会报重复错误
func (s *engagementServiceImpl) Like(ctx context.Context, userID uint64, ref model.Ref) (*dto.LikeDTO, error) {
	if !ref.Kind.Likeable() {
		return nil, ErrNotLikeable
	}
	if _, _, err := s.likeRepo.FindOrCreate(ctx, userID, ref); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	return s.likeState(ctx, ref, true)
}

// Unlike 没有点过赞时什么也不做
func (s *engagementServiceImpl) Unlike(ctx context.Context, userID uint64, ref model.Ref) (*dto.LikeDTO, error) {
	if !ref.Kind.Likeable() {
		return nil, ErrNotLikeable
	}
	if _, err := s.likeRepo.Delete(ctx, userID, ref); err != nil {
		return nil, err
	}
	return s.likeState(ctx, ref, false)
}

func (s *engagementServiceImpl) likeState(ctx context.Context, ref model.Ref, liked bool) (*dto.LikeDTO, error) {
	entity, err := s.registry.Find(ctx, ref, repository.ScopeWithTrashed)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}
	res := &dto.LikeDTO{Type: string(ref.Kind), ID: ref.ID, Liked: liked}
	if l, ok := entity.(model.Likeable); ok {
		res.LikesCount = l.LikeTotal()
	}
	return res, nil
}

func (s *engagementServiceImpl) IsLiked(ctx context.Context, userID uint64, ref model.Ref) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	return s.likeRepo.Exists(ctx, userID, ref)
}

func (s *engagementServiceImpl) AddComment(ctx context.Context, userID uint64, parent model.Ref, body string) (*dto.CommentDTO, error) {
	if !parent.Kind.Commentable() {
		return nil, ErrNotCommentable
	}
	body = strings.TrimSpace(util.Sanitize(body))
	v := &validator{}
	v.check(body != "", "评论内容不能为空")
	v.check(userID > 0, "评论用户不能为空")
	if err := v.err(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserById(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		UserID:          userID,
		CommentableType: parent.Kind,
		CommentableID:   parent.ID,
		Body:            body,
	}
	if err = s.commentRepo.Create(ctx, comment); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrEntityNotFound
		}
		return nil, err
	}

	if err := s.ranking.Touch(ctx, parent); err != nil {
		log.ErrorContext(ctx, "hot refresh lost", "ref", parent.String(), "err", err)
	}
	s.notify(ctx, user, comment)

	d := toCommentDTO(comment)
	d.Username = user.Username
	if page, err := s.PageOf(ctx, comment, s.perPage); err == nil {
		d.Page = page
	}
	return d, nil
}

// notify 通知被评论内容的作者以及正文中 @ 到的用户，失败只记日志
func (s *engagementServiceImpl) notify(ctx context.Context, sender *model.User, comment *model.Comment) {
	parent, err := s.registry.Find(ctx, comment.Parent(), repository.ScopeActive)
	if err != nil {
		log.WarnContext(ctx, "load comment parent for notification error", "ref", comment.Parent().String(), "err", err)
		return
	}

	now := time.Now()
	snippet := snippetOf(comment.Body)
	newNotification := func(receiverID uint64, typ int8) *mongo.NotificationModel {
		return &mongo.NotificationModel{
			ReceiverID:  receiverID,
			SenderID:    sender.ID,
			Type:        typ,
			SubjectType: string(model.KindComment),
			SubjectID:   comment.ID,
			TargetType:  string(comment.CommentableType),
			TargetID:    comment.CommentableID,
			Content:     snippet,
			CreatedAt:   now,
		}
	}

	notified := map[uint64]bool{sender.ID: true}
	var list []*mongo.NotificationModel
	if owner := parent.OwnerID(); owner > 0 && !notified[owner] {
		notified[owner] = true
		list = append(list, newNotification(owner, consts.NotificationReply))
	}

	if names := util.Mentions(comment.Body); len(names) > 0 {
		users, err := s.userRepo.GetUsersByUsernames(ctx, names)
		if err != nil {
			log.WarnContext(ctx, "load mentioned users error", "err", err)
		}
		for _, u := range users {
			if notified[u.ID] {
				continue
			}
			notified[u.ID] = true
			list = append(list, newNotification(u.ID, consts.NotificationMention))
		}
	}

	if err = s.notificationRepo.CreateMany(ctx, list); err != nil {
		log.ErrorContext(ctx, "create notifications error", "comment_id", comment.ID, "err", err)
	}
}

func snippetOf(body string) string {
	text := util.StripTags(body)
	if utf8.RuneCountInString(text) <= notificationSnippetLen {
		return text
	}
	return string([]rune(text)[:notificationSnippetLen])
}

// UpdateComment 作者或管理员修改评论正文
func (s *engagementServiceImpl) UpdateComment(ctx context.Context, actor *model.User, commentID uint64, body string) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.Get(ctx, commentID, repository.ScopeWithTrashed)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if err = authorize(actor, comment); err != nil {
		return nil, err
	}

	body = strings.TrimSpace(util.Sanitize(body))
	if body == "" {
		return nil, NewValidationError("评论内容不能为空")
	}
	if err = s.commentRepo.UpdateBody(ctx, commentID, body); err != nil {
		return nil, err
	}
	comment.Body = body
	return toCommentDTO(comment), nil
}

func (s *engagementServiceImpl) PageOf(ctx context.Context, comment *model.Comment, perPage int) (int, error) {
	if perPage < 1 {
		perPage = s.perPage
	}
	before, err := s.commentRepo.CountBefore(ctx, comment.Parent(), comment.ID)
	if err != nil {
		return 0, err
	}
	return int(before)/perPage + 1, nil
}

func (s *engagementServiceImpl) ListComments(ctx context.Context, viewerID uint64, parent model.Ref, page int) (*dto.CommentPageDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	comments, total, err := s.commentRepo.List(ctx, repository.CommentQuery{
		Parent: parent,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CommentPageDTO{
		PageDTO:  newPage(page, s.perPage, total),
		Comments: commentDTOs(ctx, s.userRepo, s.likeRepo, viewerID, comments),
	}, nil
}

func (s *engagementServiceImpl) ListUserComments(ctx context.Context, userID uint64, page int) (*dto.CommentPageDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	comments, total, err := s.commentRepo.List(ctx, repository.CommentQuery{
		UserID: userID,
		Desc:   true,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CommentPageDTO{
		PageDTO:  newPage(page, s.perPage, total),
		Comments: commentDTOs(ctx, s.userRepo, s.likeRepo, userID, comments),
	}, nil
}

func (s *engagementServiceImpl) LikedComments(ctx context.Context, userID uint64, page int) (*dto.CommentPageDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	ids, err := s.likeRepo.GetLikedIDs(ctx, userID, model.KindComment, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.likeRepo.CountByUser(ctx, userID, model.KindComment)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.GetByIDs(ctx, ids, repository.ScopeActive)
	if err != nil {
		return nil, err
	}
	comments = reorder(ids, comments, func(c *model.Comment) uint64 { return c.ID })
	return &dto.CommentPageDTO{
		PageDTO:  newPage(page, s.perPage, total),
		Comments: commentDTOs(ctx, s.userRepo, s.likeRepo, userID, comments),
	}, nil
}

func (s *engagementServiceImpl) AdminListComments(ctx context.Context, scope repository.Scope, page int) (*dto.CommentPageDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	comments, total, err := s.commentRepo.List(ctx, repository.CommentQuery{
		Scope:  scope,
		Desc:   true,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CommentPageDTO{
		PageDTO:  newPage(page, s.perPage, total),
		Comments: commentDTOs(ctx, s.userRepo, s.likeRepo, 0, comments),
	}, nil
}
