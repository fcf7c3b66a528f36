package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

type MatchService interface {
	// CreateSimplify 按 mongo_id 查找或创建比赛
	CreateSimplify(ctx context.Context, req *dto.MatchSimplifyDTO) (*dto.MatchDTO, error)
	// CreateSimplifyWithLike 查找或创建比赛后为当前用户点赞
	CreateSimplifyWithLike(ctx context.Context, userID uint64, req *dto.MatchSimplifyDTO) (*dto.MatchDTO, error)
	Get(ctx context.Context, viewerID uint64, id, commentID uint64, page int) (*dto.MatchDetailDTO, error)
	List(ctx context.Context, viewerID uint64, scope repository.Scope, page int) (*dto.MatchListDTO, error)
	Liked(ctx context.Context, userID uint64, page int) (*dto.MatchListDTO, error)
	LikedMongoIDs(ctx context.Context, userID uint64) ([]string, error)
}

type matchServiceImpl struct {
	matchRepo  repository.MatchRepo
	likeRepo   repository.LikeRepo
	engagement EngagementService
	ranking    RankingService
	perPage    int
}

// maxLikedMongoIDs App 端一次同步的点赞比赛上限
const maxLikedMongoIDs = 500

func NewMatchService(
	matchRepo repository.MatchRepo,
	likeRepo repository.LikeRepo,
	engagement EngagementService,
	ranking RankingService,
	perPage int,
) MatchService {
	return &matchServiceImpl{
		matchRepo:  matchRepo,
		likeRepo:   likeRepo,
		engagement: engagement,
		ranking:    ranking,
		perPage:    perPage,
	}
}

func (s *matchServiceImpl) CreateSimplify(ctx context.Context, req *dto.MatchSimplifyDTO) (*dto.MatchDTO, error) {
	mongoID := strings.TrimSpace(req.MongoID)
	if mongoID == "" {
		return nil, NewValidationError("mongo_id 不能为空")
	}
	match := &model.Match{MongoID: mongoID, Time: req.Time, MType: req.MType}
	created, err := s.matchRepo.FirstOrCreate(ctx, match)
	if err != nil {
		return nil, err
	}
	if created {
		if err = s.ranking.Touch(ctx, match.Ref()); err != nil {
			log.ErrorContext(ctx, "hot refresh lost", "ref", match.Ref().String(), "err", err)
		}
		match.Hot = model.HotOf(match)
	}
	return toMatchDTO(match), nil
}

func (s *matchServiceImpl) CreateSimplifyWithLike(ctx context.Context, userID uint64, req *dto.MatchSimplifyDTO) (*dto.MatchDTO, error) {
	d, err := s.CreateSimplify(ctx, req)
	if err != nil {
		return nil, err
	}
	like, err := s.engagement.Like(ctx, userID, model.NewRef(model.KindMatch, d.ID))
	if err != nil {
		return nil, err
	}
	d.Liked = true
	d.LikesCount = like.LikesCount
	return d, nil
}

func (s *matchServiceImpl) Get(ctx context.Context, viewerID uint64, id, commentID uint64, page int) (*dto.MatchDetailDTO, error) {
	match, err := s.matchRepo.Get(ctx, id, repository.ScopeActive)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if commentID > 0 {
		comment := &model.Comment{ID: commentID, CommentableType: model.KindMatch, CommentableID: id}
		if p, err := s.engagement.PageOf(ctx, comment, s.perPage); err == nil {
			page = p
		}
	}
	comments, err := s.engagement.ListComments(ctx, viewerID, match.Ref(), page)
	if err != nil {
		return nil, err
	}
	return &dto.MatchDetailDTO{
		Match:    matchDTOs(ctx, s.likeRepo, viewerID, []*model.Match{match})[0],
		Comments: comments,
	}, nil
}

func (s *matchServiceImpl) List(ctx context.Context, viewerID uint64, scope repository.Scope, page int) (*dto.MatchListDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	matches, total, err := s.matchRepo.List(ctx, scope, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.MatchListDTO{
		PageDTO: newPage(page, s.perPage, total),
		Matches: matchDTOs(ctx, s.likeRepo, viewerID, matches),
	}, nil
}

func (s *matchServiceImpl) Liked(ctx context.Context, userID uint64, page int) (*dto.MatchListDTO, error) {
	limit, offset := util.Paginate(page, s.perPage)
	ids, err := s.likeRepo.GetLikedIDs(ctx, userID, model.KindMatch, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.likeRepo.CountByUser(ctx, userID, model.KindMatch)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.GetByIDs(ctx, ids, repository.ScopeActive)
	if err != nil {
		return nil, err
	}
	matches = reorder(ids, matches, func(m *model.Match) uint64 { return m.ID })
	return &dto.MatchListDTO{
		PageDTO: newPage(page, s.perPage, total),
		Matches: matchDTOs(ctx, s.likeRepo, userID, matches),
	}, nil
}

func (s *matchServiceImpl) LikedMongoIDs(ctx context.Context, userID uint64) ([]string, error) {
	ids, err := s.likeRepo.GetLikedIDs(ctx, userID, model.KindMatch, maxLikedMongoIDs, 0)
	if err != nil {
		return nil, err
	}
	matches, err := s.matchRepo.GetByIDs(ctx, ids, repository.ScopeActive)
	if err != nil {
		return nil, err
	}
	res := make([]string, 0, len(matches))
	for _, m := range reorder(ids, matches, func(m *model.Match) uint64 { return m.ID }) {
		res = append(res, m.MongoID)
	}
	return res, nil
}
