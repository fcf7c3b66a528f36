package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/es"
	"Touchline/internal/pkg/util"
	"Touchline/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"
)

type TopicService interface {
	Create(ctx context.Context, actor *model.User, section model.Section, req *dto.TopicCreateDTO) (*dto.TopicDTO, error)
	Update(ctx context.Context, actor *model.User, section model.Section, id uint64, req *dto.TopicCreateDTO) (*dto.TopicDTO, error)
	// Get 话题详情；commentID > 0 时跳到该评论所在页
	Get(ctx context.Context, viewer *model.User, section model.Section, id, commentID uint64, page int) (*dto.TopicDetailDTO, error)
	List(ctx context.Context, viewerID uint64, section model.Section, q *dto.TopicListQuery) (*dto.TopicListDTO, error)
	Search(ctx context.Context, viewerID uint64, section *model.Section, keyword string, page int) (*dto.TopicListDTO, error)
	ListByUser(ctx context.Context, viewerID uint64, section model.Section, userID uint64, page int, noFlash bool) (*dto.TopicListDTO, error)
	Liked(ctx context.Context, section model.Section, userID uint64, page int) (*dto.TopicListDTO, error)
	AdminList(ctx context.Context, section model.Section, scope repository.Scope, page int) (*dto.TopicListDTO, error)
	// Reindex 同步搜索索引，记录不存在或已在回收站时删除文档
	Reindex(ctx context.Context, ref model.Ref) error
}

type topicServiceImpl struct {
	topics       repository.TopicRepos
	categoryRepo repository.CategoryRepo
	userRepo     repository.UserRepo
	likeRepo     repository.LikeRepo
	searchRepo   es.TopicRepo
	engagement   EngagementService
	ranking      RankingService
	searchDirty  DirtyQueue
	perPage      int
}

func NewTopicService(
	topics repository.TopicRepos,
	categoryRepo repository.CategoryRepo,
	userRepo repository.UserRepo,
	likeRepo repository.LikeRepo,
	searchRepo es.TopicRepo,
	engagement EngagementService,
	ranking RankingService,
	searchDirty DirtyQueue,
	perPage int,
) TopicService {
	return &topicServiceImpl{
		topics:       topics,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		likeRepo:     likeRepo,
		searchRepo:   searchRepo,
		engagement:   engagement,
		ranking:      ranking,
		searchDirty:  searchDirty,
		perPage:      perPage,
	}
}

func (s *topicServiceImpl) repo(section model.Section) (repository.TopicRepo, error) {
	repo, ok := s.topics[section]
	if !ok {
		return nil, ErrUnknownKind
	}
	return repo, nil
}

// validate 清理正文并校验分类是否属于该板块
func (s *topicServiceImpl) validate(ctx context.Context, section model.Section, req *dto.TopicCreateDTO) (*model.Topic, error) {
	title := strings.TrimSpace(req.Title)
	body := strings.TrimSpace(util.Sanitize(req.Body))

	v := &validator{}
	v.check(title != "", "标题不能为空")
	v.check(body != "", "正文不能为空")
	v.check(req.CategoryID > 0, "请选择分类")
	if err := v.err(); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Get(ctx, req.CategoryID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	if category.Group != section {
		return nil, ErrCategoryGroupMismatch
	}

	return &model.Topic{
		CategoryID: req.CategoryID,
		Title:      title,
		Body:       body,
		Preview:    util.Preview(body),
		HasFlash:   util.HasFlash(body),
		Section:    section,
	}, nil
}

func (s *topicServiceImpl) Create(ctx context.Context, actor *model.User, section model.Section, req *dto.TopicCreateDTO) (*dto.TopicDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	if actor.IsLocked() {
		return nil, ErrUserLocked
	}
	topic, err := s.validate(ctx, section, req)
	if err != nil {
		return nil, err
	}
	topic.UserID = actor.ID
	if err = repo.Create(ctx, topic); err != nil {
		return nil, err
	}

	if err = s.ranking.Touch(ctx, topic.Ref()); err != nil {
		log.ErrorContext(ctx, "hot refresh lost", "ref", topic.Ref().String(), "err", err)
	}
	// 与写回数据库的热度相同
	topic.Hot = model.HotOf(topic)
	s.markSearch(ctx, topic.Ref())

	d := toTopicDTO(topic)
	d.Username = actor.Username
	return d, nil
}

func (s *topicServiceImpl) Update(ctx context.Context, actor *model.User, section model.Section, id uint64, req *dto.TopicCreateDTO) (*dto.TopicDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	topic, err := repo.Get(ctx, id, repository.ScopeWithTrashed)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}
	if err = authorize(actor, topic); err != nil {
		return nil, err
	}

	updated, err := s.validate(ctx, section, req)
	if err != nil {
		return nil, err
	}
	topic.Title = updated.Title
	topic.Body = updated.Body
	topic.Preview = updated.Preview
	topic.HasFlash = updated.HasFlash
	topic.CategoryID = updated.CategoryID
	if err = repo.UpdateContent(ctx, topic); err != nil {
		return nil, err
	}

	s.markSearch(ctx, topic.Ref())
	return toTopicDTO(topic), nil
}

func (s *topicServiceImpl) Get(ctx context.Context, viewer *model.User, section model.Section, id, commentID uint64, page int) (*dto.TopicDetailDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	scope := repository.ScopeActive
	if viewer != nil && viewer.Admin {
		scope = repository.ScopeWithTrashed
	}
	topic, err := repo.Get(ctx, id, scope)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrTopicNotFound
		}
		return nil, err
	}

	var viewerID uint64
	if viewer != nil {
		viewerID = viewer.ID
	}

	if commentID > 0 {
		if p, ok := s.commentPage(ctx, topic.Ref(), commentID); ok {
			page = p
		}
	}
	comments, err := s.engagement.ListComments(ctx, viewerID, topic.Ref(), page)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Get(ctx, topic.CategoryID)
	if err != nil && !repository.IsNotFound(err) {
		return nil, err
	}

	list := topicDTOs(ctx, s.userRepo, s.likeRepo, viewerID, []*model.Topic{topic}, true)
	return &dto.TopicDetailDTO{
		Topic:    list[0],
		Category: toCategoryDTO(category),
		Comments: comments,
	}, nil
}

// commentPage 评论属于该话题且未删除时返回其页码
func (s *topicServiceImpl) commentPage(ctx context.Context, parent model.Ref, commentID uint64) (int, bool) {
	comment := &model.Comment{ID: commentID, CommentableType: parent.Kind, CommentableID: parent.ID}
	page, err := s.engagement.PageOf(ctx, comment, s.perPage)
	if err != nil {
		return 0, false
	}
	return page, true
}

func (s *topicServiceImpl) List(ctx context.Context, viewerID uint64, section model.Section, q *dto.TopicListQuery) (*dto.TopicListDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	query := repository.TopicQuery{Tab: q.Tab, NoFlash: q.NoFlash}
	if query.Tab == "" {
		query.Tab = repository.TabHot
	}

	var category *model.Category
	if q.Slug != "" {
		category, err = s.categoryRepo.GetBySlug(ctx, q.Slug)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		if category.Group != section {
			return nil, ErrCategoryNotFound
		}
		query.CategoryID = category.ID
	}

	query.Limit, query.Offset = util.Paginate(q.Page, s.perPage)
	topics, total, err := repo.List(ctx, query)
	if err != nil {
		return nil, err
	}
	return &dto.TopicListDTO{
		PageDTO:  newPage(q.Page, s.perPage, total),
		Category: toCategoryDTO(category),
		Tab:      query.Tab,
		Topics:   topicDTOs(ctx, s.userRepo, s.likeRepo, viewerID, topics, false),
	}, nil
}

func (s *topicServiceImpl) Search(ctx context.Context, viewerID uint64, section *model.Section, keyword string, page int) (*dto.TopicListDTO, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, NewValidationError("请输入搜索关键词")
	}
	limit, offset := util.Paginate(page, s.perPage)
	sectionName := ""
	if section != nil {
		sectionName = section.String()
	}
	hits, total, err := s.searchRepo.Search(ctx, keyword, sectionName, offset, limit)
	if err != nil {
		return nil, err
	}

	// 按板块分组回表，再按命中顺序输出
	idsBySection := make(map[model.Section][]uint64)
	for _, h := range hits {
		kind, err := model.ParseKind(h.Kind)
		if err != nil {
			continue
		}
		sec, ok := model.SectionOfKind(kind)
		if !ok {
			continue
		}
		idsBySection[sec] = append(idsBySection[sec], h.ID)
	}
	byRef := make(map[model.Ref]*dto.TopicDTO, len(hits))
	for sec, ids := range idsBySection {
		topics, err := s.topics[sec].GetByIDs(ctx, ids, repository.ScopeActive)
		if err != nil {
			return nil, err
		}
		for _, d := range topicDTOs(ctx, s.userRepo, s.likeRepo, viewerID, topics, false) {
			kind, _ := model.ParseKind(d.Kind)
			byRef[model.NewRef(kind, d.ID)] = d
		}
	}

	res := make([]*dto.TopicDTO, 0, len(hits))
	for _, h := range hits {
		if d, ok := byRef[model.NewRef(model.Kind(h.Kind), h.ID)]; ok {
			res = append(res, d)
		}
	}
	return &dto.TopicListDTO{
		PageDTO: newPage(page, s.perPage, total),
		Topics:  res,
	}, nil
}

func (s *topicServiceImpl) ListByUser(ctx context.Context, viewerID uint64, section model.Section, userID uint64, page int, noFlash bool) (*dto.TopicListDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	limit, offset := util.Paginate(page, s.perPage)
	topics, total, err := repo.List(ctx, repository.TopicQuery{
		UserID:  userID,
		Tab:     repository.TabNewest,
		NoFlash: noFlash,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.TopicListDTO{
		PageDTO: newPage(page, s.perPage, total),
		Tab:     repository.TabNewest,
		Topics:  topicDTOs(ctx, s.userRepo, s.likeRepo, viewerID, topics, false),
	}, nil
}

func (s *topicServiceImpl) Liked(ctx context.Context, section model.Section, userID uint64, page int) (*dto.TopicListDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	limit, offset := util.Paginate(page, s.perPage)
	ids, err := s.likeRepo.GetLikedIDs(ctx, userID, section.Kind(), limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.likeRepo.CountByUser(ctx, userID, section.Kind())
	if err != nil {
		return nil, err
	}
	topics, err := repo.GetByIDs(ctx, ids, repository.ScopeActive)
	if err != nil {
		return nil, err
	}
	topics = reorder(ids, topics, func(t *model.Topic) uint64 { return t.ID })
	return &dto.TopicListDTO{
		PageDTO: newPage(page, s.perPage, total),
		Topics:  topicDTOs(ctx, s.userRepo, s.likeRepo, userID, topics, false),
	}, nil
}

func (s *topicServiceImpl) AdminList(ctx context.Context, section model.Section, scope repository.Scope, page int) (*dto.TopicListDTO, error) {
	repo, err := s.repo(section)
	if err != nil {
		return nil, err
	}
	limit, offset := util.Paginate(page, s.perPage)
	topics, total, err := repo.List(ctx, repository.TopicQuery{
		Scope:  scope,
		Tab:    repository.TabNewest,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.TopicListDTO{
		PageDTO: newPage(page, s.perPage, total),
		Tab:     repository.TabNewest,
		Topics:  topicDTOs(ctx, s.userRepo, s.likeRepo, 0, topics, false),
	}, nil
}

func (s *topicServiceImpl) Reindex(ctx context.Context, ref model.Ref) error {
	section, ok := model.SectionOfKind(ref.Kind)
	if !ok {
		return ErrUnknownKind
	}
	repo, err := s.repo(section)
	if err != nil {
		return err
	}
	// 先取时间再读库，较晚读到的状态总是带着更大的版本号
	syncedAt := time.Now()
	topic, err := repo.Get(ctx, ref.ID, repository.ScopeWithTrashed)
	if err != nil {
		if repository.IsNotFound(err) {
			return s.searchRepo.DeleteTopic(ctx, string(ref.Kind), ref.ID, syncedAt)
		}
		return err
	}
	if topic.Trashed {
		return s.searchRepo.DeleteTopic(ctx, string(ref.Kind), ref.ID, syncedAt)
	}
	return s.searchRepo.IndexTopic(ctx, &es.TopicES{
		Kind:       string(ref.Kind),
		ID:         topic.ID,
		Section:    section.String(),
		CategoryID: topic.CategoryID,
		UserID:     topic.UserID,
		Title:      topic.Title,
		Body:       util.StripTags(topic.Body),
		Trashed:    topic.Trashed,
		Hot:        topic.Hot,
		CreatedAt:  topic.CreatedAt,
		UpdatedAt:  topic.UpdatedAt,
		SyncedAt:   syncedAt,
	})
}

func (s *topicServiceImpl) markSearch(ctx context.Context, ref model.Ref) {
	if err := s.searchDirty.Mark(ctx, ref.String()); err != nil {
		log.ErrorContext(ctx, "mark topic search dirty error", "ref", ref.String(), "err", err)
	}
}
