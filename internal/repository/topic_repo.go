package repository

import (
	"Touchline/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

const (
	TabHot    = "hot"
	TabNewest = "newest"
)

// TopicQuery 话题列表查询条件
type TopicQuery struct {
	CategoryID uint64
	UserID     uint64
	Tab        string
	NoFlash    bool
	Scope      Scope
	Limit      int
	Offset     int
}

type TopicRepo interface {
	EntityRepo
	RankRepo
	Section() model.Section
	Create(ctx context.Context, topic *model.Topic) error
	Get(ctx context.Context, id uint64, scope Scope) (*model.Topic, error)
	GetByIDs(ctx context.Context, ids []uint64, scope Scope) ([]*model.Topic, error)
	List(ctx context.Context, q TopicQuery) ([]*model.Topic, int64, error)
	UpdateContent(ctx context.Context, topic *model.Topic) error
}

type TopicRepoImpl struct {
	db      *gorm.DB
	section model.Section
}

// NewTopicRepo 每个板块一个实例，分别落在各自的表
func NewTopicRepo(db *gorm.DB, section model.Section) TopicRepo {
	return &TopicRepoImpl{db: db, section: section}
}

func (s *TopicRepoImpl) Kind() model.Kind {
	return s.section.Kind()
}

func (s *TopicRepoImpl) Section() model.Section {
	return s.section
}

func (s *TopicRepoImpl) table(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Table(s.section.Table())
}

func (s *TopicRepoImpl) tag(topics ...*model.Topic) {
	for _, t := range topics {
		t.Section = s.section
	}
}

// Create 新建话题并增加分类计数
func (s *TopicRepoImpl) Create(ctx context.Context, topic *model.Topic) error {
	topic.Section = s.section
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.section.Table()).Create(topic).Error; err != nil {
			return err
		}
		return addCategoryCounter(tx, s.section, topic.CategoryID, 1)
	})
}

func (s *TopicRepoImpl) Get(ctx context.Context, id uint64, scope Scope) (*model.Topic, error) {
	var topic model.Topic
	err := s.table(ctx).Scopes(scope.apply).Where("id = ?", id).First(&topic).Error
	if err != nil {
		return nil, err
	}
	s.tag(&topic)
	return &topic, nil
}

func (s *TopicRepoImpl) GetByIDs(ctx context.Context, ids []uint64, scope Scope) ([]*model.Topic, error) {
	if len(ids) == 0 {
		return []*model.Topic{}, nil
	}
	var topics []*model.Topic
	err := s.table(ctx).Scopes(scope.apply).Where("id IN ?", ids).Find(&topics).Error
	if err != nil {
		return nil, err
	}
	s.tag(topics...)
	return topics, nil
}

func (s *TopicRepoImpl) List(ctx context.Context, q TopicQuery) ([]*model.Topic, int64, error) {
	query := s.table(ctx).Scopes(q.Scope.apply)
	if q.CategoryID > 0 {
		query = query.Where("category_id = ?", q.CategoryID)
	}
	if q.UserID > 0 {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.NoFlash {
		query = query.Where("hasflash = ?", false)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Tab == TabNewest {
		query = query.Order("id DESC")
	} else {
		query = query.Order("hot DESC").Order("id DESC")
	}

	var topics []*model.Topic
	if err := query.Limit(q.Limit).Offset(q.Offset).Find(&topics).Error; err != nil {
		return nil, 0, err
	}
	s.tag(topics...)
	return topics, total, nil
}

// UpdateContent 更新标题、正文与分类；分类变化时在同一事务内迁移计数
func (s *TopicRepoImpl) UpdateContent(ctx context.Context, topic *model.Topic) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var old model.Topic
		if err := tx.Table(s.section.Table()).Where("id = ?", topic.ID).First(&old).Error; err != nil {
			return err
		}
		err := tx.Table(s.section.Table()).Where("id = ?", topic.ID).Updates(map[string]any{
			"title":       topic.Title,
			"body":        topic.Body,
			"preview":     topic.Preview,
			"hasflash":    topic.HasFlash,
			"category_id": topic.CategoryID,
			"updated_at":  time.Now(),
		}).Error
		if err != nil {
			return err
		}
		if old.CategoryID == topic.CategoryID || old.Trashed {
			return nil
		}
		if err = addCategoryCounter(tx, s.section, old.CategoryID, -1); err != nil {
			return err
		}
		return addCategoryCounter(tx, s.section, topic.CategoryID, 1)
	})
}

func (s *TopicRepoImpl) FindEntity(ctx context.Context, id uint64, scope Scope) (model.Trashable, error) {
	topic, err := s.Get(ctx, id, scope)
	if err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicRepoImpl) SetTrashed(ctx context.Context, id uint64, trashed bool) (model.Trashable, bool, error) {
	var topic model.Topic
	changed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.section.Table()).Where("id = ?", id).First(&topic).Error; err != nil {
			return err
		}
		var err error
		changed, err = flipTrashed(tx, s.section.Table(), id, trashed)
		if err != nil || !changed {
			return err
		}
		delta := 1
		if trashed {
			delta = -1
		}
		return addCategoryCounter(tx, s.section, topic.CategoryID, delta)
	})
	if err != nil {
		return nil, false, err
	}
	topic.Trashed = trashed
	s.tag(&topic)
	return &topic, changed, nil
}

func (s *TopicRepoImpl) Destroy(ctx context.Context, id uint64) (model.Trashable, bool, error) {
	var topic model.Topic
	wasTrashed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.section.Table()).Where("id = ?", id).First(&topic).Error; err != nil {
			return err
		}
		s.tag(&topic)

		res := tx.Table(s.section.Table()).Where("id = ? AND trashed = ?", id, false).Delete(&model.Topic{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			res = tx.Table(s.section.Table()).Where("id = ?", id).Delete(&model.Topic{})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			wasTrashed = true
		}

		if err := deleteChildren(tx, topic.Ref()); err != nil {
			return err
		}
		if wasTrashed {
			return nil
		}
		return addCategoryCounter(tx, s.section, topic.CategoryID, -1)
	})
	if err != nil {
		return nil, false, err
	}
	topic.Trashed = wasTrashed
	return &topic, wasTrashed, nil
}

func (s *TopicRepoImpl) Reload(ctx context.Context, id uint64) (model.Rankable, error) {
	topic, err := s.Get(ctx, id, ScopeWithTrashed)
	if err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicRepoImpl) UpdateHot(ctx context.Context, id uint64, hot float64) error {
	return s.table(ctx).Where("id = ?", id).
		UpdateColumns(map[string]any{"hot": hot, "updated_at": time.Now()}).Error
}

// TopicRepos 三个板块的话题存储
type TopicRepos map[model.Section]TopicRepo

func NewTopicRepos(db *gorm.DB) TopicRepos {
	repos := make(TopicRepos, len(model.Sections()))
	for _, section := range model.Sections() {
		repos[section] = NewTopicRepo(db, section)
	}
	return repos
}

// Entities 转为注册表可用的列表
func (r TopicRepos) Entities() []EntityRepo {
	list := make([]EntityRepo, 0, len(r))
	for _, section := range model.Sections() {
		if repo, ok := r[section]; ok {
			list = append(list, repo)
		}
	}
	return list
}
