package service

import (
	"Touchline/internal/api/dto"
	"Touchline/internal/model"
	"Touchline/internal/pkg/consts"
	"Touchline/internal/pkg/es"
	"Touchline/internal/pkg/mongo"
	"Touchline/internal/pkg/redis"
	"Touchline/internal/repository"
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeNotificationRepo struct {
	mu   sync.Mutex
	list []*mongo.NotificationModel
}

func (f *fakeNotificationRepo) CreateMany(_ context.Context, list []*mongo.NotificationModel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range list {
		n.ID = primitive.NewObjectID()
		f.list = append(f.list, n)
	}
	return nil
}

func (f *fakeNotificationRepo) GetNotificationList(_ context.Context, userID uint64, limit, offset int64) ([]*mongo.NotificationModel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []*mongo.NotificationModel
	for i := len(f.list) - 1; i >= 0; i-- {
		if f.list[i].ReceiverID == userID {
			res = append(res, f.list[i])
		}
	}
	if offset >= int64(len(res)) {
		return nil, nil
	}
	res = res[offset:]
	if int64(len(res)) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakeNotificationRepo) GetUnreadCount(_ context.Context, userID uint64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, m := range f.list {
		if m.ReceiverID == userID && !m.IsRead {
			n++
		}
	}
	return n, nil
}

func (f *fakeNotificationRepo) MarkAllAsRead(_ context.Context, userID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.list {
		if m.ReceiverID == userID {
			m.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) remove(match func(m *mongo.NotificationModel) bool) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.list[:0]
	var n int64
	for _, m := range f.list {
		if match(m) {
			n++
			continue
		}
		kept = append(kept, m)
	}
	f.list = kept
	return n
}

func (f *fakeNotificationRepo) Delete(_ context.Context, userID uint64, id primitive.ObjectID) error {
	n := f.remove(func(m *mongo.NotificationModel) bool { return m.ID == id && m.ReceiverID == userID })
	if n == 0 {
		return mongoDB.ErrNoDocuments
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteAll(_ context.Context, userID uint64) error {
	f.remove(func(m *mongo.NotificationModel) bool { return m.ReceiverID == userID })
	return nil
}

func (f *fakeNotificationRepo) DeleteBySubject(_ context.Context, subjectType string, subjectID uint64) (int64, error) {
	return f.remove(func(m *mongo.NotificationModel) bool {
		return m.SubjectType == subjectType && m.SubjectID == subjectID
	}), nil
}

func (f *fakeNotificationRepo) DeleteByTarget(_ context.Context, targetType string, targetID uint64) (int64, error) {
	return f.remove(func(m *mongo.NotificationModel) bool {
		return m.TargetType == targetType && m.TargetID == targetID
	}), nil
}

func (f *fakeNotificationRepo) receivers() []uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]uint64, 0, len(f.list))
	for _, m := range f.list {
		ids = append(ids, m.ReceiverID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// fakeSearch 按标题子串匹配的内存索引，外部版本号规则与 ES 一致：
// 版本不大于已记录值(含删除留下的墓碑)的写入被丢弃
type fakeSearch struct {
	mu       sync.Mutex
	docs     map[string]*es.TopicES
	versions map[string]int64
}

func newFakeSearch() *fakeSearch {
	return &fakeSearch{docs: map[string]*es.TopicES{}, versions: map[string]int64{}}
}

func (f *fakeSearch) accept(key string, version int64) bool {
	if last, ok := f.versions[key]; ok && version <= last {
		return false
	}
	f.versions[key] = version
	return true
}

func (f *fakeSearch) IndexTopic(_ context.Context, topic *es.TopicES) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := model.Ref{Kind: model.Kind(topic.Kind), ID: topic.ID}.String()
	if f.accept(key, topic.SyncedAt.UnixNano()) {
		f.docs[key] = topic
	}
	return nil
}

func (f *fakeSearch) DeleteTopic(_ context.Context, kind string, id uint64, version time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := model.Ref{Kind: model.Kind(kind), ID: id}.String()
	if f.accept(key, version.UnixNano()) {
		delete(f.docs, key)
	}
	return nil
}

func (f *fakeSearch) Search(_ context.Context, keyword, section string, from, size int) ([]*es.TopicHit, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var hits []*es.TopicHit
	for _, doc := range f.docs {
		if doc.Trashed || (section != "" && doc.Section != section) {
			continue
		}
		if strings.Contains(doc.Title, keyword) || strings.Contains(doc.Body, keyword) {
			hits = append(hits, &es.TopicHit{Kind: doc.Kind, ID: doc.ID})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].ID < hits[j].ID })
	total := int64(len(hits))
	if from >= len(hits) {
		return nil, total, nil
	}
	hits = hits[from:]
	if len(hits) > size {
		hits = hits[:size]
	}
	return hits, total, nil
}

func (f *fakeSearch) has(ref model.Ref) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[ref.String()]
	return ok
}

type testEnv struct {
	db            *gorm.DB
	rdb           *redisv9.Client
	topics        repository.TopicRepos
	matchRepo     repository.MatchRepo
	commentRepo   repository.CommentRepo
	likeRepo      repository.LikeRepo
	userRepo      repository.UserRepo
	categoryRepo  repository.CategoryRepo
	notifications *fakeNotificationRepo
	search        *fakeSearch
	searchDirty   *redis.DirtySet
	rankDirty     *redis.DirtySet
	registry      *repository.Registry

	ranking    RankingService
	engagement EngagementService
	lifecycle  LifecycleService
	topicSvc   TopicService
	matchSvc   MatchService
	users      UserService

	admin, alice, bob *model.User
	soccer, nba       *model.Category
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.AutoMigrate(db))
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	e := &testEnv{
		db:            db,
		rdb:           rdb,
		topics:        repository.NewTopicRepos(db),
		matchRepo:     repository.NewMatchRepo(db),
		commentRepo:   repository.NewCommentRepo(db),
		likeRepo:      repository.NewLikeRepo(db),
		userRepo:      repository.NewUserRepo(db),
		categoryRepo:  repository.NewCategoryRepo(db),
		notifications: &fakeNotificationRepo{},
		search:        newFakeSearch(),
		searchDirty:   redis.NewDirtySet(rdb, consts.TopicSearchDirtyKey),
		rankDirty:     redis.NewDirtySet(rdb, consts.RankDirtyKey),
	}
	registry := repository.NewRegistry(append(e.topics.Entities(), e.matchRepo, e.commentRepo)...)
	e.registry = registry

	const perPage = 3
	e.ranking = NewRankingService(registry, e.topics, e.userRepo, e.rankDirty, rdb)
	e.engagement = NewEngagementService(registry, e.commentRepo, e.likeRepo, e.userRepo, e.notifications, e.ranking, perPage)
	e.lifecycle = NewLifecycleService(registry, e.notifications, e.ranking, e.searchDirty)
	e.topicSvc = NewTopicService(e.topics, e.categoryRepo, e.userRepo, e.likeRepo, e.search, e.engagement, e.ranking, e.searchDirty, perPage)
	e.matchSvc = NewMatchService(e.matchRepo, e.likeRepo, e.engagement, e.ranking, perPage)
	e.users = NewUserService(e.userRepo, perPage)

	ctx := context.Background()
	e.admin = e.newUser(t, "admin", true)
	e.alice = e.newUser(t, "alice", false)
	e.bob = e.newUser(t, "bob", false)

	e.soccer = &model.Category{Name: "Premier League", Slug: "epl", Group: model.SectionSoccer}
	e.nba = &model.Category{Name: "NBA", Slug: "nba", Group: model.SectionNBA}
	require.NoError(t, e.categoryRepo.Create(ctx, e.soccer))
	require.NoError(t, e.categoryRepo.Create(ctx, e.nba))
	return e
}

func (e *testEnv) newUser(t *testing.T, name string, admin bool) *model.User {
	t.Helper()
	u := &model.User{
		Username:       name,
		Email:          name + "@example.com",
		Name:           name,
		PasswordDigest: "x",
		RememberToken:  name + "-token",
		Admin:          admin,
	}
	require.NoError(t, e.userRepo.CreateUser(context.Background(), u))
	return u
}

func (e *testEnv) topic(t *testing.T, ref model.Ref) *model.Topic {
	t.Helper()
	section, ok := model.SectionOfKind(ref.Kind)
	require.True(t, ok)
	topic, err := e.topics[section].Get(context.Background(), ref.ID, repository.ScopeWithTrashed)
	require.NoError(t, err)
	return topic
}

func (e *testEnv) createTopic(t *testing.T, actor *model.User, section model.Section, title string) model.Ref {
	t.Helper()
	category := e.soccer
	if section == model.SectionNBA {
		category = e.nba
	}
	d, err := e.topicSvc.Create(context.Background(), actor, section, &dto.TopicCreateDTO{
		CategoryID: category.ID,
		Title:      title,
		Body:       "<p>" + title + " body</p>",
	})
	require.NoError(t, err)
	return model.NewRef(section.Kind(), d.ID)
}

func (e *testEnv) createMatch(t *testing.T, mongoID string) model.Ref {
	t.Helper()
	d, err := e.matchSvc.CreateSimplify(context.Background(), &dto.MatchSimplifyDTO{MongoID: mongoID, Time: time.Now(), MType: "league"})
	require.NoError(t, err)
	return model.NewRef(model.KindMatch, d.ID)
}

func (e *testEnv) drain(t *testing.T, set *redis.DirtySet) []string {
	t.Helper()
	members, err := set.Drain(context.Background())
	require.NoError(t, err)
	sort.Strings(members)
	return members
}
