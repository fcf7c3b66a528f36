package es

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSearchDepth = 1000

type TopicRepo interface {
	// IndexTopic 以 synced_at 作为外部版本号，旧版本写入被忽略
	IndexTopic(ctx context.Context, topic *TopicES) error
	// DeleteTopic 同样以读取时刻作为版本号，旧版本的删除被忽略
	DeleteTopic(ctx context.Context, kind string, id uint64, version time.Time) error
	// Search 标题、正文全文检索，排除回收站内容；section 为空时搜索全部板块
	Search(ctx context.Context, keyword, section string, from, size int) ([]*TopicHit, int64, error)
}

type TopicRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewTopicRepo(client *elasticsearch.TypedClient) TopicRepo {
	return &TopicRepoImpl{client: client}
}

func docID(kind string, id uint64) string {
	return kind + ":" + strconv.FormatUint(id, 10)
}

func (s *TopicRepoImpl) IndexTopic(ctx context.Context, topic *TopicES) error {
	_, err := s.client.Index(TopicIndex).
		Id(docID(topic.Kind, topic.ID)).
		Document(topic).
		Version(strconv.FormatInt(topic.SyncedAt.UnixNano(), 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *TopicRepoImpl) DeleteTopic(ctx context.Context, kind string, id uint64, version time.Time) error {
	_, err := s.client.Delete(TopicIndex, docID(kind, id)).
		Version(strconv.FormatInt(version.UnixNano(), 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode || e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *TopicRepoImpl) Search(ctx context.Context, keyword, section string, from, size int) ([]*TopicHit, int64, error) {
	if from >= MaxSearchDepth || keyword == "" {
		return []*TopicHit{}, 0, nil
	}

	filter := []types.Query{{
		Term: map[string]types.TermQuery{"trashed": {Value: false}},
	}}
	if section != "" {
		filter = append(filter, types.Query{
			Term: map[string]types.TermQuery{"section": {Value: section}},
		})
	}

	resp, err := s.client.Search().
		Index(TopicIndex).
		Query(&types.Query{Bool: &types.BoolQuery{
			Must: []types.Query{{
				MultiMatch: &types.MultiMatchQuery{
					Query:  keyword,
					Fields: []string{"title^2", "body"},
				},
			}},
			Filter: filter,
		}}).
		Source_(&types.SourceFilter{Includes: []string{"kind", "id"}}).
		From(from).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if resp.Hits.Total != nil {
		total = resp.Hits.Total.Value
	}
	hits := make([]*TopicHit, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var h TopicHit
		if err = json.Unmarshal(hit.Source_, &h); err != nil {
			continue
		}
		hits = append(hits, &h)
	}
	return hits, total, nil
}
