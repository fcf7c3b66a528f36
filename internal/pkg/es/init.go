package es

import (
	"Touchline/internal/api/config"
	"Touchline/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

var Client *elasticsearch.TypedClient

// TopicIndex 三个板块共用的话题索引名
var TopicIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 连接 Elasticsearch，索引不存在时按 topicMapping 创建
func InitClient() error {
	elasticCfg := config.Cfg.Elastic
	TopicIndex = elasticCfg.Indices.TopicIndex

	var err error
	Client, err = elasticsearch.NewTypedClient(elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{Transport: http.DefaultTransport},
	})
	if err != nil {
		log.Error("Cannot create Elasticsearch client", "err", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	info, err := Client.Info().Do(ctx)
	if err != nil {
		log.Error("Cannot connect to Elasticsearch", "err", err)
		return err
	}
	if err = ensureTopicIndex(ctx); err != nil {
		log.Error("Cannot create topic index", "index", TopicIndex, "err", err)
		return err
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int, "index", TopicIndex)
	return nil
}

func ensureTopicIndex(ctx context.Context) error {
	exists, err := Client.Indices.Exists(TopicIndex).Do(ctx)
	if err != nil || exists {
		return err
	}
	_, err = Client.Indices.Create(TopicIndex).Mappings(topicMapping()).Do(ctx)
	return err
}

// topicMapping 与 TopicES 字段一一对应
func topicMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"kind":        types.NewKeywordProperty(),
			"id":          types.NewUnsignedLongNumberProperty(),
			"section":     types.NewKeywordProperty(),
			"category_id": types.NewUnsignedLongNumberProperty(),
			"user_id":     types.NewUnsignedLongNumberProperty(),
			"title":       types.NewTextProperty(),
			"body":        types.NewTextProperty(),
			"trashed":     types.NewBooleanProperty(),
			"hot":         types.NewDoubleNumberProperty(),
			"created_at":  types.NewDateProperty(),
			"updated_at":  types.NewDateProperty(),
			"synced_at":   types.NewDateProperty(),
		},
	}
}
