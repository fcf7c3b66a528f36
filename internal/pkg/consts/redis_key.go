package consts

const (
	LoginLimiterKey     = "sessions:limiter:"
	TopicSearchDirtyKey = "topic:search:dirty"
	RankDirtyKey        = "rank:dirty"
	HotFeedKey          = "topic:hot:feed"
)
