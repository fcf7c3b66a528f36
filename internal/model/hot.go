package model

import (
	"math"
	"time"
)

// HotDecaySeconds 时间项的缩放系数，45000 秒约 12.5 小时
const HotDecaySeconds = 45000.0

// CalculateHot 热度 = log10(max(评论数,1)) + 创建时间戳/45000
func CalculateHot(commentsCount int, createdAt time.Time) float64 {
	order := math.Log10(math.Max(float64(commentsCount), 1))
	seconds := float64(createdAt.UnixMicro()) / 1e6
	return order + seconds/HotDecaySeconds
}

// HotOf 计算可排序记录的热度
func HotOf(r Rankable) float64 {
	return CalculateHot(r.CommentTotal(), r.CreatedTime())
}
