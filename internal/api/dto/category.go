package dto

type CategoryDTO struct {
	ID                uint64 `json:"id"`
	Name              string `json:"name"`
	Slug              string `json:"slug"`
	Group             int8   `json:"group"`
	Description       string `json:"description"`
	TopicsCount       int    `json:"topics_count"`
	NbaTopicsCount    int    `json:"nba_topics_count"`
	TennisTopicsCount int    `json:"tennis_topics_count"`
}

type CategoryCreateDTO struct {
	Name        string `json:"name" binding:"required,max=64"`
	Slug        string `json:"slug" binding:"required,max=64,alphanum"`
	Group       *int8  `json:"group" binding:"required,min=0,max=2"`
	Description string `json:"description" binding:"max=255"`
}
