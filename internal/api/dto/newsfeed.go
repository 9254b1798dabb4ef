package dto

// NewsFeedDTO 信息流里的一条记录，携带完整推文
type NewsFeedDTO struct {
	ID          uint64    `json:"id"`
	CreatedAt   string    `json:"created_at"`
	CreatedAtTS int64     `json:"created_at_ts"`
	Tweet       *TweetDTO `json:"tweet"`
}

// NewsFeedListDTO 信息流 - 游标分页
type NewsFeedListDTO struct {
	HasNextPage bool           `json:"has_next_page"`
	Results     []*NewsFeedDTO `json:"results"`
}
