package models

import "time"

// Project is a portfolio entry. The preview block is a cached rendering of
// the destination URL fetched from the external preview service; it is only
// rewritten by project writes, never by reads.
type Project struct {
	ID          string
	Title       string
	URL         string
	Description *string
	TechStack   []string
	Order       int
	IsVisible   bool

	LikesCount  int
	RatingCount int
	RatingSum   int

	PreviewImage       *string
	PreviewImages      []string
	PreviewTitle       *string
	PreviewDescription *string
	PreviewDomain      *string
	PreviewFetchedAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvgRating is RatingSum/RatingCount, 0 while unrated.
func (p Project) AvgRating() float64 {
	if p.RatingCount == 0 {
		return 0
	}
	return float64(p.RatingSum) / float64(p.RatingCount)
}

// EngagementCounters is the fresh counter row returned by an engagement
// update, read back in the same statement that performed the increment.
type EngagementCounters struct {
	ProjectID   string
	LikesCount  int
	RatingCount int
	RatingSum   int
}

func (c EngagementCounters) AvgRating() float64 {
	if c.RatingCount == 0 {
		return 0
	}
	return float64(c.RatingSum) / float64(c.RatingCount)
}
