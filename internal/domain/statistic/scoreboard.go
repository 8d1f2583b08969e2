package statistic

import (
	"context"
	"fmt"

	"github.com/meriter/backend/internal/model"
	"github.com/meriter/backend/pkg/xredis"
)

// Scoreboard keeps a per-community ranking of publications by score. It is a
// derived view fed incrementally on every vote; the vote table remains the
// source of truth.
type Scoreboard interface {
	ChangeScore(ctx context.Context, communityID, publicationID string, delta int64) error
	TopPublications(ctx context.Context, communityID string, offset, limit int) ([]model.PublicationScore, error)
	Rank(ctx context.Context, communityID, publicationID string) (uint64, error)
}

type scoreboard struct {
	redisClient xredis.Client
}

func New(redisClient xredis.Client) *scoreboard {
	return &scoreboard{redisClient: redisClient}
}

func scoreKey(communityID string) string {
	return fmt.Sprintf("meriter:score:%s", communityID)
}

func (s *scoreboard) ChangeScore(
	ctx context.Context, communityID, publicationID string, delta int64,
) error {
	return s.redisClient.ZIncrBy(ctx, scoreKey(communityID), delta, publicationID)
}

func (s *scoreboard) TopPublications(
	ctx context.Context, communityID string, offset, limit int,
) ([]model.PublicationScore, error) {
	zs, err := s.redisClient.ZRevRangeWithScores(ctx, scoreKey(communityID), offset, limit)
	if err != nil {
		return nil, err
	}

	entries := []model.PublicationScore{}
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			member = fmt.Sprintf("%v", z.Member)
		}

		entries = append(entries, model.PublicationScore{
			PublicationID: member,
			Score:         int64(z.Score),
		})
	}

	return entries, nil
}

func (s *scoreboard) Rank(ctx context.Context, communityID, publicationID string) (uint64, error) {
	return s.redisClient.ZRevRank(ctx, scoreKey(communityID), publicationID)
}
