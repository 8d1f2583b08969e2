package model

type GetScoreRequest struct {
	TargetType string `form:"target_type" json:"target_type"`
	TargetID   string `form:"target_id" json:"target_id"`
}

type GetScoreResponse struct {
	Upvotes   uint64 `json:"upvotes"`
	Downvotes uint64 `json:"downvotes"`
	Score     int64  `json:"score"`

	// Rank is the zero-based leaderboard position of a publication target
	// within its community, when known.
	Rank *uint64 `json:"rank,omitempty"`
}

type GetLeaderboardRequest struct {
	CommunityID string `form:"community_id" json:"community_id"`
	Offset      int    `form:"offset" json:"offset"`
	Limit       int    `form:"limit" json:"limit"`
}

type PublicationScore struct {
	PublicationID string `json:"publication_id"`
	Score         int64  `json:"score"`
}

type GetLeaderboardResponse struct {
	Entries []PublicationScore `json:"entries"`
}
