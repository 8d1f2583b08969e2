package testutil

import (
	"context"

	"github.com/meriter/backend/internal/entity"
	"github.com/meriter/backend/internal/repository"
)

var (
	User1 = entity.User{Base: entity.Base{ID: "user1"}, Name: "user1"}
	User2 = entity.User{Base: entity.Base{ID: "user2"}, Name: "user2"}
	User3 = entity.User{Base: entity.Base{ID: "user3"}, Name: "user3"}

	Community1 = entity.Community{
		Base:               entity.Base{ID: "community1"},
		CreatedBy:          User1.ID,
		Handle:             "community1",
		DisplayName:        "Community 1",
		Type:               entity.CommunityCustom,
		DailyEmission:      10,
		CurrencyName:       "merit",
		CurrencySymbol:     "M",
		CanVoteForOwnPosts: false,
		AllowProjectVoting: true,
	}

	TeamCommunity = entity.Community{
		Base:           entity.Base{ID: "team1"},
		CreatedBy:      User1.ID,
		Handle:         "team1",
		DisplayName:    "Team 1",
		Type:           entity.CommunityTeam,
		DailyEmission:  10,
		CurrencyName:   "merit",
		CurrencySymbol: "M",
		TeamWalletOnly: true,
	}

	MarathonCommunity = entity.Community{
		Base:           entity.Base{ID: "marathon"},
		CreatedBy:      User1.ID,
		Handle:         "marathon-of-good",
		DisplayName:    "Marathon of Good",
		Type:           entity.CommunityMarathonOfGood,
		DailyEmission:  10,
		CurrencyName:   "good deed merit",
		CurrencySymbol: "GDM",
	}

	FutureVisionCommunity = entity.Community{
		Base:           entity.Base{ID: "future-vision"},
		CreatedBy:      User1.ID,
		Handle:         "future-vision",
		DisplayName:    "Future Vision",
		Type:           entity.CommunityFutureVision,
		DailyEmission:  0,
		CurrencyName:   "future vision merit",
		CurrencySymbol: "FVM",
	}

	Publication1 = entity.Publication{
		Base:        entity.Base{ID: "publication1"},
		CommunityID: Community1.ID,
		AuthorID:    User1.ID,
		Type:        entity.PostText,
		Content:     []byte("first post"),
	}

	Publication2 = entity.Publication{
		Base:        entity.Base{ID: "publication2"},
		CommunityID: MarathonCommunity.ID,
		AuthorID:    User1.ID,
		Type:        entity.PostText,
		Content:     []byte("a good deed"),
	}
)

// CreateFixtureDb loads a small consistent dataset into the context's
// database.
func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertCommunities(ctx)
	InsertFollowers(ctx)
	InsertPublications(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()
	for _, user := range []entity.User{User1, User2, User3} {
		u := user
		if err := userRepo.Create(ctx, &u); err != nil {
			panic(err)
		}
	}
}

func InsertCommunities(ctx context.Context) {
	communityRepo := repository.NewCommunityRepository()
	communities := []entity.Community{
		Community1, TeamCommunity, MarathonCommunity, FutureVisionCommunity,
	}
	for _, community := range communities {
		c := community
		if err := communityRepo.Create(ctx, &c); err != nil {
			panic(err)
		}
	}
}

func InsertFollowers(ctx context.Context) {
	followerRepo := repository.NewFollowerRepository()
	followers := []entity.Follower{
		{UserID: User1.ID, CommunityID: Community1.ID, Role: entity.RoleMember},
		{UserID: User2.ID, CommunityID: Community1.ID, Role: entity.RoleMember},
		{UserID: User3.ID, CommunityID: Community1.ID, Role: entity.RoleViewer},
		{UserID: User1.ID, CommunityID: TeamCommunity.ID, Role: entity.RoleLead},
		{UserID: User2.ID, CommunityID: TeamCommunity.ID, Role: entity.RoleMember},
		{UserID: User1.ID, CommunityID: MarathonCommunity.ID, Role: entity.RoleMember},
		{UserID: User2.ID, CommunityID: MarathonCommunity.ID, Role: entity.RoleModerator},
		{UserID: User1.ID, CommunityID: FutureVisionCommunity.ID, Role: entity.RoleMember},
		{UserID: User2.ID, CommunityID: FutureVisionCommunity.ID, Role: entity.RoleMember},
	}
	for _, follower := range followers {
		f := follower
		if err := followerRepo.Create(ctx, &f); err != nil {
			panic(err)
		}
	}
}

func InsertPublications(ctx context.Context) {
	publicationRepo := repository.NewPublicationRepository()
	for _, publication := range []entity.Publication{Publication1, Publication2} {
		p := publication
		if err := publicationRepo.Create(ctx, &p); err != nil {
			panic(err)
		}
	}
}
