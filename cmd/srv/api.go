package main

import (
	"fmt"
	"net/http"

	"github.com/meriter/backend/internal/middleware"
	"github.com/meriter/backend/pkg/router"
	"github.com/meriter/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(xcontext.DB(s.ctx), xcontext.Configs(s.ctx), xcontext.Logger(s.ctx))

	authRouter := s.router.Branch()
	authRouter.Before(middleware.NewAuthVerifier())
	{
		// Vote API
		router.POST(authRouter, "/createVote", s.voteDomain.Create)

		// Quota API
		router.GET(authRouter, "/getQuota", s.quotaDomain.Get)
		router.POST(authRouter, "/resetDailyQuota", s.quotaDomain.Reset)

		// Wallet API
		router.GET(authRouter, "/getWalletBalance", s.walletDomain.GetBalance)
		router.GET(authRouter, "/getMyWalletTransactions", s.walletDomain.GetMyTransactions)

		// Withdrawal API
		router.POST(authRouter, "/withdraw", s.withdrawDomain.Withdraw)
	}

	publicRouter := s.router.Branch()
	{
		// Statistic API
		router.GET(publicRouter, "/getScore", s.statisticDomain.GetScore)
		router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	}
}
