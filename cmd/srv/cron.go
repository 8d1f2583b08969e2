package main

import (
	"github.com/meriter/backend/internal/domain/cron"
	"github.com/meriter/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewResetQuotaCronJob(
		s.communityRepo, s.followerRepo, xcontext.Configs(s.ctx).Quota.ResetHour))
	cronJobManager.Start(s.ctx)

	return nil
}
