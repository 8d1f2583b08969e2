package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/meriter/backend/config"
	"github.com/meriter/backend/internal/common"
	"github.com/meriter/backend/internal/domain"
	"github.com/meriter/backend/internal/domain/statistic"
	"github.com/meriter/backend/internal/repository"
	"github.com/meriter/backend/pkg/kafka"
	"github.com/meriter/backend/pkg/logger"
	"github.com/meriter/backend/pkg/pubsub"
	"github.com/meriter/backend/pkg/router"
	"github.com/meriter/backend/pkg/xcontext"
	"github.com/meriter/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo        repository.UserRepository
	communityRepo   repository.CommunityRepository
	publicationRepo repository.PublicationRepository
	commentRepo     repository.CommentRepository
	voteRepo        repository.VoteRepository
	walletRepo      repository.WalletRepository
	transactionRepo repository.TransactionRepository
	followerRepo    repository.FollowerRepository

	resolver   *common.BeneficiaryResolver
	ledger     *common.Ledger
	scoreboard statistic.Scoreboard

	voteDomain      domain.VoteDomain
	quotaDomain     domain.QuotaDomain
	walletDomain    domain.WalletDomain
	withdrawDomain  domain.WithdrawDomain
	statisticDomain domain.StatisticDomain

	publisher   pubsub.Publisher
	redisClient xredis.Client
	router      *router.Router
	server      *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "meriter"),
			User:     getEnv("MYSQL_USER", "meriter"),
			Password: getEnv("MYSQL_PASSWORD", "meriter"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("HOST", "localhost"),
			Port:         getEnv("PORT", "8080"),
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 50),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 10),
		},
		Auth: config.AuthConfigs{
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Secret:     getEnv("TOKEN_SECRET", "token_secret"),
				Expiration: getEnvAsDuration("TOKEN_EXPIRATION", time.Hour*24),
			},
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr: getEnv("KAFKA_ADDRESS", "localhost:9092"),
		},
		Quota: config.QuotaConfigs{
			ResetHour: getEnvAsInt("QUOTA_RESET_HOUR", 0),
		},
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher(
		"backend", []string{xcontext.Configs(s.ctx).Kafka.Addr})
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.communityRepo = repository.NewCommunityRepository()
	s.publicationRepo = repository.NewPublicationRepository()
	s.commentRepo = repository.NewCommentRepository()
	s.voteRepo = repository.NewVoteRepository()
	s.walletRepo = repository.NewWalletRepository()
	s.transactionRepo = repository.NewTransactionRepository()
	s.followerRepo = repository.NewFollowerRepository()
}

func (s *srv) loadDomains() {
	s.resolver = common.NewBeneficiaryResolver(s.publicationRepo, s.commentRepo, s.voteRepo)
	s.ledger = common.NewLedger(s.communityRepo, s.walletRepo, s.transactionRepo)
	s.scoreboard = statistic.New(s.redisClient)

	s.voteDomain = domain.NewVoteDomain(s.communityRepo, s.voteRepo, s.publicationRepo,
		s.commentRepo, s.followerRepo, s.resolver, s.ledger, s.scoreboard, s.publisher)
	s.quotaDomain = domain.NewQuotaDomain(s.communityRepo, s.followerRepo)
	s.walletDomain = domain.NewWalletDomain(s.communityRepo, s.walletRepo,
		s.transactionRepo, s.ledger)
	s.withdrawDomain = domain.NewWithdrawDomain(s.communityRepo, s.voteRepo,
		s.transactionRepo, s.resolver, s.ledger, s.publisher)
	s.statisticDomain = domain.NewStatisticDomain(s.publicationRepo, s.voteRepo,
		s.communityRepo, s.scoreboard)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}
