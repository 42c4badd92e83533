package main

import (
	"context"
	"jobplus/internal/config"
	"jobplus/internal/model"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func main() {
	// 初始化配置
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		os.Exit(1)
	}

	// 初始化logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	repo, err := model.InitRepository(&cfg, logger)
	if err != nil {
		logger.WithError(err).Error("failed to initialise repository")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := model.NewGenerator(model.SeedOptions{
		Users:      cfg.SeedUsers,
		Companies:  cfg.SeedCompanies,
		Jobs:       cfg.SeedJobs,
		RandomSeed: cfg.SeedRandom,
	}, logger)

	result, err := generator.Run(ctx, repo)
	if err != nil {
		logger.WithError(err).Error("填充测试数据失败")
		stop()
		os.Exit(1)
	}
	logger.WithFields(logrus.Fields{
		"db_type":   cfg.DBType,
		"users":     result.Users,
		"companies": result.Companies,
		"jobs":      result.Jobs,
	}).Info("填充测试数据完成")
}
