package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"jobplus/internal/config"
	"jobplus/internal/entity"
	"jobplus/internal/model"
	"jobplus/internal/service"
	"jobplus/internal/storage"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
)

const usage = `用法: admin <command> [flags]

commands:
  register       注册账号        -email -password [-username] [-role 10|20|30]
  apply          投递简历        -user -job
  respond        处理投递        -delivery (-accept | -reject) [-response]
  upload-resume  上传简历        -user -file
  upload-logo    上传企业 logo   -company -file
`

func main() {
	cfg, err := config.ParseConfig()
	if err != nil {
		logrus.WithError(err).Error("Failed to parse config")
		os.Exit(1)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Args[1:], os.Stdout); err != nil {
		logger.WithError(err).Error("admin command failed")
		stop()
		os.Exit(1)
	}
}

// app 汇总命令需要的服务，存储在首次使用时才初始化
type app struct {
	cfg      config.Config
	repo     model.Repository
	accounts *service.AccountService
	delivery *service.DeliveryService
}

func (a *app) resumes() (*service.ResumeService, error) {
	store, err := storage.NewStorage(a.cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return service.NewResumeService(a.repo, store, storage.NewURLBuilder(a.cfg.StoragePublicBaseURL)), nil
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}

	repo, err := model.InitRepository(&cfg, log)
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	a := &app{
		cfg:      cfg,
		repo:     repo,
		accounts: service.NewAccountService(repo),
		delivery: service.NewDeliveryService(repo),
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest, out)
	case "apply":
		return a.apply(ctx, rest, out)
	case "respond":
		return a.respond(ctx, rest, out)
	case "upload-resume":
		return a.upload(ctx, rest, out, "user")
	case "upload-logo":
		return a.upload(ctx, rest, out, "company")
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) register(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "登录邮箱（必填）")
	password := fs.String("password", "", "密码（必填）")
	username := fs.String("username", "", "用户名，默认取邮箱前缀")
	role := fs.Int("role", int(entity.UserRoleNormal), "角色：10 求职者，20 企业，30 管理员")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.accounts.Register(ctx, service.RegisterRequest{
		Email:    *email,
		Password: *password,
		Username: *username,
		Role:     entity.UserRole(*role),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "user %d registered (%s, role=%s)\n", user.ID, user.Email, user.Role)
	return nil
}

func (a *app) apply(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	userID := fs.Uint("user", 0, "求职者 ID（必填）")
	jobID := fs.Uint("job", 0, "职位 ID（必填）")
	if err := fs.Parse(args); err != nil {
		return err
	}

	delivery, err := a.delivery.Apply(ctx, *userID, *jobID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "delivery %d created for company %d\n", delivery.ID, delivery.CompanyID)
	return nil
}

func (a *app) respond(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("respond", flag.ContinueOnError)
	id := fs.Uint("delivery", 0, "投递 ID（必填）")
	accept := fs.Bool("accept", false, "接受投递")
	reject := fs.Bool("reject", false, "拒绝投递")
	response := fs.String("response", "", "反馈内容")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *accept == *reject {
		return errors.New("exactly one of -accept or -reject is required")
	}

	var err error
	if *accept {
		err = a.delivery.Accept(ctx, *id, *response)
	} else {
		err = a.delivery.Reject(ctx, *id, *response)
	}
	if err != nil {
		return err
	}

	detail, err := a.delivery.Detail(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "delivery %d is now %s\n", detail.Delivery.ID, detail.Delivery.Status)
	return nil
}

func (a *app) upload(ctx context.Context, args []string, out io.Writer, owner string) error {
	fs := flag.NewFlagSet("upload-"+owner, flag.ContinueOnError)
	id := fs.Uint(owner, 0, owner+" ID（必填）")
	file := fs.String("file", "", "本地文件路径（必填）")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("missing required flag: -file")
	}
	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	svc, err := a.resumes()
	if err != nil {
		return err
	}
	var url string
	if owner == "company" {
		url, err = svc.UploadCompanyLogo(ctx, *id, filepath.Base(*file), data)
	} else {
		url, err = svc.Upload(ctx, *id, filepath.Base(*file), data)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, url)
	return nil
}
