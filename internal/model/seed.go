package model

import (
	"context"
	"fmt"
	"jobplus/internal/entity"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/sirupsen/logrus"
)

const (
	DefaultSeedUsers     = 15
	DefaultSeedCompanies = 10
	DefaultSeedJobs      = 50
)

var seedRoles = []int{int(entity.UserRoleNormal), int(entity.UserRoleCompany)}

// SeedOptions 控制生成的数据量，零值字段使用默认数量。
type SeedOptions struct {
	Users     int
	Companies int
	Jobs      int
	// RandomSeed 为 0 时每次运行生成不同数据。
	RandomSeed uint64
}

func (o SeedOptions) withDefaults() SeedOptions {
	if o.Users <= 0 {
		o.Users = DefaultSeedUsers
	}
	if o.Companies <= 0 {
		o.Companies = DefaultSeedCompanies
	}
	if o.Jobs <= 0 {
		o.Jobs = DefaultSeedJobs
	}
	return o
}

// SeedBatch holds generated records that have not been persisted yet.
// Jobs carry no company until the batch is inserted.
type SeedBatch struct {
	Users     []entity.DbUser
	Companies []entity.DbCompanyDetail
	Jobs      []entity.DbJob
}

// SeedResult 记录一次填充写入的行数。
type SeedResult struct {
	Users     int
	Companies int
	Jobs      int
}

// Generator 生成随机的用户、企业和职位测试数据。
type Generator struct {
	faker *gofakeit.Faker
	opts  SeedOptions
	log   *logrus.Logger
}

// NewGenerator creates a generator; the same non-zero RandomSeed yields the same batch.
func NewGenerator(opts SeedOptions, log *logrus.Logger) *Generator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Generator{
		faker: gofakeit.New(opts.RandomSeed),
		opts:  opts.withDefaults(),
		log:   log,
	}
}

// Run generates a batch and inserts it in a single transaction.
func (g *Generator) Run(ctx context.Context, repo Repository) (SeedResult, error) {
	batch, err := g.Build()
	if err != nil {
		return SeedResult{}, err
	}
	return g.Insert(ctx, repo, batch)
}

// Build 在内存中生成全部记录，不访问数据库。
func (g *Generator) Build() (SeedBatch, error) {
	users, err := g.buildUsers()
	if err != nil {
		return SeedBatch{}, err
	}
	return SeedBatch{
		Users:     users,
		Companies: g.buildCompanies(),
		Jobs:      g.buildJobs(),
	}, nil
}

// Insert persists batch atomically. Companies are written first and every job is
// assigned one of the company IDs created in the same transaction. Any failure
// rolls back the whole batch. The caller's batch is left untouched, so it can be
// inserted again after a rollback.
func (g *Generator) Insert(ctx context.Context, repo Repository, batch SeedBatch) (SeedResult, error) {
	if repo == nil {
		return SeedResult{}, fmt.Errorf("repository is nil")
	}
	if len(batch.Jobs) > 0 && len(batch.Companies) == 0 {
		return SeedResult{}, fmt.Errorf("cannot seed %d jobs without companies", len(batch.Jobs))
	}

	err := repo.WithTx(ctx, func(tx Repository) error {
		// gorm 会回写主键，每次尝试都基于副本写入
		work := batch.clone()
		if err := tx.CreateUsers(ctx, work.Users); err != nil {
			return fmt.Errorf("insert users: %w", err)
		}
		if err := tx.CreateCompanies(ctx, work.Companies); err != nil {
			return fmt.Errorf("insert companies: %w", err)
		}
		for i := range work.Jobs {
			if work.Jobs[i].CompanyID == 0 {
				company := work.Companies[g.faker.IntRange(0, len(work.Companies)-1)]
				work.Jobs[i].CompanyID = company.ID
			}
		}
		if err := tx.CreateJobs(ctx, work.Jobs); err != nil {
			return fmt.Errorf("insert jobs: %w", err)
		}
		return nil
	})
	if err != nil {
		g.log.WithError(err).Error("seed transaction rolled back")
		return SeedResult{}, err
	}

	result := SeedResult{Users: len(batch.Users), Companies: len(batch.Companies), Jobs: len(batch.Jobs)}
	g.log.WithFields(logrus.Fields{
		"users":     result.Users,
		"companies": result.Companies,
		"jobs":      result.Jobs,
	}).Info("seed data committed")
	return result, nil
}

func (b SeedBatch) clone() SeedBatch {
	return SeedBatch{
		Users:     append([]entity.DbUser(nil), b.Users...),
		Companies: append([]entity.DbCompanyDetail(nil), b.Companies...),
		Jobs:      append([]entity.DbJob(nil), b.Jobs...),
	}
}

func (g *Generator) buildUsers() ([]entity.DbUser, error) {
	f := g.faker
	users := make([]entity.DbUser, 0, g.opts.Users)
	seen := make(map[string]struct{}, g.opts.Users)
	for len(users) < g.opts.Users {
		email := strings.ToLower(entity.Truncate(f.Email(), 64))
		if _, dup := seen[email]; dup {
			continue
		}
		seen[email] = struct{}{}

		user := entity.DbUser{
			Username: entity.Truncate(f.Name(), 32),
			Email:    email,
			JobTitle: entity.Truncate(f.JobTitle(), 64),
			Phone:    entity.Truncate(f.Phone(), 16),
			RealName: entity.Truncate(f.Name(), 64),
			Role:     entity.UserRole(f.RandomInt(seedRoles)),
			IsActive: true,
		}
		if err := user.SetPassword(f.Password(true, true, true, false, false, 12)); err != nil {
			return nil, fmt.Errorf("hash seed password: %w", err)
		}
		users = append(users, user)
	}
	return users, nil
}

func (g *Generator) buildCompanies() []entity.DbCompanyDetail {
	f := g.faker
	companies := make([]entity.DbCompanyDetail, 0, g.opts.Companies)
	for i := 0; i < g.opts.Companies; i++ {
		companies = append(companies, entity.DbCompanyDetail{
			Logo:             entity.Truncate(f.URL(), 256),
			Site:             entity.Truncate(f.URL(), 128),
			Location:         entity.Truncate(f.City(), 24),
			Description:      entity.Truncate(f.Word(), 100),
			About:            entity.Truncate(f.Word(), 1024),
			Tags:             entity.Truncate(f.Word(), 128),
			Stack:            entity.Truncate(f.Word(), 128),
			TeamIntroduction: entity.Truncate(f.Word(), 256),
			Welfares:         entity.Truncate(f.Word(), 256),
			Field:            entity.Truncate(f.Word(), 128),
			FinanceStage:     entity.Truncate(f.Word(), 128),
		})
	}
	return companies
}

func (g *Generator) buildJobs() []entity.DbJob {
	f := g.faker
	jobs := make([]entity.DbJob, 0, g.opts.Jobs)
	for i := 0; i < g.opts.Jobs; i++ {
		jobs = append(jobs, entity.DbJob{
			Title:       entity.Truncate(f.JobTitle(), 64),
			SalaryMin:   f.IntRange(2, 5) * 1000,
			SalaryMax:   f.IntRange(6, 10) * 1000,
			Experience:  f.IntRange(0, 5),
			Location:    entity.Truncate(f.City(), 64),
			Tag:         entity.Truncate(f.Word(), 64),
			Description: entity.Truncate(f.Word(), 256),
			Requirement: entity.Truncate(f.Phrase(), 256),
			Online:      true,
		})
	}
	return jobs
}
