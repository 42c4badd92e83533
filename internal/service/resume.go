package service

import (
	"context"
	"errors"
	"fmt"
	"jobplus/internal/entity"
	"jobplus/internal/model"
	"jobplus/internal/storage"
	"path"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	maxResumeSize = 10 << 20
	maxLogoSize   = 2 << 20
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrEmptyFile       = errors.New("file is empty")
)

var (
	resumeExtensions = map[string]struct{}{"pdf": {}, "doc": {}, "docx": {}}
	logoExtensions   = map[string]struct{}{"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "webp": {}, "svg": {}}
)

// ResumeService 将简历与企业 logo 写入对象存储，并把访问地址回写数据库。
type ResumeService struct {
	repo    model.Repository
	storage storage.Storage
	urls    storage.URLBuilder
}

func NewResumeService(repo model.Repository, store storage.Storage, urls storage.URLBuilder) *ResumeService {
	return &ResumeService{repo: repo, storage: store, urls: urls}
}

// Upload stores a resume for userID and returns its public URL. The previous
// resume object is removed once the new URL is saved.
func (s *ResumeService) Upload(ctx context.Context, userID uint, filename string, data []byte) (string, error) {
	ext, err := checkUpload(filename, data, resumeExtensions, maxResumeSize)
	if err != nil {
		return "", err
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	owner := "user-" + strconv.FormatUint(uint64(user.ID), 10)
	url, key, err := s.store(ctx, data, storage.CategoryResume, owner, ext, 255)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateUser(ctx, user.ID, entity.UserUpdates{ResumeURL: &url}); err != nil {
		s.discard(ctx, key)
		return "", fmt.Errorf("update resume url: %w", err)
	}
	s.removePrevious(ctx, user.ResumeURL)
	return url, nil
}

// UploadCompanyLogo stores a logo for companyID and returns its public URL.
func (s *ResumeService) UploadCompanyLogo(ctx context.Context, companyID uint, filename string, data []byte) (string, error) {
	ext, err := checkUpload(filename, data, logoExtensions, maxLogoSize)
	if err != nil {
		return "", err
	}
	company, err := s.repo.GetCompany(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("load company: %w", err)
	}

	owner := "company-" + strconv.FormatUint(uint64(company.ID), 10)
	url, key, err := s.store(ctx, data, storage.CategoryLogo, owner, ext, 256)
	if err != nil {
		return "", err
	}

	if err := s.repo.UpdateCompany(ctx, company.ID, entity.CompanyUpdates{Logo: &url}); err != nil {
		s.discard(ctx, key)
		return "", fmt.Errorf("update company logo: %w", err)
	}
	s.removePrevious(ctx, company.Logo)
	return url, nil
}

func (s *ResumeService) store(ctx context.Context, data []byte, category, owner, ext string, limit int) (string, string, error) {
	if s.storage == nil {
		return "", "", fmt.Errorf("storage not configured")
	}
	key, err := s.storage.Save(ctx, data, storage.SaveOptions{Category: category, Owner: owner, Extension: ext})
	if err != nil {
		return "", "", fmt.Errorf("save %s: %w", category, err)
	}
	url := s.urls.URL(key)
	if len(url) > limit {
		s.discard(ctx, key)
		return "", "", fmt.Errorf("public url exceeds %d characters", limit)
	}
	return url, key, nil
}

func (s *ResumeService) discard(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to remove uploaded object")
	}
}

// removePrevious 只删除由本服务生成的旧对象，外部链接保持不动。
func (s *ResumeService) removePrevious(ctx context.Context, previous string) {
	key, ok := s.urls.Key(strings.TrimSpace(previous))
	if !ok {
		return
	}
	s.discard(ctx, key)
}

func checkUpload(filename string, data []byte, allowed map[string]struct{}, limit int) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > limit {
		return "", ErrFileTooLarge
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(strings.TrimSpace(filename)), "."))
	if _, ok := allowed[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFile, filename)
	}
	return ext, nil
}
