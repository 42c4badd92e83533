package storage

import (
	"context"
	"fmt"
	"jobplus/internal/config"
	"strings"
)

const (
	// TypeLocal 表示本地文件系统存储。
	TypeLocal = "local"
	// TypeS3 表示 Amazon S3 或兼容的存储后端。
	TypeS3 = "s3"
	// TypeOSS 表示阿里云 OSS 存储。
	TypeOSS = "oss"
	// TypeCOS 表示腾讯云 COS 存储。
	TypeCOS = "cos"
	// TypeR2 表示 Cloudflare R2 存储。
	TypeR2 = "r2"
	// TypeMinIO 表示自建 MinIO 存储。
	TypeMinIO = "minio"
)

const (
	CategoryResume = "resumes"
	CategoryLogo   = "logos"
)

// SaveOptions 控制对象的存放位置。
//
// 对象键形如 <category>/<owner>/<yyyy>/<mm>/<dd>/<uuid>.<ext>，
// Owner 通常是 "user-12" 或 "company-3"。
type SaveOptions struct {
	Category  string
	Owner     string
	Extension string
}

// Storage 持久化上传的简历、企业 logo 等文件，返回与后端无关的对象键。
type Storage interface {
	Save(ctx context.Context, data []byte, opts SaveOptions) (string, error)
	// Delete 删除对象；对象不存在时视为成功。
	Delete(ctx context.Context, key string) error
}

// LocalBaseDirProvider 由暴露可通过 HTTP 直接提供服务的本地目录的存储驱动实现。
type LocalBaseDirProvider interface {
	LocalBaseDir() string
}

// NewStorage 根据配置实例化存储后端。
func NewStorage(cfg config.Config) (Storage, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.StorageType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStorage(cfg.StorageLocalDir)
	case TypeS3:
		return NewS3Storage(cfg)
	case TypeOSS:
		return NewOSSStorage(cfg)
	case TypeCOS:
		return NewCOSStorage(cfg)
	case TypeR2:
		return NewR2Storage(cfg)
	case TypeMinIO:
		return NewMinIOStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

// URLBuilder turns object keys into the URLs stored on user and company rows.
type URLBuilder struct {
	base string
}

// NewURLBuilder normalises base: absolute http(s) bases are kept, anything else
// becomes a rooted path ("files" -> "/files").
func NewURLBuilder(base string) URLBuilder {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "/files"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") && !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return URLBuilder{base: strings.TrimRight(trimmed, "/")}
}

// URL returns the public URL for key.
func (b URLBuilder) URL(key string) string {
	key = strings.TrimLeft(strings.TrimSpace(key), "/")
	if key == "" {
		return ""
	}
	return b.base + "/" + key
}

// Key reverses URL; ok is false when url was not produced by this builder.
func (b URLBuilder) Key(url string) (string, bool) {
	prefix := b.base + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
