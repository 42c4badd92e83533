package storage

import (
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

func sanitizePathSegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		}
	}
	return builder.String()
}

func normalizeExtension(ext string) string {
	trimmed := strings.TrimSpace(ext)
	trimmed = strings.TrimPrefix(trimmed, ".")
	if normalized := sanitizePathSegment(trimmed); normalized != "" {
		return normalized
	}
	return "bin"
}

func buildObjectKey(opts SaveOptions, now time.Time) string {
	category := sanitizePathSegment(opts.Category)
	if category == "" {
		category = "misc"
	}
	owner := sanitizePathSegment(opts.Owner)
	if owner == "" {
		owner = "anonymous"
	}
	now = now.UTC()
	datedir := fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day())
	filename := fmt.Sprintf("%s.%s", uuid.NewString(), normalizeExtension(opts.Extension))
	return path.Join(category, owner, datedir, filename)
}

func detectContentType(ext string) string {
	normalized := normalizeExtension(ext)
	typeName := mime.TypeByExtension("." + normalized)
	if typeName == "" {
		return "application/octet-stream"
	}
	return typeName
}

func joinPrefix(prefix, key string) string {
	cleanPrefix := trimPrefix(prefix)
	if cleanPrefix == "" {
		return strings.TrimLeft(key, "/")
	}
	return path.Join(cleanPrefix, strings.TrimLeft(key, "/"))
}

func trimPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

// remoteKey builds the full object key for a backend configured with prefix.
func remoteKey(prefix string, opts SaveOptions) string {
	key := buildObjectKey(opts, time.Now())
	if prefix != "" {
		key = joinPrefix(prefix, key)
	}
	return key
}
