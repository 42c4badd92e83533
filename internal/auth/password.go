package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrEmptyPassword 明文密码为空
	ErrEmptyPassword = errors.New("password must not be empty")
	// ErrPasswordTooLong bcrypt 只处理前 72 字节，超长密码直接拒绝
	ErrPasswordTooLong = errors.New("password must not exceed 72 bytes")
	errEmptyHash       = errors.New("stored password hash is empty")
)

const maxPasswordBytes = 72

// Hasher 使用固定代价因子生成 bcrypt 哈希
type Hasher struct {
	cost int
}

// NewHasher clamps cost into bcrypt's accepted range.
func NewHasher(cost int) Hasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return Hasher{cost: cost}
}

var defaultHasher = NewHasher(bcrypt.DefaultCost)

// Hash 对明文密码进行加盐哈希处理
func (h Hasher) Hash(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > maxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// NeedsRehash reports whether hash was produced with a different cost.
func (h Hasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return true
	}
	return cost != h.cost
}

// HashPassword hashes with the default cost.
func HashPassword(password string) (string, error) {
	return defaultHasher.Hash(password)
}

// NeedsRehash 判断哈希是否需要按默认代价重新生成
func NeedsRehash(hash string) bool {
	return defaultHasher.NeedsRehash(hash)
}

// VerifyPassword 验证密码是否与存储的哈希值匹配
func VerifyPassword(hash, candidate string) error {
	if strings.TrimSpace(hash) == "" {
		return errEmptyHash
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate))
}

// CheckPassword reports whether candidate matches the stored hash.
func CheckPassword(hash, candidate string) bool {
	return VerifyPassword(hash, candidate) == nil
}
