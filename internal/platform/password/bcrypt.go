// Package password はログインに使うソルト付き一方向の資格情報ストアを提供します。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher は固定コストのbcryptでパスワードをハッシュ化します。
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher は指定したコストのハッシャーを返します。
// bcryptの範囲外のコストはbcrypt.DefaultCostになります。
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash は平文から保存用の資格情報を生成します。ソルトは結果に含まれます。
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文が資格情報と一致するかを返します。
// 不正な形式の資格情報は不一致として扱い、エラーにはしません。
func (h *BcryptHasher) Verify(plaintext, credential string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext)) == nil
}
