// Package jwtmw はセッショントークンに署名し、そこからリクエストの識別情報を解決します。
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken は署名または形式の検証に失敗したトークンに対して返されます。
var ErrInvalidToken = errors.New("invalid session token")

// claimSessionID はトークン内で不透明なセッションIDを運ぶクレームです。
const claimSessionID = "sid"

// Codec はセッションIDにHS256で署名します。
// トークンにexpクレームはなく、セッションはログアウトまで有効です。
type Codec struct {
	secret []byte
	now    func() time.Time
}

// NewCodec はsecretで署名するCodecを生成します。
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// Encode はsessionIDを署名付きトークンに包みます。
func (c *Codec) Encode(sessionID string) (string, error) {
	claims := jwt.MapClaims{
		claimSessionID: sessionID,
		"iat":          c.now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode はトークンを検証し、セッションIDを返します。
func (c *Codec) Decode(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sid, ok := claims[claimSessionID].(string)
	if !ok || sid == "" {
		return "", ErrInvalidToken
	}
	return sid, nil
}
