package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"blog_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// maxPasswordBytes はbcryptが受け付ける入力の最大バイト数です。
	maxPasswordBytes = 72

	// sessionIDBytes はhexエンコード前のセッショントークンのバイト数です。
	sessionIDBytes = 32

	// dummyHash はメールアドレスが存在しない場合の比較対象です。
	// ログインの応答時間からアカウントの有無が推測されないようにします。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーを永続化します。最初に保存されたユーザーは同一トランザクション内で管理者になります。
	// メールアドレスが重複する場合はErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定したメールアドレスのユーザーを取得します。
	// 存在しない場合はErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定したIDのユーザーを取得します。
	// 存在しない場合はErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// PasswordHasher はパスワードのハッシュ化と検証を行います。
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, credential string) bool
}

// SessionMeta は新しいセッションに記録するリクエスト情報です。
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// authUsecase はセッションのライフサイクルを実装します。
// 登録またはログインで匿名から認証済みに遷移し、ログアウトで匿名に戻ります。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	hasher   PasswordHasher
	now      func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, hasher PasswordHasher) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		now:      time.Now,
	}
}

// normalizeEmail は保存・検索用にメールアドレスの前後の空白を除去し小文字化します。
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword はパスワードがセキュリティ要件を満たすか検証します。
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrPasswordTooShort, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: must be at most %d bytes", ErrPasswordTooLong, maxPasswordBytes)
	}
	return nil
}

// Register はハッシュ化したパスワードでユーザーを作成し、セッションを開始します。
// 既存のメールアドレスではErrEmailAlreadyExistsを返し、行は作成しません。
func (u *authUsecase) Register(ctx context.Context, name, email, password string, meta SessionMeta) (*entity.User, *entity.Session, error) {
	if err := validatePassword(password); err != nil {
		return nil, nil, err
	}
	email = normalizeEmail(email)

	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, nil, err
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, nil, err
	}
	user := &entity.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashed,
		Role:     entity.RoleMember,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := u.openSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login はユーザーを認証し、セッションを開始します。
// メールアドレスが存在しない場合でも必ずパスワードを比較します。
func (u *authUsecase) Login(ctx context.Context, email, password string, meta SessionMeta) (*entity.User, *entity.Session, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, nil, err
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	ok := u.hasher.Verify(password, passwordHash)

	if err != nil || !ok {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := u.openSession(ctx, user.ID, meta)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout はセッションを終了します。存在しないセッションはログアウト済みとして扱います。
func (u *authUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Resolve はセッショントークンからユーザーを取得します。
// ErrSessionNotFoundは匿名、ErrUserNotFoundはセッション有効中に
// アカウントが消えたことを表します。
func (u *authUsecase) Resolve(ctx context.Context, sessionID string) (*entity.User, error) {
	if sessionID == "" {
		return nil, ErrSessionNotFound
	}
	session, err := u.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return u.users.FindByID(ctx, session.UserID)
}

func (u *authUsecase) openSession(ctx context.Context, userID uint, meta SessionMeta) (*entity.Session, error) {
	id, err := newSessionID()
	if err != nil {
		return nil, err
	}
	session := &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: meta.UserAgent,
		IPAddress: meta.IPAddress,
		CreatedAt: u.now(),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

func newSessionID() (string, error) {
	b := make([]byte, sessionIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	return hex.EncodeToString(b), nil
}
