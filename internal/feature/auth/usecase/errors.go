// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrUserNotFound はメールアドレスまたはIDでユーザーが見つからない場合に返されます。
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists は既に存在するメールアドレスでユーザーを作成しようとした場合に返されます。
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials はメールアドレスが存在しないか、パスワードが一致しない場合に返されます。
	// アカウントの列挙を防ぐため、両者は同じエラーにまとめています。
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSessionNotFound はIDでセッションが見つからない場合に返されます。
	ErrSessionNotFound = errors.New("session not found")

	// ErrPasswordTooShort はパスワードがminPasswordLength文字に満たない場合に返されます。
	ErrPasswordTooShort = errors.New("password is too short")

	// ErrPasswordTooLong はパスワードがbcryptの72バイト上限を超える場合に返されます。
	// マルチバイト文字はエンコード後のバイト数で数えます。
	ErrPasswordTooLong = errors.New("password is too long")
)
