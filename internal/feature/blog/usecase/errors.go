package usecase

import "errors"

var (
	// ErrPostNotFound は指定した記事が存在しない場合に返されます。
	ErrPostNotFound = errors.New("post not found")

	// ErrDuplicateTitle は同じタイトルの記事が既に存在する場合に返されます。
	ErrDuplicateTitle = errors.New("a post with this title already exists")

	// ErrInvalidPost はサニタイズ後に必須フィールドが空になった場合に返されます。
	ErrInvalidPost = errors.New("title, subtitle, image URL and body are required")

	// ErrEmptyComment はコメントに表示される文字がない場合に返されます。
	ErrEmptyComment = errors.New("comment is empty")

	// ErrCommentTooLong はコメントが文字数の上限を超えた場合に返されます。
	ErrCommentTooLong = errors.New("comment is too long")
)
