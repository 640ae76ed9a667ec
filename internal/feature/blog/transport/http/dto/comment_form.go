package dto

// CommentForm は記事下のコメント欄です。表示文字数はサニタイズ後に検証するため、
// ここでの上限はマークアップ分を含む生の長さの制限です。
type CommentForm struct {
	Comment string `form:"comment" binding:"required,notblank,max=5000" label:"Comment"`
}
