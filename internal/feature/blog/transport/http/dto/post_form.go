// Package dto は blog フィーチャーのフォーム入力を定義します。
package dto

// PostForm は記事の作成・編集フォームです。
type PostForm struct {
	Title    string `form:"title" binding:"required,notblank,max=250" label:"Title"`
	Subtitle string `form:"subtitle" binding:"required,notblank,max=250" label:"Subtitle"`
	ImgURL   string `form:"img_url" binding:"required,url,max=250" label:"Image URL"`
	Body     string `form:"body" binding:"required,notblank" label:"Body"`
}
