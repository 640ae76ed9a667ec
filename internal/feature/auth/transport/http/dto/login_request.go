// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/loginフォームの入力を表します。
// 必須フィールドとメール形式のバリデーションを含みます。
type LoginReq struct {
	Email    string `form:"email" binding:"required,email" label:"Email"`
	Password string `form:"password" binding:"required" label:"Password"`
}
