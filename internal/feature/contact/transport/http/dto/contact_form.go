// Package dto はお問い合わせフォームの入力を定義します。
package dto

// ContactForm はお問い合わせページのフォームです。
type ContactForm struct {
	Name    string `form:"name" binding:"required,notblank,max=250" label:"Name"`
	Email   string `form:"email" binding:"required,email,max=250" label:"Email"`
	Phone   string `form:"phone" binding:"max=50" label:"Phone"`
	Message string `form:"message" binding:"required,notblank,max=5000" label:"Message"`
}
