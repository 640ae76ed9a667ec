package dto

// RegisterReq は/registerフォームの入力を表します。
// bcryptは72バイトを超える入力を扱えないため、パスワードの上限もここで検証します。
type RegisterReq struct {
	Name     string `form:"name" binding:"required,notblank,max=250" label:"Name"`
	Email    string `form:"email" binding:"required,email,max=250" label:"Email"`
	Password string `form:"password" binding:"required,min=8,max=72" label:"Password"`
}
