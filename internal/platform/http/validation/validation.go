// Package validation はginのバリデーターに独自のバインディングルールを登録します。
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var once sync.Once

// MustRegister は独自タグを登録します。複数回呼んでも安全です。
func MustRegister() {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic("validation: gin validator engine is not go-playground/validator")
		}
		if err := v.RegisterValidation("notblank", notBlank); err != nil {
			panic(err)
		}
		v.RegisterTagNameFunc(label)
	})
}

// notBlank は空白だけの文字列を拒否します。
func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// label はエラーメッセージ内でフィールドを`label`タグの名前で表します。
func label(f reflect.StructField) string {
	if l := f.Tag.Get("label"); l != "" {
		return l
	}
	return f.Name
}

// Message はバインディングエラーをフォーム上部に表示する文に変換します。
func Message(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Please check the form and try again."
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required", "notblank":
		return field + " is required."
	case "email":
		return field + " must be a valid email address."
	case "url":
		return field + " must be a valid URL."
	case "min":
		return field + " must be at least " + fe.Param() + " characters."
	case "max":
		return field + " must be at most " + fe.Param() + " characters."
	default:
		return field + " is invalid."
	}
}
