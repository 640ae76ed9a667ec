// Package httpx はginハンドラーで共有する小さなリクエスト補助関数をまとめます。
package httpx

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PathID は指定したパスパラメータを正の整数IDとしてバインドします。
func PathID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("parameter %s must be positive, got %d", name, id)
	}
	return uint(id), nil
}
