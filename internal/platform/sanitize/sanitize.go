// Package sanitize はユーザーが入力したリッチテキストを保存前に無害化します。
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// HTML はエディターが生成する書式を残しつつ、スクリプトやイベントハンドラーなど
// 安全でないマークアップを取り除きます。
type HTML struct {
	policy *bluemonday.Policy
}

// New はbluemondayのUGCポリシーに基づくサニタイザーを返します。
func New() *HTML {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &HTML{policy: p}
}

// Sanitize はsの安全な部分だけを返します。
func (h *HTML) Sanitize(s string) string {
	return strings.TrimSpace(h.policy.Sanitize(s))
}

// TextLen はマークアップをすべて除いたsの表示文字数を数えます。
func TextLen(s string) int {
	text := html.UnescapeString(bluemonday.StrictPolicy().Sanitize(s))
	return len([]rune(strings.TrimSpace(text)))
}
