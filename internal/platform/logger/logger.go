// Package logger はプロセス全体のslogロガーを設定します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Init は標準出力に書き込むslogのデフォルトロガーを設定します。
// formatは"json"または"text"で、不明なレベルはinfoとして扱います。
func Init(level, format string) *slog.Logger {
	return New(os.Stdout, level, format)
}

// New はwに出力するロガーを構築し、slogのデフォルトに設定します。
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// ParseLevel はレベル名をslog.Levelに変換します。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
