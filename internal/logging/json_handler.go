package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

const jsonTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// newJSONHandler emits one object per line with "ts", "level" and "msg" keys.
// Timestamps are UTC with millisecond precision. Durations are written as
// integer milliseconds under "<key>_ms".
func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	replace := func(_ []string, attr slog.Attr) slog.Attr {
		switch {
		case attr.Key == slog.TimeKey && attr.Value.Kind() == slog.KindTime:
			return slog.String("ts", attr.Value.Time().UTC().Format(jsonTimeLayout))
		case attr.Key == slog.LevelKey:
			return slog.String(slog.LevelKey, strings.ToLower(attr.Value.String()))
		case attr.Key == slog.SourceKey:
			src, ok := attr.Value.Any().(*slog.Source)
			if !ok || src == nil {
				return attr
			}
			return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
		case attr.Value.Kind() == slog.KindDuration:
			return slog.Int64(attr.Key+"_ms", attr.Value.Duration().Milliseconds())
		}
		return attr
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replace,
	})
}

