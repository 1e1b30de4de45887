package utils

import (
	"strings"
	"unicode"
)

// Slugify 把分类名转成 URL-safe slug：
// 小写 → 去掉非 \w\s- 字符 → 空格/下划线/连字符折叠为单个 '-' → 去掉首尾 '-'
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-' || r == '\t':
			b.WriteByte('-')
		default:
			// 丢弃其它符号
		}
	}
	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}
