package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reParenthesized = regexp.MustCompile(`\([^)]*\)`)
	reNonAlnum      = regexp.MustCompile(`[^a-z0-9]`)
)

// NormalizeColumnName 规范化列名：小写、去括号内容、去重音、只保留 [a-z0-9]
// "Endereço (destino)" -> "endereco"
func NormalizeColumnName(name string) string {
	name = strings.ToLower(name)
	name = reParenthesized.ReplaceAllString(name, "")
	name = foldDiacritics(name)
	return reNonAlnum.ReplaceAllString(name, "")
}

// foldDiacritics 去掉组合重音符号（ç -> c, ã -> a）
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
