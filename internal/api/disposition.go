package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// contentDisposition 生成同时兼容 ASCII 与 RFC 5987 的 Content-Disposition
func contentDisposition(kind, filename string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return fmt.Sprintf("%s; filename=\"%s\"; filename*=UTF-8''%s", kind, fallback, url.PathEscape(filename))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
