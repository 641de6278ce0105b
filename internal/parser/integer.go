package parser

import (
	"math"
	"strconv"
	"strings"
)

// ParseInt 将单元格值解析为整数（停靠序号等）
// 数值向零截断；文本去掉数字和负号以外的字符后，取开头的带符号整数
func ParseInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	if f, ok := asNumber(v); ok {
		if !finite(f) {
			return 0, false
		}
		return int(math.Trunc(f)), true
	}

	s, ok := v.(string)
	if !ok {
		s = CellString(v)
	}
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	return leadingInt(s)
}

// leadingInt 解析开头的 [-]digits，后续字符忽略（"12-3" -> 12）
func leadingInt(s string) (int, bool) {
	end := 0
	if s[0] == '-' {
		end = 1
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
