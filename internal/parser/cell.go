package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// CellString 将单元格值转为去除首尾空白的文本；nil 返回 ""
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return formatNumber(x)
	case float32:
		return formatNumber(float64(x))
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return strings.TrimSpace(x.String())
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// asNumber 识别数值类单元格
func asNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	return 0, false
}

// roundHalfUp 四舍五入（.5 向正无穷）
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
