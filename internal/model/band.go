package model

import "strings"

// Mode 评分维度
type Mode string

const (
	ModeTime  Mode = "time"  // 按最差投递时长
	ModeStops Mode = "stops" // 按停靠点数量
)

// ParseMode 解析评分维度，兼容原面板的 tempo/paradas 写法；未知值返回 false
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "time", "tempo":
		return ModeTime, true
	case "stops", "paradas":
		return ModeStops, true
	}
	return "", false
}

// Band SLA 等级
type Band string

const (
	BandGreen  Band = "green"
	BandYellow Band = "yellow"
	BandRed    Band = "red"
	BandNone   Band = "none" // 时长模式下没有任何可解析时长
)

// BandFilter 等级筛选，"all" 表示不过滤
type BandFilter string

const BandAll BandFilter = "all"

// Matches 判断等级是否通过筛选
func (f BandFilter) Matches(b Band) bool {
	if f == "" || f == BandAll {
		return true
	}
	return Band(f) == b
}
