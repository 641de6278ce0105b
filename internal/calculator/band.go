package calculator

import "romaneio/internal/model"

// SLA 阈值（分钟 / 站数）
const (
	TimeGreenBelow  = 210 // 3h30
	TimeYellowUpTo  = 260 // 4h20
	StopsGreenBelow = 20
	StopsYellowUpTo = 30
)

// Classification 某一评分维度下的得分与等级
type Classification struct {
	Score *int       `json:"score"`
	Band  model.Band `json:"band"`
}

// BandStats 各等级线路数量
type BandStats struct {
	Total  int `json:"total"`
	Green  int `json:"green"`
	Yellow int `json:"yellow"`
	Red    int `json:"red"`
	None   int `json:"none"`
}

// Classify 计算线路在指定维度下的得分与等级
func Classify(r model.Route, mode model.Mode) Classification {
	if mode == model.ModeStops {
		stops := StopsCount(r)
		return Classification{Score: &stops, Band: StopsBand(stops)}
	}
	worst := WorstMinutes(r)
	return Classification{Score: worst, Band: TimeBand(worst)}
}

// TimeBand 时长维度分级：<210 绿，210~260 黄，>260 红，无数据 none
func TimeBand(minutes *int) model.Band {
	switch {
	case minutes == nil:
		return model.BandNone
	case *minutes < TimeGreenBelow:
		return model.BandGreen
	case *minutes <= TimeYellowUpTo:
		return model.BandYellow
	default:
		return model.BandRed
	}
}

// StopsBand 站数维度分级：<20 绿，20~30 黄，>30 红
func StopsBand(stops int) model.Band {
	switch {
	case stops < StopsGreenBelow:
		return model.BandGreen
	case stops <= StopsYellowUpTo:
		return model.BandYellow
	default:
		return model.BandRed
	}
}

// CountBands 统计各等级数量
func CountBands(routes []model.Route, mode model.Mode) BandStats {
	stats := BandStats{Total: len(routes)}
	for _, r := range routes {
		switch Classify(r, mode).Band {
		case model.BandGreen:
			stats.Green++
		case model.BandYellow:
			stats.Yellow++
		case model.BandRed:
			stats.Red++
		default:
			stats.None++
		}
	}
	return stats
}
