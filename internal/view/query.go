package view

import (
	"github.com/go-playground/validator/v10"

	"romaneio/internal/calculator"
	"romaneio/internal/model"
)

// SortKey 排序字段
type SortKey string

const (
	SortScore SortKey = "score"
	SortAvg   SortKey = "avg"
	SortID    SortKey = "id"
)

// SortDir 排序方向
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// Query 视图查询条件
type Query struct {
	Mode    model.Mode       `json:"mode" form:"mode" validate:"omitempty,oneof=time stops tempo paradas"`
	Band    model.BandFilter `json:"band" form:"band" validate:"omitempty,oneof=all green yellow red none"`
	Search  string           `json:"q" form:"q" validate:"max=200"`
	SortKey SortKey          `json:"sort" form:"sort" validate:"omitempty,oneof=score avg id"`
	SortDir SortDir          `json:"dir" form:"dir" validate:"omitempty,oneof=asc desc"`
}

var queryValidator = validator.New()

// Validate 校验查询条件（取值范围见字段的 validate 标签）
func (q Query) Validate() error {
	return queryValidator.Struct(q)
}

// Normalize 填充默认值：time 模式、全部等级、按得分降序
func (q Query) Normalize() Query {
	if m, ok := model.ParseMode(string(q.Mode)); ok {
		q.Mode = m
	} else {
		q.Mode = model.ModeTime
	}
	if q.Band == "" {
		q.Band = model.BandAll
	}
	if q.SortKey == "" {
		q.SortKey = SortScore
	}
	if q.SortDir == "" {
		q.SortDir = SortDesc
	}
	return q
}

// Item 视图中的一条线路及其派生指标
type Item struct {
	Route      model.Route `json:"route"`
	Score      *int        `json:"score"`
	Band       model.Band  `json:"band"`
	Worst      *int        `json:"worstMinutes"`
	Avg        *int        `json:"avgMinutes"`
	StopsCount int         `json:"stopsCount"`
}

// NewItem 计算线路在指定模式下的派生指标
func NewItem(r model.Route, mode model.Mode) Item {
	c := calculator.Classify(r, mode)
	return Item{
		Route:      r,
		Score:      c.Score,
		Band:       c.Band,
		Worst:      calculator.WorstMinutes(r),
		Avg:        calculator.AvgMinutes(r),
		StopsCount: calculator.StopsCount(r),
	}
}
