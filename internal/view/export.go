package view

import (
	"fmt"
	"strconv"
	"strings"

	"romaneio/internal/model"
)

// ExportSheetName 导出工作表名称
const ExportSheetName = "Rotas"

// ExportHeaders 导出列顺序
var ExportHeaders = []string{
	"CorridorCage",
	"ParadasTotal",
	"Score",
	"Worst",
	"Avg",
	"Neighborhood",
	"LocationTypes",
	"PlannedAT",
}

// Record 一条扁平导出记录（列名 -> 值）
type Record map[string]any

// ExportRows 把视图结果投影为导出记录；time 模式得分渲染为 HhMM，stops 模式为整数
func ExportRows(items []Item, mode model.Mode) []Record {
	out := make([]Record, 0, len(items))
	for _, it := range items {
		var score any
		if mode == model.ModeStops {
			score = it.StopsCount
		} else {
			score = FormatMinutes(it.Score)
		}
		out = append(out, Record{
			"CorridorCage":  it.Route.ID,
			"ParadasTotal":  it.StopsCount,
			"Score":         score,
			"Worst":         FormatMinutes(it.Worst),
			"Avg":           FormatMinutes(it.Avg),
			"Neighborhood":  it.Route.NeighborhoodSample,
			"LocationTypes": strings.Join(it.Route.LocationTypes, ", "),
			"PlannedAT":     it.Route.PlannedATSample,
		})
	}
	return out
}

// Strings 按表头顺序把记录转为字符串切片
func (r Record) Strings(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		switch v := r[h].(type) {
		case nil:
		case string:
			out[i] = v
		case int:
			out[i] = strconv.Itoa(v)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
