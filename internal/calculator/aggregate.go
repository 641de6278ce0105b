package calculator

import (
	"romaneio/internal/model"
	"romaneio/internal/parser"
)

// Aggregator 按线路编号把逐站明细行折叠成线路；输出顺序为线路首次出现的顺序
type Aggregator struct {
	cols    model.ColumnMap
	order   []string
	byID    map[string]*model.Route
	skipped int
}

// NewAggregator 创建聚合器
func NewAggregator(cols model.ColumnMap) *Aggregator {
	return &Aggregator{
		cols: cols,
		byID: make(map[string]*model.Route),
	}
}

// Add 合并一行；线路编号为空时跳过并返回 false
func (a *Aggregator) Add(row model.RawRow) bool {
	id := parser.CellString(row[a.cols.RouteID])
	if id == "" {
		a.skipped++
		return false
	}

	r, ok := a.byID[id]
	if !ok {
		r = model.NewRoute(id)
		if a.cols.Neighborhood != "" {
			r.NeighborhoodSample = parser.CellString(row[a.cols.Neighborhood])
		}
		if a.cols.PlannedAT != "" {
			r.PlannedATSample = parser.CellString(row[a.cols.PlannedAT])
		}
		a.byID[id] = r
		a.order = append(a.order, id)
	}

	r.AddressCount++

	var stop *int
	if a.cols.StopIndex != "" {
		if n, ok := parser.ParseInt(row[a.cols.StopIndex]); ok {
			stop = &n
			maxStop := 0
			if r.MaxStopIndex != nil {
				maxStop = *r.MaxStopIndex
			}
			if n > maxStop {
				maxStop = n
			}
			r.MaxStopIndex = &maxStop
		}
	}

	if a.cols.DeliveryTime != "" {
		if mins, ok := parser.ParseMinutes(row[a.cols.DeliveryTime]); ok {
			r.DeliveryTimesMin = append(r.DeliveryTimesMin, mins)
		}
	}

	if a.cols.Address != "" {
		if addr := parser.CellString(row[a.cols.Address]); addr != "" {
			r.Addresses = append(r.Addresses, model.AddressItem{StopIndex: stop, Address: addr})
		}
	}

	if a.cols.LocationType != "" {
		if lt := parser.CellString(row[a.cols.LocationType]); lt != "" {
			r.LocationTypes = append(r.LocationTypes, lt)
		}
	}
	return true
}

// Skipped 返回因线路编号为空而跳过的行数
func (a *Aggregator) Skipped() int {
	return a.skipped
}

// Routes 结束本轮聚合：地点类型在整轮结束后去重，保留首次出现顺序
func (a *Aggregator) Routes() []model.Route {
	out := make([]model.Route, 0, len(a.order))
	for _, id := range a.order {
		r := *a.byID[id]
		r.LocationTypes = dedupe(r.LocationTypes)
		out = append(out, r)
	}
	return out
}

// Aggregate 把整张表折叠为线路列表
func Aggregate(rows []model.RawRow, cols model.ColumnMap) []model.Route {
	agg := NewAggregator(cols)
	for _, row := range rows {
		agg.Add(row)
	}
	return agg.Routes()
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
