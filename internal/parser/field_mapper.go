package parser

import (
	"romaneio/internal/model"
)

// ColumnRule 单个列角色的识别规则
type ColumnRule struct {
	Keywords []string // 规范化后的关键词，按子串匹配
	Fallback int      // 未命中关键词时使用的列位置（从 0 开始），-1 表示不回退
}

// FieldMapper 字段映射器
type FieldMapper struct {
	StopIndex    ColumnRule
	Address      ColumnRule
	Neighborhood ColumnRule
	DeliveryTime ColumnRule
	LocationType ColumnRule
	PlannedAT    ColumnRule
	RouteID      ColumnRule
}

// NewFieldMapper 创建字段映射器（romaneio 标准布局：A 列序号 … J 列 Corridor Cage）
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{
		StopIndex:    ColumnRule{Keywords: []string{"stop", "stopnumber", "stop#", "stops", "parada", "sequencia", "seq", "ordem"}, Fallback: 0},
		Address:      ColumnRule{Keywords: []string{"destinationaddress", "address", "endereco", "destino"}, Fallback: 1},
		Neighborhood: ColumnRule{Keywords: []string{"neighborhood", "bairro"}, Fallback: 3},
		DeliveryTime: ColumnRule{Keywords: []string{"deliverytime", "delivery", "tempoentrega", "leadtime"}, Fallback: 6},
		LocationType: ColumnRule{Keywords: []string{"locationtype", "tipo", "tipolocal"}, Fallback: 7},
		PlannedAT:    ColumnRule{Keywords: []string{"plannedat", "planned"}, Fallback: 8},
		RouteID:      ColumnRule{Keywords: []string{"corridorcage", "corridor", "cage", "rota"}, Fallback: 9},
	}
}

// InferColumns 使用默认规则从表头推断列映射
func InferColumns(headers []string) model.ColumnMap {
	return NewFieldMapper().Map(headers)
}

// Map 映射表头。每个角色独立扫描，按表头顺序取第一个命中的列（不是"最佳"匹配），
// 同一列可以被多个角色选中。
func (m *FieldMapper) Map(headers []string) model.ColumnMap {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeColumnName(h)
	}

	pick := func(rule ColumnRule) string {
		for i, col := range normalized {
			if ContainsAny(col, rule.Keywords) {
				return headers[i]
			}
		}
		if rule.Fallback >= 0 && rule.Fallback < len(headers) && headers[rule.Fallback] != "" {
			return headers[rule.Fallback]
		}
		return ""
	}

	return model.ColumnMap{
		StopIndex:    pick(m.StopIndex),
		Address:      pick(m.Address),
		Neighborhood: pick(m.Neighborhood),
		DeliveryTime: pick(m.DeliveryTime),
		LocationType: pick(m.LocationType),
		PlannedAT:    pick(m.PlannedAT),
		RouteID:      pick(m.RouteID),
	}
}
