package model

import "errors"

var (
	// ErrEmptySheet 工作表没有任何数据行
	ErrEmptySheet = errors.New("planilha vazia ou inválida")
	// ErrRouteColumnMissing 找不到线路编号列（聚合键），导入无法继续
	ErrRouteColumnMissing = errors.New("não encontrei a coluna obrigatória: Corridor Cage (J)")
)

// ColumnMap 列角色映射：每个字段保存被选中的原始列名，空字符串表示未识别
type ColumnMap struct {
	StopIndex    string `json:"stopIndex,omitempty"`
	Address      string `json:"address,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	DeliveryTime string `json:"deliveryTime,omitempty"`
	LocationType string `json:"locationType,omitempty"`
	PlannedAT    string `json:"plannedAt,omitempty"`
	RouteID      string `json:"routeId,omitempty"`
}

// Validate 校验必需列
func (m ColumnMap) Validate() error {
	if m.RouteID == "" {
		return ErrRouteColumnMissing
	}
	return nil
}
