package model

// RawRow 表格读取器产出的一行：列名 -> 单元格值
// 单元格可能是 string / float64 / time.Time / bool / nil，空白文本为 ""
type RawRow map[string]any

// AddressItem 线路中的一个投递地址
type AddressItem struct {
	StopIndex *int   `json:"stopIndex,omitempty"`
	Address   string `json:"address"`
}

// Route 按线路编号（Corridor Cage）聚合后的线路
type Route struct {
	ID                 string        `json:"id"`
	AddressCount       int           `json:"addressCount"`
	DeliveryTimesMin   []int         `json:"deliveryTimesMin"`
	MaxStopIndex       *int          `json:"maxStopIndex,omitempty"`
	NeighborhoodSample string        `json:"neighborhoodSample"`
	LocationTypes      []string      `json:"locationTypes"`
	PlannedATSample    string        `json:"plannedAtSample"`
	Addresses          []AddressItem `json:"addresses"`
}

// NewRoute 创建空线路（切片初始化为空，保证 JSON 输出 [] 而不是 null）
func NewRoute(id string) *Route {
	return &Route{
		ID:               id,
		DeliveryTimesMin: []int{},
		LocationTypes:    []string{},
		Addresses:        []AddressItem{},
	}
}
