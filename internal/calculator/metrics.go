package calculator

import "romaneio/internal/model"

// WorstMinutes 最差（最大）投递时长，无样本时返回 nil
func WorstMinutes(r model.Route) *int {
	if len(r.DeliveryTimesMin) == 0 {
		return nil
	}
	worst := r.DeliveryTimesMin[0]
	for _, m := range r.DeliveryTimesMin[1:] {
		if m > worst {
			worst = m
		}
	}
	return &worst
}

// AvgMinutes 平均投递时长（四舍五入），无样本时返回 nil
func AvgMinutes(r model.Route) *int {
	n := len(r.DeliveryTimesMin)
	if n == 0 {
		return nil
	}
	sum := 0
	for _, m := range r.DeliveryTimesMin {
		sum += m
	}
	// 样本均为非负整数，(2*sum+n)/(2n) 即 floor(mean+0.5)
	avg := (2*sum + n) / (2 * n)
	return &avg
}

// StopsCount 停靠点数量：优先使用最大站号，缺失或非正时退回地址行数
func StopsCount(r model.Route) int {
	if r.MaxStopIndex != nil && *r.MaxStopIndex > 0 {
		return *r.MaxStopIndex
	}
	return r.AddressCount
}
