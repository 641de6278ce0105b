package view

import (
	"sort"
	"strings"

	"romaneio/internal/model"
)

// sortItems 稳定排序；空值无论升降序都排在最后
func sortItems(items []Item, q Query) {
	desc := q.SortDir == SortDesc

	if q.SortKey == SortID {
		sort.SliceStable(items, func(i, j int) bool {
			a, b := strings.ToLower(items[i].Route.ID), strings.ToLower(items[j].Route.ID)
			if desc {
				return a > b
			}
			return a < b
		})
		return
	}

	value := func(it Item) *int { return it.Score }
	if q.SortKey == SortAvg {
		value = func(it Item) *int {
			if q.Mode == model.ModeStops {
				n := it.StopsCount
				return &n
			}
			return it.Avg
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := value(items[i]), value(items[j])
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		case desc:
			return *a > *b
		default:
			return *a < *b
		}
	})
}

// SortedAddresses 按站号升序返回地址，无站号的排在最后
func SortedAddresses(r model.Route) []model.AddressItem {
	out := make([]model.AddressItem, len(r.Addresses))
	copy(out, r.Addresses)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].StopIndex, out[j].StopIndex
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}
