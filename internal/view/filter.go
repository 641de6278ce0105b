package view

import (
	"strings"

	"romaneio/internal/model"
)

// Apply 先筛选再稳定排序
func Apply(routes []model.Route, q Query) []Item {
	q = q.Normalize()
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	items := make([]Item, 0, len(routes))
	for _, r := range routes {
		item := NewItem(r, q.Mode)
		if !q.Band.Matches(item.Band) {
			continue
		}
		if needle != "" && !matchesSearch(r, needle) {
			continue
		}
		items = append(items, item)
	}
	sortItems(items, q)
	return items
}

func matchesSearch(r model.Route, needle string) bool {
	if strings.Contains(strings.ToLower(r.ID), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.NeighborhoodSample), needle) {
		return true
	}
	for _, t := range r.LocationTypes {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}
