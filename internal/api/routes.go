package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"romaneio/internal/calculator"
	"romaneio/internal/model"
	"romaneio/internal/view"
)

// RouteItem 列表中的一条线路
type RouteItem struct {
	ID            string     `json:"id"`
	AddressCount  int        `json:"addressCount"`
	StopsCount    int        `json:"stopsCount"`
	Score         *int       `json:"score"`
	ScoreLabel    string     `json:"scoreLabel"`
	Band          model.Band `json:"band"`
	WorstMinutes  *int       `json:"worstMinutes"`
	Worst         string     `json:"worst"`
	AvgMinutes    *int       `json:"avgMinutes"`
	Avg           string     `json:"avg"`
	Neighborhood  string     `json:"neighborhood"`
	LocationTypes []string   `json:"locationTypes"`
	PlannedAT     string     `json:"plannedAt"`
}

// RouteDetail 线路详情（地址按站号排序）
type RouteDetail struct {
	RouteItem
	DeliveryTimesMin []int               `json:"deliveryTimesMin"`
	Addresses        []model.AddressItem `json:"addresses"`
}

// StatusResponse 系统状态响应
type StatusResponse struct {
	HasData    bool                  `json:"hasData"`
	Meta       *model.ImportMetadata `json:"meta"`
	RouteCount int                   `json:"routeCount"`
	Mode       model.Mode            `json:"mode"`
	Stats      calculator.BandStats  `json:"stats"`
}

func newRouteItem(it view.Item, mode model.Mode) RouteItem {
	label := view.FormatMinutes(it.Score)
	if mode == model.ModeStops && it.Score != nil {
		label = itoa(*it.Score)
	}
	return RouteItem{
		ID:            it.Route.ID,
		AddressCount:  it.Route.AddressCount,
		StopsCount:    it.StopsCount,
		Score:         it.Score,
		ScoreLabel:    label,
		Band:          it.Band,
		WorstMinutes:  it.Worst,
		Worst:         view.FormatMinutes(it.Worst),
		AvgMinutes:    it.Avg,
		Avg:           view.FormatMinutes(it.Avg),
		Neighborhood:  it.Route.NeighborhoodSample,
		LocationTypes: it.Route.LocationTypes,
		PlannedAT:     it.Route.PlannedATSample,
	}
}

// bindQuery 解析并校验视图查询参数
func (h *Handler) bindQuery(c *gin.Context) (view.Query, bool) {
	var q view.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, err)
		return q, false
	}
	if err := q.Validate(); err != nil {
		h.badRequest(c, err)
		return q, false
	}
	return q.Normalize(), true
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	snap := h.coord.Snapshot()
	c.JSON(http.StatusOK, StatusResponse{
		HasData:    snap.Meta != nil,
		Meta:       snap.Meta,
		RouteCount: len(snap.Routes),
		Mode:       q.Mode,
		Stats:      calculator.CountBands(snap.Routes, q.Mode),
	})
}

// ListRoutes 按模式、等级、关键字筛选并排序
// GET /api/routes
func (h *Handler) ListRoutes(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	snap := h.coord.Snapshot()
	items := view.Apply(snap.Routes, q)

	out := make([]RouteItem, 0, len(items))
	for _, it := range items {
		out = append(out, newRouteItem(it, q.Mode))
	}
	c.JSON(http.StatusOK, gin.H{
		"query": q,
		"items": out,
		"total": len(out),
		"stats": calculator.CountBands(snap.Routes, q.Mode),
	})
}

// GetRoute 线路详情
// GET /api/routes/:id
func (h *Handler) GetRoute(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	id := c.Param("id")
	for _, r := range h.coord.Snapshot().Routes {
		if r.ID != id {
			continue
		}
		c.JSON(http.StatusOK, RouteDetail{
			RouteItem:        newRouteItem(view.NewItem(r, q.Mode), q.Mode),
			DeliveryTimesMin: r.DeliveryTimesMin,
			Addresses:        view.SortedAddresses(r),
		})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "rota não encontrada"})
}

// GetStats 各等级数量
// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, calculator.CountBands(h.coord.Snapshot().Routes, q.Mode))
}
