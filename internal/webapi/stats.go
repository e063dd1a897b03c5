package webapi

import (
	"net/http"
	"time"

	"github.com/greenhaven-store/greenhaven/internal/domain"
	"github.com/greenhaven-store/greenhaven/internal/webserver"
	"github.com/greenhaven-store/greenhaven/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
)

func registerStatsRoutes() {
	webserver.ApiGET("/admin/stats", adminStats)
}

// adminStats aggregates the dashboard figures: catalog and order counts,
// revenue statistics over non-cancelled orders, and system gauges.
func adminStats(c echo.Context) error {
	db := GetDB(c)

	var productCount int64
	if err := db.Model(&domain.Product{}).Count(&productCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	lowStockLevel := GetApp(c).ConfigMgr().GetInt("catalog", "LowStockLevel")
	if lowStockLevel == 0 {
		lowStockLevel = 5
	}
	var lowStockCount int64
	if err := db.Model(&domain.Product{}).Where("stock <= ?", lowStockLevel).Count(&lowStockCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}

	var orderCount, pendingCount int64
	if err := db.Model(&domain.Order{}).Count(&orderCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}
	if err := db.Model(&domain.Order{}).Where("status = ?", domain.OrderStatusPending).Count(&pendingCount).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", nil)
	}

	var totals []float64
	if err := db.Model(&domain.Order{}).
		Where("status <> ?", domain.OrderStatusCancelled).
		Pluck("total", &totals).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order totals", nil)
	}

	var revenue, meanOrder float64
	if len(totals) > 0 {
		revenue, _ = stats.Sum(totals)
		meanOrder, _ = stats.Mean(totals)
	}

	return ok(c, map[string]interface{}{
		"products":        productCount,
		"low_stock":       lowStockCount,
		"low_stock_level": lowStockLevel,
		"orders":          orderCount,
		"pending_orders":  pendingCount,
		"revenue":         revenue,
		"mean_order":      meanOrder,
		"system": map[string]interface{}{
			// gauges store cpu percent scaled by 100
			"cpuuse":      metrics.LatestGauge("system_cpuuse") / 100,
			"memuse":      metrics.LatestGauge("system_memuse"),
			"cpu_history": gaugeHistory("system_cpuuse", time.Hour),
			"mem_history": gaugeHistory("system_memuse", time.Hour),
		},
	})
}

type gaugePoint struct {
	Timestamp int64   `json:"timestamp"`
	Value     float64 `json:"value"`
}

// gaugeHistory returns the recorded points of a gauge over the past window.
func gaugeHistory(name string, window time.Duration) []gaugePoint {
	end := time.Now().Unix()
	points, err := metrics.GaugeSeries(name, end-int64(window.Seconds()), end+1)
	if err != nil {
		return []gaugePoint{}
	}
	out := make([]gaugePoint, len(points))
	for i, p := range points {
		out[i] = gaugePoint{Timestamp: p.Timestamp, Value: p.Value}
	}
	return out
}
