package http

import (
	"agrosense.io/field-alerts-service/pkg/agro"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RestfulServer struct {
	Server           *gin.Engine
	Agro             *agro.Agro
	RateLimiterStore *RateLimiterStore
}

func (rs *RestfulServer) GetLimiter(fieldID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(fieldID)
	}
}

func (rs *RestfulServer) CheckFieldLimiter(fieldID string) bool {
	limiter := rs.GetLimiter(fieldID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) SetLimiter(fieldID string, fieldRate float64, fieldBurst int) {
	if rs.RateLimiterStore == nil {
		return
	}
	rs.RateLimiterStore.SetLimiter(fieldID, rate.Limit(fieldRate), fieldBurst)
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	fields := rs.Server.Group("/fields/:field_id")
	{
		fields.POST("/readings", rs.PostReading)
		fields.GET("/alerts", rs.GetAlerts)
		fields.GET("/alerts/active", rs.GetActiveAlerts)
		fields.GET("/status", rs.GetStatus)
		fields.POST("/alerts/resolve", rs.ResolveAllAlerts)
		fields.POST("/alerts/resolve/by-type", rs.ResolveAlertsByType)
		fields.POST("/limiter", rs.PostLimiter)
	}

	rs.Server.POST("/alerts/:alert_id/resolve", rs.ResolveAlert)
}
