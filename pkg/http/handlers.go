package http

import (
	"errors"
	"net/http"
	"time"

	"agrosense.io/field-alerts-service/pkg/agro"
	"agrosense.io/field-alerts-service/pkg/models"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

type ReadingRequest struct {
	ReadingID           string    `json:"readingId"`
	SoilMoisturePercent float64   `json:"soilMoisturePercent"`
	TemperatureC        float64   `json:"temperatureC"`
	RainMm              float64   `json:"rainMm"`
	MeasuredAtUtc       time.Time `json:"measuredAtUtc"`
}

var readingRequestSchema = z.Struct(z.Shape{
	"ReadingID":           z.String().Required(),
	"SoilMoisturePercent": z.Float64().Required(),
	"TemperatureC":        z.Float64(),
	"RainMm":              z.Float64(),
	"MeasuredAtUtc":       z.Time().Required(),
})

// PostReading is the direct ingest path: it feeds the same engine the
// queue consumer does.
func (rs *RestfulServer) PostReading(c *gin.Context) {
	fieldID := c.Param("field_id")

	if !rs.CheckFieldLimiter(fieldID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	var req ReadingRequest
	if err := readingRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	evt := &models.SensorReadingReceivedEvent{
		EventType:           models.EventTypeSensorReadingReceived,
		ReadingID:           req.ReadingID,
		FieldID:             fieldID,
		SoilMoisturePercent: req.SoilMoisturePercent,
		TemperatureC:        req.TemperatureC,
		RainMm:              req.RainMm,
		MeasuredAtUtc:       req.MeasuredAtUtc,
		ReceivedAtUtc:       time.Now().UTC(),
	}

	if err := rs.Agro.Engine.ProcessReading(c.Request.Context(), evt); err != nil {
		if errors.Is(err, agro.ErrInvalidEvent) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusAccepted)
}

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	fieldID := c.Param("field_id")

	if !rs.CheckFieldLimiter(fieldID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	alerts, err := rs.Agro.Alert.GetFieldAlerts(c.Request.Context(), fieldID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) GetActiveAlerts(c *gin.Context) {
	fieldID := c.Param("field_id")

	if !rs.CheckFieldLimiter(fieldID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	alerts, err := rs.Agro.Alert.GetActiveFieldAlerts(c.Request.Context(), fieldID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func (rs *RestfulServer) GetStatus(c *gin.Context) {
	fieldID := c.Param("field_id")

	if !rs.CheckFieldLimiter(fieldID) {
		c.Status(http.StatusTooManyRequests)
		return
	}

	status, err := rs.Agro.Alert.GetFieldStatus(c.Request.Context(), fieldID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

type ResolveResponse struct {
	Resolved      int64     `json:"resolved"`
	ResolvedAtUtc time.Time `json:"resolvedAtUtc"`
}

func (rs *RestfulServer) ResolveAlert(c *gin.Context) {
	alertID := c.Param("alert_id")

	resolvedAt, err := rs.Agro.Alert.ResolveAlert(c.Request.Context(), alertID)
	if err != nil {
		if errors.Is(err, agro.ErrAlertNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{Resolved: 1, ResolvedAtUtc: resolvedAt})
}

func (rs *RestfulServer) ResolveAlertsByType(c *gin.Context) {
	fieldID := c.Param("field_id")

	alertType, ok := models.ParseAlertType(c.Query("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown alert type"})
		return
	}

	count, err := rs.Agro.Alert.ResolveActiveByType(c.Request.Context(), fieldID, alertType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{Resolved: count, ResolvedAtUtc: time.Now().UTC()})
}

func (rs *RestfulServer) ResolveAllAlerts(c *gin.Context) {
	fieldID := c.Param("field_id")

	count, err := rs.Agro.Alert.ResolveAllActive(c.Request.Context(), fieldID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ResolveResponse{Resolved: count, ResolvedAtUtc: time.Now().UTC()})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required(),
	"burst": z.Int().Required(),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	fieldID := c.Param("field_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	rs.SetLimiter(fieldID, req.Rate, req.Burst)

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
