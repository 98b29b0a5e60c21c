package agro

import (
	"fmt"
	"time"

	"agrosense.io/field-alerts-service/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertReadingIdempotent appends a reading unless one with the same id
// already exists. The consumer redelivers messages at least once, so a
// duplicate id must not double-count into window sums and counts.
// Returns whether a new row was inserted.
func insertReadingIdempotent(tx *gorm.DB, reading *models.SensorReading) (bool, error) {
	res := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(reading)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// metricColumn maps a sensor metric onto its readings column. The metric
// value set is closed; anything else is a catalog misconfiguration.
func metricColumn(metric models.SensorMetric) (string, error) {
	switch metric {
	case models.MetricSoilMoisture:
		return "soil_moisture_percent", nil
	case models.MetricTemperature:
		return "temperature_c", nil
	case models.MetricRain:
		return "rain_mm", nil
	default:
		return "", fmt.Errorf("unknown sensor metric %q", metric)
	}
}

func countReadingsInWindow(tx *gorm.DB, fieldID string, fromUtc, toUtc time.Time) (int64, error) {
	var count int64
	err := tx.Model(&models.SensorReading{}).
		Where("field_id = ? AND measured_at_utc >= ? AND measured_at_utc <= ?", fieldID, fromUtc, toUtc).
		Count(&count).Error
	return count, err
}

// sumMetricInWindow aggregates a metric over [fromUtc, toUtc] by measurement
// time, not receive time: window rules reason about the weather in the
// period, not about delivery lag.
func sumMetricInWindow(tx *gorm.DB, fieldID string, metric models.SensorMetric, fromUtc, toUtc time.Time) (float64, error) {
	column, err := metricColumn(metric)
	if err != nil {
		return 0, err
	}

	var sum *float64
	err = tx.Model(&models.SensorReading{}).
		Select("SUM("+column+")").
		Where("field_id = ? AND measured_at_utc >= ? AND measured_at_utc <= ?", fieldID, fromUtc, toUtc).
		Scan(&sum).Error
	if err != nil {
		return 0, err
	}
	if sum == nil {
		return 0, nil
	}
	return *sum, nil
}
