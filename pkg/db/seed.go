package db

import (
	"time"

	"agrosense.io/field-alerts-service/pkg/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func metricPtr(m models.SensorMetric) *models.SensorMetric { return &m }

// SeedRules populates the rule catalog with the default agronomic rules.
// Skipped entirely when any rule already exists, so operators can edit
// rules without them being recreated on restart.
func SeedRules(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.AlertRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()

	rules := []models.AlertRule{
		{
			ID:              uuid.NewString(),
			RuleKey:         "DroughtV1",
			Name:            "Drought (moisture < 30% sustained)",
			IsEnabled:       true,
			Type:            models.AlertTypeDrought,
			Severity:        models.SeverityWarning,
			Kind:            models.KindThresholdDuration,
			Metric:          models.MetricSoilMoisture,
			Operator:        models.OpLessThan,
			ThresholdValue:  30,
			DurationMinutes: intPtr(2),
			MessageTemplate: "Soil moisture below {threshold}% for more than {minutes} minutes.",
			CreatedAtUtc:    now,
		},
		{
			ID:              uuid.NewString(),
			RuleKey:         "WaterloggingV1",
			Name:            "Waterlogging (moisture > 80% sustained)",
			IsEnabled:       true,
			Type:            models.AlertTypeWaterlogging,
			Severity:        models.SeverityWarning,
			Kind:            models.KindThresholdDuration,
			Metric:          models.MetricSoilMoisture,
			Operator:        models.OpGreaterThan,
			ThresholdValue:  80,
			DurationMinutes: intPtr(2),
			MessageTemplate: "Soil moisture above {threshold}% for {minutes} minutes: waterlogging/disease risk.",
			CreatedAtUtc:    now,
		},
		{
			ID:              uuid.NewString(),
			RuleKey:         "HeatStressV1",
			Name:            "Heat stress (temp >= 35C sustained)",
			IsEnabled:       true,
			Type:            models.AlertTypeHeatStress,
			Severity:        models.SeverityWarning,
			Kind:            models.KindThresholdDuration,
			Metric:          models.MetricTemperature,
			Operator:        models.OpGreaterOrEqual,
			ThresholdValue:  35,
			DurationMinutes: intPtr(2),
			MessageTemplate: "Temperature >= {threshold}C for {minutes} minutes: heat stress.",
			CreatedAtUtc:    now,
		},
		{
			ID:              uuid.NewString(),
			RuleKey:         "ColdStressV1",
			Name:            "Cold stress (temp <= 5C for 1h)",
			IsEnabled:       true,
			Type:            models.AlertTypeColdStress,
			Severity:        models.SeverityWarning,
			Kind:            models.KindThresholdDuration,
			Metric:          models.MetricTemperature,
			Operator:        models.OpLessOrEqual,
			ThresholdValue:  5,
			DurationMinutes: intPtr(60),
			MessageTemplate: "Temperature <= {threshold}C for {minutes} minutes: cold stress.",
			CreatedAtUtc:    now,
		},
		{
			ID:                uuid.NewString(),
			RuleKey:           "HeavyRainV1",
			Name:              "Heavy rain (rain >= 20mm) with cooldown",
			IsEnabled:         true,
			Type:              models.AlertTypeHeavyRain,
			Severity:          models.SeverityWarning,
			Kind:              models.KindThresholdInstantCooldown,
			Metric:            models.MetricRain,
			Operator:          models.OpGreaterOrEqual,
			ThresholdValue:    20,
			CooldownMinutes:   intPtr(60),
			SecondaryMinValue: floatPtr(50), // escalate to critical at 50mm
			MessageTemplate:   "Heavy rain detected: {value}mm (threshold {threshold}mm).",
			CreatedAtUtc:      now,
		},
		{
			ID:              uuid.NewString(),
			RuleKey:         "NoRain7dV1",
			Name:            "No rain (window sum < 5mm)",
			IsEnabled:       true,
			Type:            models.AlertTypeNoRain,
			Severity:        models.SeverityWarning,
			Kind:            models.KindWindowSumThreshold,
			Metric:          models.MetricRain,
			Operator:        models.OpLessThan,
			ThresholdValue:  5,
			DurationMinutes: intPtr(10),
			CooldownMinutes: intPtr(1),
			MessageTemplate: "Little rain: window sum < {threshold}mm (sum={value}mm).",
			CreatedAtUtc:    now,
		},
		{
			ID:                uuid.NewString(),
			RuleKey:           "DiseaseRiskV1",
			Name:              "Disease/pest risk (moisture >= 70 and temp 20-32 sustained)",
			IsEnabled:         true,
			Type:              models.AlertTypeDiseaseRisk,
			Severity:          models.SeverityWarning,
			Kind:              models.KindDualMetricDuration,
			Metric:            models.MetricSoilMoisture,
			Operator:          models.OpGreaterOrEqual,
			ThresholdValue:    70,
			DurationMinutes:   intPtr(2),
			SecondaryMetric:   metricPtr(models.MetricTemperature),
			SecondaryMinValue: floatPtr(20),
			SecondaryMaxValue: floatPtr(32),
			MessageTemplate:   "Disease risk: moisture >= {threshold}% and temperature 20-32C for {minutes} minutes.",
			CreatedAtUtc:      now,
		},
		{
			ID:              uuid.NewString(),
			RuleKey:         "SensorStaleV1",
			Name:            "Stale sensor (no reading for 60min)",
			IsEnabled:       true,
			Type:            models.AlertTypeSensorStale,
			Severity:        models.SeverityInfo,
			Kind:            models.KindThresholdDuration,
			Metric:          models.MetricSoilMoisture, // metric unused for stale detection
			Operator:        models.OpGreaterOrEqual,
			ThresholdValue:  0,
			DurationMinutes: intPtr(60),
			CooldownMinutes: intPtr(5),
			MessageTemplate: "Sensor silent for {minutes} minutes. Last reading: {measuredAt}.",
			CreatedAtUtc:    now,
		},
	}

	return conn.Create(&rules).Error
}
