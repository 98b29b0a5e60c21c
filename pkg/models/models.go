package models

import "time"

type AlertType string

const (
	AlertTypeDrought      AlertType = "drought"
	AlertTypeWaterlogging AlertType = "waterlogging"
	AlertTypeNoRain       AlertType = "no_rain"
	AlertTypeHeatStress   AlertType = "heat_stress"
	AlertTypeColdStress   AlertType = "cold_stress"
	AlertTypeFrostRisk    AlertType = "frost_risk"
	AlertTypeHeavyRain    AlertType = "heavy_rain"
	AlertTypeDiseaseRisk  AlertType = "disease_risk"
	AlertTypeSensorStale  AlertType = "sensor_stale"
)

type AlertSeverity string

const (
	SeverityInfo     AlertSeverity = "info"
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)

// severityRank orders severities for "worst active severity" lookups.
var severityRank = map[AlertSeverity]int{
	SeverityInfo:     1,
	SeverityWarning:  2,
	SeverityCritical: 3,
}

func (s AlertSeverity) Rank() int {
	return severityRank[s]
}

// RuleKind selects the temporal evaluation strategy of a rule.
type RuleKind string

const (
	// Condition must hold continuously for DurationMinutes before firing.
	KindThresholdDuration RuleKind = "threshold_duration"
	// Fires immediately on condition, at most once per CooldownMinutes.
	KindThresholdInstantCooldown RuleKind = "threshold_instant_cooldown"
	// Sums a metric over a trailing window of DurationMinutes and
	// compares the aggregate against the threshold.
	KindWindowSumThreshold RuleKind = "window_sum_threshold"
	// Two simultaneous conditions held for DurationMinutes.
	KindDualMetricDuration RuleKind = "dual_metric_duration"
)

type SensorMetric string

const (
	MetricSoilMoisture SensorMetric = "soil_moisture_percent"
	MetricTemperature  SensorMetric = "temperature_c"
	MetricRain         SensorMetric = "rain_mm"
)

type ComparisonOp string

const (
	OpLessThan       ComparisonOp = "<"
	OpLessOrEqual    ComparisonOp = "<="
	OpGreaterThan    ComparisonOp = ">"
	OpGreaterOrEqual ComparisonOp = ">="
)

// SensorReading is an immutable reading fact. ID doubles as the
// idempotency key: re-ingesting the same reading is a no-op.
type SensorReading struct {
	ID                  string `gorm:"primaryKey"`
	FieldID             string `gorm:"index:idx_readings_field_measured"`
	SoilMoisturePercent float64
	TemperatureC        float64
	RainMm              float64
	MeasuredAtUtc       time.Time `gorm:"index:idx_readings_field_measured"`
	ReceivedAtUtc       time.Time
}

// AlertRule is configuration, not runtime state. Rules are data and are
// loaded fresh on every evaluation cycle.
type AlertRule struct {
	ID                string `gorm:"primaryKey"`
	RuleKey           string `gorm:"uniqueIndex"`
	Name              string
	IsEnabled         bool
	Type              AlertType     `gorm:"type:varchar(32)"`
	Severity          AlertSeverity `gorm:"type:varchar(16)"`
	Kind              RuleKind      `gorm:"type:varchar(32)"`
	Metric            SensorMetric  `gorm:"type:varchar(32)"`
	Operator          ComparisonOp  `gorm:"type:varchar(4)"`
	ThresholdValue    float64
	DurationMinutes   *int
	CooldownMinutes   *int
	MessageTemplate   string
	SecondaryMetric   *SensorMetric `gorm:"type:varchar(32)"`
	SecondaryMinValue *float64
	SecondaryMaxValue *float64
	CreatedAtUtc      time.Time
	UpdatedAtUtc      *time.Time
}

// FieldState is the per-field snapshot: last known metric values for
// dashboards plus the owned rule-state rows.
type FieldState struct {
	FieldID                 string `gorm:"primaryKey"`
	LastReadingAtUtc        *time.Time
	LastSoilMoisturePercent *float64
	LastTemperatureC        *float64
	LastRainMm              *float64
	UpdatedAtUtc            time.Time

	Rules []RuleState `gorm:"foreignKey:FieldID;references:FieldID"`
}

// RuleState is the evaluation memory of one rule for one field.
// Exactly one row exists per (FieldID, RuleKey).
type RuleState struct {
	ID                 uint   `gorm:"primaryKey"`
	FieldID            string `gorm:"uniqueIndex:idx_rule_states_field_rule"`
	RuleKey            string `gorm:"uniqueIndex:idx_rule_states_field_rule"`
	WindowStartUtc     *time.Time
	LastTriggeredAtUtc *time.Time
	AlertActive        bool
	UpdatedAtUtc       time.Time
}

// Alert records a detected risk event. Active means ResolvedAtUtc is nil;
// at most one active alert exists per (FieldID, Type).
type Alert struct {
	ID             string        `gorm:"primaryKey"`
	FieldID        string        `gorm:"index:idx_alerts_field_type_time"`
	Type           AlertType     `gorm:"type:varchar(32);index:idx_alerts_field_type_time"`
	Severity       AlertSeverity `gorm:"type:varchar(16)"`
	Message        string
	TriggeredAtUtc time.Time `gorm:"index:idx_alerts_field_type_time"`
	ResolvedAtUtc  *time.Time
}

func (a Alert) IsActive() bool {
	return a.ResolvedAtUtc == nil
}

const FieldStatusNormal = "normal"

// FieldStatus is the aggregate view of one field: worst active severity
// (or "normal"), last known metric values, and the active alerts.
type FieldStatus struct {
	FieldID                 string     `json:"fieldId"`
	Status                  string     `json:"status"`
	LastSoilMoisturePercent *float64   `json:"lastSoilMoisturePercent"`
	LastTemperatureC        *float64   `json:"lastTemperatureC"`
	LastRainMm              *float64   `json:"lastRainMm"`
	LastReadingAtUtc        *time.Time `json:"lastReadingAtUtc"`
	UpdatedAtUtc            time.Time  `json:"updatedAtUtc"`
	ActiveAlerts            []Alert    `json:"activeAlerts"`
}

// ParseAlertType validates an alert type coming from an external caller.
func ParseAlertType(s string) (AlertType, bool) {
	switch t := AlertType(s); t {
	case AlertTypeDrought, AlertTypeWaterlogging, AlertTypeNoRain,
		AlertTypeHeatStress, AlertTypeColdStress, AlertTypeFrostRisk,
		AlertTypeHeavyRain, AlertTypeDiseaseRisk, AlertTypeSensorStale:
		return t, true
	default:
		return "", false
	}
}

const EventTypeSensorReadingReceived = "sensor.reading.received"

// SensorReadingReceivedEvent is the wire payload delivered by the reading
// queue (and accepted by the direct HTTP ingest endpoint).
type SensorReadingReceivedEvent struct {
	EventType           string    `json:"eventType"`
	ReadingID           string    `json:"readingId"`
	FieldID             string    `json:"fieldId"`
	SoilMoisturePercent float64   `json:"soilMoisturePercent"`
	TemperatureC        float64   `json:"temperatureC"`
	RainMm              float64   `json:"rainMm"`
	MeasuredAtUtc       time.Time `json:"measuredAtUtc"`
	ReceivedAtUtc       time.Time `json:"receivedAtUtc"`
}
