package agro

import (
	"math"
	"strconv"
	"strings"
	"time"

	"agrosense.io/field-alerts-service/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// windowMinSamples is the history floor for window aggregates: with fewer
// readings in the window the rule does not evaluate at all, which is not
// the same as the condition being false.
const windowMinSamples = 10

// evalContext carries everything one rule evaluation needs. The tx is the
// enclosing engine transaction, so alerts created here commit together
// with the snapshot mutations.
type evalContext struct {
	tx         *gorm.DB
	logger     *zap.Logger
	rule       *models.AlertRule
	ruleState  *models.RuleState
	fieldID    string
	evt        *models.SensorReadingReceivedEvent
	measuredAt time.Time
}

// kindEvaluator is one of the four temporal evaluation strategies.
// Dispatch is a closed map keyed by rule kind rather than branching spread
// through the engine, so each kind's invariants stay locally testable.
type kindEvaluator interface {
	evaluate(ec *evalContext) error
}

var kindEvaluators = map[models.RuleKind]kindEvaluator{
	models.KindThresholdDuration:        thresholdDurationEvaluator{},
	models.KindThresholdInstantCooldown: instantCooldownEvaluator{},
	models.KindWindowSumThreshold:       windowSumEvaluator{},
	models.KindDualMetricDuration:       dualMetricEvaluator{},
}

// thresholdDurationEvaluator: the condition must hold continuously for
// DurationMinutes before a single alert fires.
type thresholdDurationEvaluator struct{}

func (thresholdDurationEvaluator) evaluate(ec *evalContext) error {
	value := metricValue(ec.rule.Metric, ec.evt)
	inCondition := compare(value, ec.rule.Operator, ec.rule.ThresholdValue)
	return applyThresholdDuration(ec, inCondition)
}

// applyThresholdDuration holds the sustain-window bookkeeping shared by
// the duration and dual-metric kinds.
func applyThresholdDuration(ec *evalContext, inCondition bool) error {
	rule, rs := ec.rule, ec.ruleState

	if rule.DurationMinutes == nil || *rule.DurationMinutes <= 0 {
		return nil
	}
	window := time.Duration(*rule.DurationMinutes) * time.Minute

	// Out of condition: the sustain timer resets, no partial credit.
	if !inCondition {
		rs.WindowStartUtc = nil
		rs.AlertActive = false
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	// Condition just became true: start the clock, do not fire yet.
	if rs.WindowStartUtc == nil {
		start := ec.measuredAt
		rs.WindowStartUtc = &start
		rs.AlertActive = false
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	if ec.measuredAt.Sub(*rs.WindowStartUtc) < window {
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	hasActive, err := hasActiveAlert(ec.tx, ec.fieldID, rule.Type)
	if err != nil {
		return err
	}
	if hasActive {
		rs.AlertActive = true
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	if err := createAlert(ec, rule.Severity, renderMessage(rule, ec.measuredAt, nil)); err != nil {
		return err
	}

	rs.AlertActive = true
	triggered := ec.measuredAt
	rs.LastTriggeredAtUtc = &triggered

	// Re-arm rather than clear: the full duration must elapse again before
	// a resolve-then-recur can fire a second time.
	rearm := ec.measuredAt
	rs.WindowStartUtc = &rearm
	rs.UpdatedAtUtc = ec.measuredAt
	return nil
}

// instantCooldownEvaluator: fires immediately on condition, at most once
// per CooldownMinutes.
type instantCooldownEvaluator struct{}

func (instantCooldownEvaluator) evaluate(ec *evalContext) error {
	rule, rs := ec.rule, ec.ruleState

	value := metricValue(rule.Metric, ec.evt)
	if !compare(value, rule.Operator, rule.ThresholdValue) {
		rs.AlertActive = false
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	hasActive, err := hasActiveAlert(ec.tx, ec.fieldID, rule.Type)
	if err != nil {
		return err
	}
	if hasActive {
		rs.AlertActive = true
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	if !cooldownElapsed(rule, rs, ec.measuredAt) {
		return nil
	}

	// A rule may carry a second, higher threshold on the same metric that
	// escalates the alert to critical (e.g. heavy rain >= 50mm).
	severity := rule.Severity
	if rule.SecondaryMinValue != nil && value >= *rule.SecondaryMinValue {
		severity = models.SeverityCritical
	}

	if err := createAlert(ec, severity, renderMessage(rule, ec.measuredAt, &value)); err != nil {
		return err
	}

	rs.AlertActive = true
	triggered := ec.measuredAt
	rs.LastTriggeredAtUtc = &triggered
	rs.UpdatedAtUtc = ec.measuredAt
	return nil
}

// windowSumEvaluator: aggregates the metric over a trailing window of
// DurationMinutes and compares the sum against the threshold.
type windowSumEvaluator struct{}

func (windowSumEvaluator) evaluate(ec *evalContext) error {
	rule, rs := ec.rule, ec.ruleState

	if rule.DurationMinutes == nil || *rule.DurationMinutes <= 0 {
		return nil
	}
	fromUtc := ec.measuredAt.Add(-time.Duration(*rule.DurationMinutes) * time.Minute)

	count, err := countReadingsInWindow(ec.tx, ec.fieldID, fromUtc, ec.measuredAt)
	if err != nil {
		return err
	}
	if count < windowMinSamples {
		return nil
	}

	sum, err := sumMetricInWindow(ec.tx, ec.fieldID, rule.Metric, fromUtc, ec.measuredAt)
	if err != nil {
		return err
	}

	if !compare(sum, rule.Operator, rule.ThresholdValue) {
		rs.AlertActive = false
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	hasActive, err := hasActiveAlert(ec.tx, ec.fieldID, rule.Type)
	if err != nil {
		return err
	}
	if hasActive {
		rs.AlertActive = true
		rs.UpdatedAtUtc = ec.measuredAt
		return nil
	}

	if !cooldownElapsed(rule, rs, ec.measuredAt) {
		return nil
	}

	// The message reports the aggregate, not the instantaneous value.
	if err := createAlert(ec, rule.Severity, renderMessage(rule, ec.measuredAt, &sum)); err != nil {
		return err
	}

	rs.AlertActive = true
	triggered := ec.measuredAt
	rs.LastTriggeredAtUtc = &triggered
	rs.UpdatedAtUtc = ec.measuredAt
	return nil
}

// dualMetricEvaluator: two simultaneous conditions, then the sustain
// bookkeeping of thresholdDuration on the combined boolean.
type dualMetricEvaluator struct{}

func (dualMetricEvaluator) evaluate(ec *evalContext) error {
	rule := ec.rule

	// Without a secondary metric or a positive duration the rule is inert.
	if rule.DurationMinutes == nil || *rule.DurationMinutes <= 0 {
		return nil
	}
	if rule.SecondaryMetric == nil {
		return nil
	}

	primary := metricValue(rule.Metric, ec.evt)
	cond1 := compare(primary, rule.Operator, rule.ThresholdValue)

	secondary := metricValue(*rule.SecondaryMetric, ec.evt)
	min2 := math.Inf(-1)
	if rule.SecondaryMinValue != nil {
		min2 = *rule.SecondaryMinValue
	}
	max2 := math.Inf(1)
	if rule.SecondaryMaxValue != nil {
		max2 = *rule.SecondaryMaxValue
	}
	cond2 := secondary >= min2 && secondary <= max2

	return applyThresholdDuration(ec, cond1 && cond2)
}

func metricValue(metric models.SensorMetric, evt *models.SensorReadingReceivedEvent) float64 {
	switch metric {
	case models.MetricSoilMoisture:
		return evt.SoilMoisturePercent
	case models.MetricTemperature:
		return evt.TemperatureC
	case models.MetricRain:
		return evt.RainMm
	default:
		return 0
	}
}

func compare(left float64, op models.ComparisonOp, right float64) bool {
	switch op {
	case models.OpLessThan:
		return left < right
	case models.OpLessOrEqual:
		return left <= right
	case models.OpGreaterThan:
		return left > right
	case models.OpGreaterOrEqual:
		return left >= right
	default:
		return false
	}
}

func cooldownElapsed(rule *models.AlertRule, rs *models.RuleState, measuredAt time.Time) bool {
	cooldownMinutes := 0
	if rule.CooldownMinutes != nil {
		cooldownMinutes = *rule.CooldownMinutes
	}
	cooldown := time.Duration(cooldownMinutes) * time.Minute

	return rs.LastTriggeredAtUtc == nil ||
		cooldown == 0 ||
		measuredAt.Sub(*rs.LastTriggeredAtUtc) >= cooldown
}

func hasActiveAlert(tx *gorm.DB, fieldID string, alertType models.AlertType) (bool, error) {
	var count int64
	err := tx.Model(&models.Alert{}).
		Where("field_id = ? AND type = ? AND resolved_at_utc IS NULL", fieldID, alertType).
		Count(&count).Error
	return count > 0, err
}

func createAlert(ec *evalContext, severity models.AlertSeverity, message string) error {
	alert := models.Alert{
		ID:             uuid.NewString(),
		FieldID:        ec.fieldID,
		Type:           ec.rule.Type,
		Severity:       severity,
		Message:        message,
		TriggeredAtUtc: ec.measuredAt,
	}

	ec.logger.Info("Alert found", zap.Reflect("alert", alert))

	if err := ec.tx.Create(&alert).Error; err != nil {
		return err
	}

	ec.logger.Info("Alert saved", zap.Reflect("alert", alert))
	return nil
}

// renderMessage substitutes {threshold}, {minutes}, {value} and
// {measuredAt} into the rule's template. A missing value renders empty.
func renderMessage(rule *models.AlertRule, measuredAt time.Time, value *float64) string {
	minutes := 0
	if rule.DurationMinutes != nil {
		minutes = *rule.DurationMinutes
	}

	valueStr := ""
	if value != nil {
		valueStr = formatMetric(*value)
	}

	return strings.NewReplacer(
		"{threshold}", formatMetric(rule.ThresholdValue),
		"{minutes}", strconv.Itoa(minutes),
		"{value}", valueStr,
		"{measuredAt}", measuredAt.Format(time.RFC3339Nano),
	).Replace(rule.MessageTemplate)
}

// formatMetric renders a metric value with at most two decimals and no
// trailing zeros.
func formatMetric(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
