package agro

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	_ "agrosense.io/field-alerts-service/pkg/testing"
)

func createStaleRule(t *testing.T, a *Agro, durationMinutes, cooldownMinutes int) {
	t.Helper()

	createTestRule(t, a, &models.AlertRule{
		ID:              uuid.NewString(),
		RuleKey:         "sensor-stale-" + uuid.NewString(),
		Name:            "Sensor stale",
		IsEnabled:       true,
		Type:            models.AlertTypeSensorStale,
		Severity:        models.SeverityWarning,
		Kind:            models.KindThresholdDuration,
		Metric:          models.MetricSoilMoisture,
		Operator:        models.OpLessThan,
		ThresholdValue:  0,
		DurationMinutes: intPtr(durationMinutes),
		CooldownMinutes: intPtr(cooldownMinutes),
		MessageTemplate: "No readings for {minutes} minutes, last at {measuredAt}",
	})
}

func createFieldState(t *testing.T, a *Agro, fieldID string, lastReadingAt *time.Time) {
	t.Helper()

	state := models.FieldState{
		FieldID:          fieldID,
		LastReadingAtUtc: lastReadingAt,
		UpdatedAtUtc:     time.Now().UTC(),
	}
	require.NoError(t, a.Db.Conn.Create(&state).Error)
}

func TestStaleSweepAlertsSilentField(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	createStaleRule(t, agroObj, 60, 5)

	fieldID := uuid.NewString()
	lastReading := time.Now().UTC().Add(-2 * time.Hour)
	createFieldState(t, agroObj, fieldID, &lastReading)

	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))

	alerts := fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "No readings for 60 minutes")
	assert.Contains(t, alerts[0].Message, lastReading.Format(time.RFC3339Nano))

	// A second sweep is suppressed by the still-active alert.
	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))
	assert.Len(t, fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale), 1)
}

func TestStaleSweepSkipsRecentField(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	createStaleRule(t, agroObj, 60, 5)

	fieldID := uuid.NewString()
	lastReading := time.Now().UTC().Add(-10 * time.Minute)
	createFieldState(t, agroObj, fieldID, &lastReading)

	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))
	assert.Len(t, fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale), 0)
}

func TestStaleSweepCoversNeverReportedField(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	createStaleRule(t, agroObj, 60, 5)

	fieldID := uuid.NewString()
	createFieldState(t, agroObj, fieldID, nil)

	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))

	alerts := fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Message, "last at n/a")
}

func TestStaleSweepHonorsCooldownAfterResolve(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	createStaleRule(t, agroObj, 60, 30)

	fieldID := uuid.NewString()
	lastReading := time.Now().UTC().Add(-2 * time.Hour)
	createFieldState(t, agroObj, fieldID, &lastReading)

	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))
	require.Len(t, fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale), 1)

	// Resolved, but the previous firing is still inside the cooldown.
	_, err := agroObj.Alert.ResolveActiveByType(context.Background(), fieldID, models.AlertTypeSensorStale)
	require.NoError(t, err)

	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))
	assert.Len(t, fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale), 1)
}

func TestStaleSweepNoRuleIsNoop(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	lastReading := time.Now().UTC().Add(-10 * time.Hour)
	createFieldState(t, agroObj, fieldID, &lastReading)

	require.NoError(t, agroObj.Stale.RunSweep(context.Background()))
	assert.Len(t, fieldAlerts(t, agroObj, fieldID, models.AlertTypeSensorStale), 0)
}
