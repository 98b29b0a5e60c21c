package agro

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	_ "agrosense.io/field-alerts-service/pkg/testing"
)

func seedAlert(t *testing.T, a *Agro, fieldID string, alertType models.AlertType, severity models.AlertSeverity, triggeredAt time.Time, resolvedAt *time.Time) models.Alert {
	t.Helper()

	alert := models.Alert{
		ID:             uuid.NewString(),
		FieldID:        fieldID,
		Type:           alertType,
		Severity:       severity,
		Message:        "test alert",
		TriggeredAtUtc: triggeredAt,
		ResolvedAtUtc:  resolvedAt,
	}
	require.NoError(t, a.Db.Conn.Create(&alert).Error)
	return alert
}

func TestGetFieldAlertsNewestFirst(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	resolved := base.Add(30 * time.Minute)

	seedAlert(t, agroObj, fieldID, models.AlertTypeDrought, models.SeverityWarning, base, &resolved)
	seedAlert(t, agroObj, fieldID, models.AlertTypeHeatStress, models.SeverityCritical, base.Add(1*time.Hour), nil)
	seedAlert(t, agroObj, fieldID, models.AlertTypeHeavyRain, models.SeverityWarning, base.Add(2*time.Hour), nil)

	alerts, err := agroObj.Alert.GetFieldAlerts(context.Background(), fieldID)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, models.AlertTypeHeavyRain, alerts[0].Type)
	assert.Equal(t, models.AlertTypeHeatStress, alerts[1].Type)
	assert.Equal(t, models.AlertTypeDrought, alerts[2].Type)

	active, err := agroObj.Alert.GetActiveFieldAlerts(context.Background(), fieldID)
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, alert := range active {
		assert.True(t, alert.IsActive())
	}
}

func TestGetFieldStatusWorstSeverityWins(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedAlert(t, agroObj, fieldID, models.AlertTypeNoRain, models.SeverityInfo, base, nil)
	seedAlert(t, agroObj, fieldID, models.AlertTypeDrought, models.SeverityWarning, base.Add(1*time.Minute), nil)

	status, err := agroObj.Alert.GetFieldStatus(context.Background(), fieldID)
	require.NoError(t, err)
	assert.Equal(t, string(models.SeverityWarning), status.Status)
	assert.Len(t, status.ActiveAlerts, 2)

	seedAlert(t, agroObj, fieldID, models.AlertTypeHeatStress, models.SeverityCritical, base.Add(2*time.Minute), nil)

	status, err = agroObj.Alert.GetFieldStatus(context.Background(), fieldID)
	require.NoError(t, err)
	assert.Equal(t, string(models.SeverityCritical), status.Status)
}

func TestGetFieldStatusUnknownFieldIsNormal(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	status, err := agroObj.Alert.GetFieldStatus(context.Background(), uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, models.FieldStatusNormal, status.Status)
	assert.Nil(t, status.LastSoilMoisturePercent)
	assert.Empty(t, status.ActiveAlerts)
	assert.False(t, status.UpdatedAtUtc.IsZero())
}

func TestResolveAlert(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	alert := seedAlert(t, agroObj, fieldID, models.AlertTypeDrought, models.SeverityWarning, base, nil)

	resolvedAt, err := agroObj.Alert.ResolveAlert(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.False(t, resolvedAt.IsZero())

	var saved models.Alert
	require.NoError(t, agroObj.Db.Conn.Where("id = ?", alert.ID).First(&saved).Error)
	require.NotNil(t, saved.ResolvedAtUtc)
	assert.False(t, saved.IsActive())

	// Resolving again is a no-op reporting the original resolution time.
	again, err := agroObj.Alert.ResolveAlert(context.Background(), alert.ID)
	require.NoError(t, err)
	assert.True(t, again.Equal(*saved.ResolvedAtUtc))
}

func TestResolveAlertConcurrentResolvesAgreeOnTime(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	alert := seedAlert(t, agroObj, fieldID, models.AlertTypeDrought, models.SeverityWarning, base, nil)

	const resolvers = 8
	results := make(chan time.Time, resolvers)
	var wg sync.WaitGroup
	for i := 0; i < resolvers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resolvedAt, err := agroObj.Alert.ResolveAlert(context.Background(), alert.ID)
			assert.NoError(t, err)
			results <- resolvedAt
		}()
	}
	wg.Wait()
	close(results)

	// Every caller sees the single stored resolution time.
	var saved models.Alert
	require.NoError(t, agroObj.Db.Conn.Where("id = ?", alert.ID).First(&saved).Error)
	require.NotNil(t, saved.ResolvedAtUtc)
	for resolvedAt := range results {
		assert.True(t, resolvedAt.Equal(*saved.ResolvedAtUtc))
	}
}

func TestResolveAlertNotFound(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	_, err := agroObj.Alert.ResolveAlert(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestResolveActiveByType(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedAlert(t, agroObj, fieldID, models.AlertTypeDrought, models.SeverityWarning, base, nil)
	seedAlert(t, agroObj, fieldID, models.AlertTypeHeatStress, models.SeverityCritical, base, nil)

	resolved, err := agroObj.Alert.ResolveActiveByType(context.Background(), fieldID, models.AlertTypeDrought)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resolved)

	active, err := agroObj.Alert.GetActiveFieldAlerts(context.Background(), fieldID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, models.AlertTypeHeatStress, active[0].Type)

	// No matching active alerts resolves nothing.
	resolved, err = agroObj.Alert.ResolveActiveByType(context.Background(), fieldID, models.AlertTypeDrought)
	require.NoError(t, err)
	assert.Equal(t, int64(0), resolved)
}

func TestResolveAllActive(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	fieldID := uuid.NewString()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	resolvedEarlier := base.Add(-1 * time.Hour)

	seedAlert(t, agroObj, fieldID, models.AlertTypeDrought, models.SeverityWarning, base, nil)
	seedAlert(t, agroObj, fieldID, models.AlertTypeHeavyRain, models.SeverityWarning, base, nil)
	seedAlert(t, agroObj, fieldID, models.AlertTypeColdStress, models.SeverityInfo, base.Add(-2*time.Hour), &resolvedEarlier)

	resolved, err := agroObj.Alert.ResolveAllActive(context.Background(), fieldID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resolved)

	active, err := agroObj.Alert.GetActiveFieldAlerts(context.Background(), fieldID)
	require.NoError(t, err)
	assert.Empty(t, active)
}
