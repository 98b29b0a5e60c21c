package agro

import (
	"context"
	"errors"
	"time"

	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *Agro) getFieldAlerts(ctx context.Context, fieldID string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := a.Db.Conn.WithContext(ctx).
		Where("field_id = ?", fieldID).
		Order("triggered_at_utc desc").
		Find(&alerts).Error
	return alerts, err
}

func (a *Agro) getActiveFieldAlerts(ctx context.Context, fieldID string) ([]models.Alert, error) {
	var alerts []models.Alert
	err := a.Db.Conn.WithContext(ctx).
		Where("field_id = ? AND resolved_at_utc IS NULL", fieldID).
		Order("triggered_at_utc desc").
		Find(&alerts).Error
	return alerts, err
}

func (a *Agro) getFieldStatus(ctx context.Context, fieldID string) (*models.FieldStatus, error) {
	var state models.FieldState
	err := a.Db.Conn.WithContext(ctx).First(&state, "field_id = ?", fieldID).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	active, err := a.getActiveFieldAlerts(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	status := models.FieldStatusNormal
	worst := 0
	for _, alert := range active {
		if rank := alert.Severity.Rank(); rank > worst {
			worst = rank
			status = string(alert.Severity)
		}
	}

	updatedAt := state.UpdatedAtUtc
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	return &models.FieldStatus{
		FieldID:                 fieldID,
		Status:                  status,
		LastSoilMoisturePercent: state.LastSoilMoisturePercent,
		LastTemperatureC:        state.LastTemperatureC,
		LastRainMm:              state.LastRainMm,
		LastReadingAtUtc:        state.LastReadingAtUtc,
		UpdatedAtUtc:            updatedAt,
		ActiveAlerts:            active,
	}, nil
}

// resolveAlert resolves one alert by id. Resolving an unknown id is a
// not-found condition for the caller; resolving an already resolved alert
// is a no-op that reports the original resolution time.
func (a *Agro) resolveAlert(ctx context.Context, alertID string) (time.Time, error) {
	var alert models.Alert
	err := a.Db.Conn.WithContext(ctx).First(&alert, "id = ?", alertID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, ErrAlertNotFound
	}
	if err != nil {
		return time.Time{}, err
	}

	lock := a.Locks.GetLock(alert.FieldID)
	lock.Lock()
	defer lock.Unlock()

	now := time.Now().UTC()
	res := a.Db.Conn.WithContext(ctx).Model(&models.Alert{}).
		Where("id = ? AND resolved_at_utc IS NULL", alertID).
		Update("resolved_at_utc", now)
	if res.Error != nil {
		return time.Time{}, res.Error
	}

	// No row updated means a concurrent resolve won: report the stored
	// resolution time, not ours.
	if res.RowsAffected == 0 {
		if err := a.Db.Conn.WithContext(ctx).First(&alert, "id = ?", alertID).Error; err != nil {
			return time.Time{}, err
		}
		if alert.ResolvedAtUtc == nil {
			return time.Time{}, ErrAlertNotFound
		}
		return *alert.ResolvedAtUtc, nil
	}

	a.resolutionLogger(alert.FieldID).Info("Alert resolved",
		zap.String("alert_id", alertID),
		zap.String("type", string(alert.Type)))
	return now, nil
}

// resolveActiveByType resolves every active alert of one type for a field
// and returns how many were resolved.
func (a *Agro) resolveActiveByType(ctx context.Context, fieldID string, alertType models.AlertType) (int64, error) {
	lock := a.Locks.GetLock(fieldID)
	lock.Lock()
	defer lock.Unlock()

	res := a.Db.Conn.WithContext(ctx).Model(&models.Alert{}).
		Where("field_id = ? AND type = ? AND resolved_at_utc IS NULL", fieldID, alertType).
		Update("resolved_at_utc", time.Now().UTC())
	if res.Error != nil {
		return 0, res.Error
	}

	a.resolutionLogger(fieldID).Info("Active alerts resolved by type",
		zap.String("type", string(alertType)),
		zap.Int64("count", res.RowsAffected))
	return res.RowsAffected, nil
}

func (a *Agro) resolveAllActive(ctx context.Context, fieldID string) (int64, error) {
	lock := a.Locks.GetLock(fieldID)
	lock.Lock()
	defer lock.Unlock()

	res := a.Db.Conn.WithContext(ctx).Model(&models.Alert{}).
		Where("field_id = ? AND resolved_at_utc IS NULL", fieldID).
		Update("resolved_at_utc", time.Now().UTC())
	if res.Error != nil {
		return 0, res.Error
	}

	a.resolutionLogger(fieldID).Info("All active alerts resolved",
		zap.Int64("count", res.RowsAffected))
	return res.RowsAffected, nil
}

func (a *Agro) resolutionLogger(fieldID string) *zap.Logger {
	return common.GetLoggerWith(
		common.LoggerNameAlertsCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryResolution),
		zap.String("field_id", fieldID),
	)
}

type IAlertImpl struct {
	agro *Agro
}

func (ia *IAlertImpl) GetFieldAlerts(ctx context.Context, fieldID string) ([]models.Alert, error) {
	return ia.agro.getFieldAlerts(ctx, fieldID)
}

func (ia *IAlertImpl) GetActiveFieldAlerts(ctx context.Context, fieldID string) ([]models.Alert, error) {
	return ia.agro.getActiveFieldAlerts(ctx, fieldID)
}

func (ia *IAlertImpl) GetFieldStatus(ctx context.Context, fieldID string) (*models.FieldStatus, error) {
	return ia.agro.getFieldStatus(ctx, fieldID)
}

func (ia *IAlertImpl) ResolveAlert(ctx context.Context, alertID string) (time.Time, error) {
	return ia.agro.resolveAlert(ctx, alertID)
}

func (ia *IAlertImpl) ResolveActiveByType(ctx context.Context, fieldID string, alertType models.AlertType) (int64, error) {
	return ia.agro.resolveActiveByType(ctx, fieldID, alertType)
}

func (ia *IAlertImpl) ResolveAllActive(ctx context.Context, fieldID string) (int64, error) {
	return ia.agro.resolveAllActive(ctx, fieldID)
}

func (a *Agro) GetIAlert() IAlert {
	return &IAlertImpl{agro: a}
}
