package agro

import (
	"context"
	"strconv"
	"strings"
	"time"

	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// The stale cooldown falls back to an hour when the rule leaves it unset.
const defaultStaleCooldownMinutes = 60

// runSweep detects fields that stopped reporting. The engine only runs
// when a reading arrives, and staleness is exactly the absence of
// readings, so this check is driven by a timer instead.
//
// Staleness has no sustain phase: the sweep uses only active-alert dedup
// and cooldown, never the rule-state window machinery.
func (a *Agro) runSweep(ctx context.Context) error {
	logger := common.GetLoggerWith(
		common.LoggerNameAlertsCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryStale),
	)

	rules, err := a.getEnabled(ctx)
	if err != nil {
		return err
	}

	// The stale rule is identified by its alert type, not by kind dispatch.
	var staleRule *models.AlertRule
	for i := range rules {
		if rules[i].Type == models.AlertTypeSensorStale {
			staleRule = &rules[i]
			break
		}
	}
	if staleRule == nil || staleRule.DurationMinutes == nil || *staleRule.DurationMinutes <= 0 {
		return nil
	}

	threshold := time.Duration(*staleRule.DurationMinutes) * time.Minute
	cooldownMinutes := defaultStaleCooldownMinutes
	if staleRule.CooldownMinutes != nil {
		cooldownMinutes = *staleRule.CooldownMinutes
	}
	cooldown := time.Duration(cooldownMinutes) * time.Minute

	nowUtc := time.Now().UTC()
	olderThanUtc := nowUtc.Add(-threshold)

	var staleFields []models.FieldState
	err = a.Db.Conn.WithContext(ctx).
		Where("last_reading_at_utc IS NULL OR last_reading_at_utc < ?", olderThanUtc).
		Find(&staleFields).Error
	if err != nil {
		return err
	}

	for i := range staleFields {
		if err := a.sweepField(ctx, &staleFields[i], staleRule, cooldown, nowUtc, logger); err != nil {
			// One field's failure must not starve the rest of the sweep.
			logger.Error("Stale check failed for field",
				zap.String("field_id", staleFields[i].FieldID),
				zap.Error(err))
		}
	}
	return nil
}

// sweepField checks a single stale candidate under its field lock, so the
// dedup decision cannot race with the engine updating the same field.
func (a *Agro) sweepField(ctx context.Context, fs *models.FieldState, rule *models.AlertRule, cooldown time.Duration, nowUtc time.Time, logger *zap.Logger) error {
	lock := a.Locks.GetLock(fs.FieldID)
	lock.Lock()
	defer lock.Unlock()

	conn := a.Db.Conn.WithContext(ctx)

	hasActive, err := hasActiveAlert(conn, fs.FieldID, models.AlertTypeSensorStale)
	if err != nil {
		return err
	}
	if hasActive {
		return nil
	}

	var last models.Alert
	err = conn.
		Where("field_id = ? AND type = ?", fs.FieldID, models.AlertTypeSensorStale).
		Order("triggered_at_utc desc").
		Limit(1).
		Find(&last).Error
	if err != nil {
		return err
	}
	if last.ID != "" && nowUtc.Sub(last.TriggeredAtUtc) < cooldown {
		return nil
	}

	lastReading := "n/a"
	if fs.LastReadingAtUtc != nil {
		lastReading = fs.LastReadingAtUtc.Format(time.RFC3339Nano)
	}
	message := strings.NewReplacer(
		"{minutes}", strconv.Itoa(*rule.DurationMinutes),
		"{measuredAt}", lastReading,
	).Replace(rule.MessageTemplate)

	alert := models.Alert{
		ID:             uuid.NewString(),
		FieldID:        fs.FieldID,
		Type:           models.AlertTypeSensorStale,
		Severity:       rule.Severity,
		Message:        message,
		TriggeredAtUtc: nowUtc,
	}
	if err := conn.Create(&alert).Error; err != nil {
		return err
	}

	logger.Info("Stale sensor alert saved", zap.Reflect("alert", alert))
	return nil
}

// RunStaleWorker runs the sweep on a fixed interval until the context is
// cancelled. A sweep failure is logged and the next tick tries again.
func (a *Agro) RunStaleWorker(ctx context.Context, interval time.Duration) {
	logger := common.GetLoggerWith(
		common.LoggerNameStaleWorker,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryStale),
	)
	logger.Info("Stale worker started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := a.Stale.RunSweep(ctx); err != nil {
			logger.Error("Stale sweep failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			logger.Info("Stale worker stopped")
			return
		case <-ticker.C:
		}
	}
}

type IStaleImpl struct {
	agro *Agro
}

func (is *IStaleImpl) RunSweep(ctx context.Context) error {
	return is.agro.runSweep(ctx)
}

func (a *Agro) GetIStale() IStale {
	return &IStaleImpl{agro: a}
}
