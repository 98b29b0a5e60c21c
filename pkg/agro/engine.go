package agro

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// processReading is the engine entrypoint for one reading event.
//
// The whole cycle runs under the field lock and inside one transaction:
// the reading insert, the snapshot refresh, every rule evaluation, and any
// created alerts commit together or not at all. A failure before commit
// abandons the cycle and the message is redelivered, which is safe because
// the reading insert is idempotent and alert creation is guarded by the
// one-active-alert-per-type invariant.
func (a *Agro) processReading(ctx context.Context, evt *models.SensorReadingReceivedEvent) error {
	if err := validateEvent(evt); err != nil {
		return err
	}

	logger := common.GetLoggerWith(
		common.LoggerNameAlertsCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryEngine),
		zap.String("field_id", evt.FieldID),
	)

	measuredAt := common.EnsureUTC(evt.MeasuredAtUtc)
	receivedAt := common.EnsureUTC(evt.ReceivedAtUtc)

	lock := a.Locks.GetLock(evt.FieldID)
	lock.Lock()
	defer lock.Unlock()

	return a.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inserted, err := insertReadingIdempotent(tx, &models.SensorReading{
			ID:                  evt.ReadingID,
			FieldID:             evt.FieldID,
			SoilMoisturePercent: evt.SoilMoisturePercent,
			TemperatureC:        evt.TemperatureC,
			RainMm:              evt.RainMm,
			MeasuredAtUtc:       measuredAt,
			ReceivedAtUtc:       receivedAt,
		})
		if err != nil {
			return err
		}
		if !inserted {
			// Duplicate delivery: history untouched, but rule evaluation
			// still repeats safely below.
			logger.Info("Duplicate reading, insert skipped", zap.String("reading_id", evt.ReadingID))
		}

		snap, err := loadFieldSnapshot(tx, evt.FieldID)
		if err != nil {
			return err
		}

		// Last known values refresh unconditionally, on every evaluation.
		snap.state.LastReadingAtUtc = &measuredAt
		snap.state.LastSoilMoisturePercent = &evt.SoilMoisturePercent
		snap.state.LastTemperatureC = &evt.TemperatureC
		snap.state.LastRainMm = &evt.RainMm
		snap.state.UpdatedAtUtc = receivedAt

		rules, err := getEnabledRules(tx)
		if err != nil {
			return err
		}

		for i := range rules {
			rule := &rules[i]
			if rule.Type == models.AlertTypeSensorStale {
				// Staleness is the absence of readings; the timer-driven
				// sweep owns it, not the per-reading cycle.
				continue
			}
			evaluator, ok := kindEvaluators[rule.Kind]
			if !ok {
				logger.Warn("Unknown rule kind, rule skipped",
					zap.String("rule_key", rule.RuleKey),
					zap.String("kind", string(rule.Kind)))
				continue
			}

			ec := &evalContext{
				tx:         tx,
				logger:     logger,
				rule:       rule,
				ruleState:  snap.ruleState(rule.RuleKey, measuredAt),
				fieldID:    evt.FieldID,
				evt:        evt,
				measuredAt: measuredAt,
			}

			// A faulty rule must not block its siblings: the cycle still
			// commits the results of the rules that evaluated cleanly.
			if err := evaluator.evaluate(ec); err != nil {
				logger.Warn("Rule evaluation failed, rule skipped",
					zap.String("rule_key", rule.RuleKey),
					zap.Error(err))
			}
		}

		return snap.save(tx)
	})
}

func validateEvent(evt *models.SensorReadingReceivedEvent) error {
	if evt == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if evt.ReadingID == "" {
		return fmt.Errorf("%w: missing readingId", ErrInvalidEvent)
	}
	if evt.FieldID == "" {
		return fmt.Errorf("%w: missing fieldId", ErrInvalidEvent)
	}
	if evt.MeasuredAtUtc.IsZero() {
		return fmt.Errorf("%w: missing measuredAtUtc", ErrInvalidEvent)
	}
	if evt.ReceivedAtUtc.IsZero() {
		return fmt.Errorf("%w: missing receivedAtUtc", ErrInvalidEvent)
	}
	return nil
}

// fieldSnapshot is the in-memory working copy of one FieldState with its
// rule states held in a keyed map, so (fieldId, ruleKey) uniqueness is
// structural rather than a scan-by-predicate convention.
type fieldSnapshot struct {
	state *models.FieldState
	rules map[string]*models.RuleState
}

func loadFieldSnapshot(tx *gorm.DB, fieldID string) (*fieldSnapshot, error) {
	var state models.FieldState
	err := tx.Preload("Rules").First(&state, "field_id = ?", fieldID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state = models.FieldState{FieldID: fieldID}
	} else if err != nil {
		return nil, err
	}

	rules := make(map[string]*models.RuleState, len(state.Rules))
	for i := range state.Rules {
		rules[state.Rules[i].RuleKey] = &state.Rules[i]
	}
	return &fieldSnapshot{state: &state, rules: rules}, nil
}

// ruleState finds or lazily creates the evaluation memory of one rule.
func (s *fieldSnapshot) ruleState(ruleKey string, now time.Time) *models.RuleState {
	if rs, ok := s.rules[ruleKey]; ok {
		return rs
	}
	rs := &models.RuleState{
		FieldID:      s.state.FieldID,
		RuleKey:      ruleKey,
		UpdatedAtUtc: now,
	}
	s.rules[ruleKey] = rs
	return rs
}

func (s *fieldSnapshot) save(tx *gorm.DB) error {
	err := tx.Omit("Rules").Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "field_id"}},
		UpdateAll: true,
	}).Create(s.state).Error
	if err != nil {
		return err
	}

	for _, rs := range s.rules {
		if rs.ID == 0 {
			err = tx.Create(rs).Error
		} else {
			err = tx.Save(rs).Error
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type IEngineImpl struct {
	agro *Agro
}

func (ie *IEngineImpl) ProcessReading(ctx context.Context, evt *models.SensorReadingReceivedEvent) error {
	return ie.agro.processReading(ctx, evt)
}

func (a *Agro) GetIEngine() IEngine {
	return &IEngineImpl{agro: a}
}
