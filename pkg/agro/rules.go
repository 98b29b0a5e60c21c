package agro

import (
	"context"

	"agrosense.io/field-alerts-service/pkg/models"
	"gorm.io/gorm"
)

// Rules are configuration data. They are loaded fresh on every evaluation
// cycle so catalog edits take effect without restarting the engine.
func getEnabledRules(tx *gorm.DB) ([]models.AlertRule, error) {
	var rules []models.AlertRule
	err := tx.
		Where("is_enabled = ?", true).
		Order("rule_key").
		Find(&rules).Error
	return rules, err
}

func (a *Agro) getEnabled(ctx context.Context) ([]models.AlertRule, error) {
	return getEnabledRules(a.Db.Conn.WithContext(ctx))
}

type IRuleImpl struct {
	agro *Agro
}

func (ir *IRuleImpl) GetEnabled(ctx context.Context) ([]models.AlertRule, error) {
	return ir.agro.getEnabled(ctx)
}

func (a *Agro) GetIRule() IRule {
	return &IRuleImpl{agro: a}
}
