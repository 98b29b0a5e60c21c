package agro

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrosense.io/field-alerts-service/pkg/common"
	"agrosense.io/field-alerts-service/pkg/models"
	_ "agrosense.io/field-alerts-service/pkg/testing"
)

func TestGetEnabledExcludesDisabledRules(t *testing.T) {
	common.SetTestLoggerNop()

	ctrl, agroObj, _, _, _, _ := GetMockAgroWithMemorySqliteDialector(t, false, false, false, false)
	defer ctrl.Finish()

	enabledKey := "enabled-" + uuid.NewString()
	createTestRule(t, agroObj, &models.AlertRule{
		ID:              uuid.NewString(),
		RuleKey:         enabledKey,
		Name:            "Enabled",
		IsEnabled:       true,
		Type:            models.AlertTypeDrought,
		Severity:        models.SeverityWarning,
		Kind:            models.KindThresholdDuration,
		Metric:          models.MetricSoilMoisture,
		Operator:        models.OpLessThan,
		ThresholdValue:  30,
		MessageTemplate: "dry",
	})

	disabledKey := "disabled-" + uuid.NewString()
	createTestRule(t, agroObj, &models.AlertRule{
		ID:              uuid.NewString(),
		RuleKey:         disabledKey,
		Name:            "Disabled",
		IsEnabled:       false,
		Type:            models.AlertTypeHeatStress,
		Severity:        models.SeverityWarning,
		Kind:            models.KindThresholdDuration,
		Metric:          models.MetricTemperature,
		Operator:        models.OpGreaterOrEqual,
		ThresholdValue:  35,
		MessageTemplate: "hot",
	})

	rules, err := agroObj.Rule.GetEnabled(context.Background())
	require.NoError(t, err)

	keys := make(map[string]bool, len(rules))
	for _, rule := range rules {
		keys[rule.RuleKey] = true
	}
	assert.True(t, keys[enabledKey])
	assert.False(t, keys[disabledKey])
}
