package agro

import (
	"bufio"
	"encoding/json"
	"io"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"agrosense.io/field-alerts-service/pkg/agro/mocks"
	"agrosense.io/field-alerts-service/pkg/db"
	"agrosense.io/field-alerts-service/pkg/models"
)

func GetMockAgroWithMemorySqliteDialector(t *testing.T, useMockEngine, useMockStale, useMockAlert, useMockRule bool) (
	*gomock.Controller,
	*Agro,
	*mocks.MockIEngine,
	*mocks.MockIStale,
	*mocks.MockIAlert,
	*mocks.MockIRule,
) {
	ctrl := gomock.NewController(t)

	mockEngine := mocks.NewMockIEngine(ctrl)
	mockStale := mocks.NewMockIStale(ctrl)
	mockAlert := mocks.NewMockIAlert(ctrl)
	mockRule := mocks.NewMockIRule(ctrl)

	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	agroInstance := &Agro{Db: *dbInstance, Locks: NewFieldLockStore()}

	engineService := agroInstance.GetIEngine()
	if useMockEngine {
		engineService = mockEngine
	}

	staleService := agroInstance.GetIStale()
	if useMockStale {
		staleService = mockStale
	}

	alertService := agroInstance.GetIAlert()
	if useMockAlert {
		alertService = mockAlert
	}

	ruleService := agroInstance.GetIRule()
	if useMockRule {
		ruleService = mockRule
	}

	agroInstance.WithServices(ServiceOpts{
		Engine: engineService,
		Stale:  staleService,
		Alert:  alertService,
		Rule:   ruleService,
	})

	return ctrl, agroInstance, mockEngine, mockStale, mockAlert, mockRule
}

// createTestRule inserts a rule and disables it again when the test ends,
// so rules do not leak into sibling tests sharing the memory database.
func createTestRule(t *testing.T, a *Agro, rule *models.AlertRule) {
	t.Helper()

	if err := a.Db.Conn.Create(rule).Error; err != nil {
		t.Fatalf("failed to create test rule: %v", err)
	}

	t.Cleanup(func() {
		a.Db.Conn.Model(&models.AlertRule{}).
			Where("id = ?", rule.ID).
			Update("is_enabled", false)
	})
}

func readingEvent(fieldID string, readingID string, moisture, temp, rain float64, measuredAt time.Time) *models.SensorReadingReceivedEvent {
	return &models.SensorReadingReceivedEvent{
		EventType:           models.EventTypeSensorReadingReceived,
		ReadingID:           readingID,
		FieldID:             fieldID,
		SoilMoisturePercent: moisture,
		TemperatureC:        temp,
		RainMm:              rain,
		MeasuredAtUtc:       measuredAt,
		ReceivedAtUtc:       measuredAt,
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func metricPtr(m models.SensorMetric) *models.SensorMetric { return &m }

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
