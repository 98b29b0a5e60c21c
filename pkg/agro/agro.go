package agro

import (
	"context"
	"errors"
	"time"

	"agrosense.io/field-alerts-service/pkg/db"
	"agrosense.io/field-alerts-service/pkg/models"
)

var (
	// ErrInvalidEvent marks a malformed reading event. Not retryable:
	// redelivering the same payload can never succeed.
	ErrInvalidEvent = errors.New("invalid reading event")

	// ErrAlertNotFound is returned when resolving an unknown alert id.
	ErrAlertNotFound = errors.New("alert not found")
)

type IEngine interface {
	ProcessReading(ctx context.Context, evt *models.SensorReadingReceivedEvent) error
}

type IStale interface {
	RunSweep(ctx context.Context) error
}

type IAlert interface {
	GetFieldAlerts(ctx context.Context, fieldID string) ([]models.Alert, error)
	GetActiveFieldAlerts(ctx context.Context, fieldID string) ([]models.Alert, error)
	GetFieldStatus(ctx context.Context, fieldID string) (*models.FieldStatus, error)
	ResolveAlert(ctx context.Context, alertID string) (time.Time, error)
	ResolveActiveByType(ctx context.Context, fieldID string, alertType models.AlertType) (int64, error)
	ResolveAllActive(ctx context.Context, fieldID string) (int64, error)
}

type IRule interface {
	GetEnabled(ctx context.Context) ([]models.AlertRule, error)
}

// Agro is the core of the alerts service: the event-driven rule engine,
// the periodic stale-sensor sweep, and the alert query/resolution surface.
type Agro struct {
	Db     db.DB
	Locks  *FieldLockStore
	Engine IEngine
	Stale  IStale
	Alert  IAlert
	Rule   IRule
}

type ServiceOpts struct {
	Engine IEngine
	Stale  IStale
	Alert  IAlert
	Rule   IRule
}

func (a *Agro) WithServices(opts ServiceOpts) *Agro {
	if a.Locks == nil {
		a.Locks = NewFieldLockStore()
	}
	if opts.Engine != nil {
		a.Engine = opts.Engine
	}
	if opts.Stale != nil {
		a.Stale = opts.Stale
	}
	if opts.Alert != nil {
		a.Alert = opts.Alert
	}
	if opts.Rule != nil {
		a.Rule = opts.Rule
	}
	return a
}
