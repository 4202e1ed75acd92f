package metrics

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	employeesCreated   metric.Int64Counter
	employeesUpdated   metric.Int64Counter
	employeesDeleted   metric.Int64Counter
	employeesViewed    metric.Int64Counter
	employeeListViewed metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.employeesCreated, err = meter.Int64Counter(
		"employee_service.employees.created",
		metric.WithDescription("Total number of employees created"),
		metric.WithUnit("{employee}"),
	)
	if err != nil {
		return nil, err
	}

	m.employeesUpdated, err = meter.Int64Counter(
		"employee_service.employees.updated",
		metric.WithDescription("Total number of employees updated"),
		metric.WithUnit("{employee}"),
	)
	if err != nil {
		return nil, err
	}

	m.employeesDeleted, err = meter.Int64Counter(
		"employee_service.employees.deleted",
		metric.WithDescription("Total number of employees deleted"),
		metric.WithUnit("{employee}"),
	)
	if err != nil {
		return nil, err
	}

	m.employeesViewed, err = meter.Int64Counter(
		"employee_service.employees.viewed",
		metric.WithDescription("Total number of times a single employee was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	m.employeeListViewed, err = meter.Int64Counter(
		"employee_service.employees.list_viewed",
		metric.WithDescription("Total number of times the employee list was viewed"),
		metric.WithUnit("{view}"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

// NewMock creates a no-op Metrics instance for testing
// The returned Metrics will safely ignore all Record* calls
func NewMock() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordEmployeeCreated(ctx context.Context) {
	if m == nil || m.employeesCreated == nil {
		return
	}
	m.employeesCreated.Add(ctx, 1)
}

func (m *Metrics) RecordEmployeeUpdated(ctx context.Context) {
	if m == nil || m.employeesUpdated == nil {
		return
	}
	m.employeesUpdated.Add(ctx, 1)
}

func (m *Metrics) RecordEmployeeDeleted(ctx context.Context) {
	if m == nil || m.employeesDeleted == nil {
		return
	}
	m.employeesDeleted.Add(ctx, 1)
}

func (m *Metrics) RecordEmployeeViewed(ctx context.Context) {
	if m == nil || m.employeesViewed == nil {
		return
	}
	m.employeesViewed.Add(ctx, 1)
}

func (m *Metrics) RecordEmployeeListViewed(ctx context.Context) {
	if m == nil || m.employeeListViewed == nil {
		return
	}
	m.employeeListViewed.Add(ctx, 1)
}
