package testfixtures

import (
	"log/slog"

	"github.com/example/hrms-lite/internal/application"
)

// ServiceFactory builds application services that share a deterministic clock.
type ServiceFactory struct {
	Clock  *Clock
	Logger *slog.Logger
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with a frozen ReferenceTime clock.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{Clock: NewClock(ReferenceTime())}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(ReferenceTime())
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithLogger sets the logger handed to every service.
func WithLogger(logger *slog.Logger) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Logger = logger
	}
}

// NewEmployeeService builds an employee service over employees.
func (f *ServiceFactory) NewEmployeeService(employees application.EmployeeRepository) *application.EmployeeService {
	return application.NewEmployeeService(employees, f.Clock.NowFunc(), f.Logger)
}

// NewAttendanceService builds an attendance service over the given repositories.
func (f *ServiceFactory) NewAttendanceService(attendance application.AttendanceRepository, employees application.EmployeeDirectory) *application.AttendanceService {
	return application.NewAttendanceService(attendance, employees, f.Clock.NowFunc(), f.Logger)
}
