package repositories

import "context"

// Repository aggregates all repository interfaces behind one handle.
type Repository interface {
	Teacher() TeacherRepository
	Student() StudentRepository
	Attendance() AttendanceRepository
	Report() ReportRepository

	// WithTransaction runs fn against a Repository bound to one transaction;
	// any error rolls the whole transaction back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
