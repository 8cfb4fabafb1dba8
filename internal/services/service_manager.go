package services

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/campus-track/attendance-service/internal/auth"
	"github.com/campus-track/attendance-service/internal/cache"
	"github.com/campus-track/attendance-service/internal/events"
	"github.com/campus-track/attendance-service/internal/repositories"
	"github.com/campus-track/attendance-service/internal/utils"
	"github.com/campus-track/attendance-service/internal/validator"
)

// ServiceConfig holds everything the services need.
type ServiceConfig struct {
	Repository       repositories.Repository
	RedisClient      *redis.Client
	Issuer           *auth.Issuer
	Publisher        events.EventPublisher
	Logger           utils.Logger
	RegistrationCode string
}

type serviceManager struct {
	config ServiceConfig

	auth       AuthService
	roster     RosterService
	attendance AttendanceService
	report     ReportService
	export     ExportService
}

func NewServiceManager(config ServiceConfig) ServiceManager {
	return &serviceManager{config: config}
}

func (sm *serviceManager) Initialize() error {
	if sm.config.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if sm.config.Issuer == nil {
		return fmt.Errorf("token issuer is required")
	}
	if sm.config.Logger == nil {
		return fmt.Errorf("logger is required")
	}

	v := validator.New()
	reportCache := cache.NewCacheHelper(sm.config.RedisClient, cache.ReportCacheConfig.Prefix)
	revokedCache := cache.NewCacheHelper(sm.config.RedisClient, cache.RevokedTokenConfig.Prefix)

	sm.auth = NewAuthService(
		sm.config.Repository,
		sm.config.Issuer,
		revokedCache,
		sm.config.Publisher,
		v,
		sm.config.Logger,
		sm.config.RegistrationCode,
	)
	sm.roster = NewRosterService(sm.config.Repository, reportCache, v, sm.config.Logger)
	sm.attendance = NewAttendanceService(sm.config.Repository, reportCache, sm.config.Publisher, v, sm.config.Logger)
	sm.report = NewReportService(sm.config.Repository, reportCache, sm.config.Logger)
	sm.export = NewExportService(sm.report, sm.config.Logger)

	return nil
}

func (sm *serviceManager) Auth() AuthService             { return sm.auth }
func (sm *serviceManager) Roster() RosterService         { return sm.roster }
func (sm *serviceManager) Attendance() AttendanceService { return sm.attendance }
func (sm *serviceManager) Report() ReportService         { return sm.report }
func (sm *serviceManager) Export() ExportService         { return sm.export }

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	if sm.config.Publisher != nil {
		if err := sm.config.Publisher.Close(); err != nil {
			return fmt.Errorf("failed to close event publisher: %w", err)
		}
	}
	return nil
}
