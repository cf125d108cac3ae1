package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"docspot/config"
	"docspot/internal/delivery/dto"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/domain/entity"
	"docspot/internal/repository"
	"docspot/internal/service"
	"docspot/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full usecase stack against an in-memory SQLite database
// and a miniredis instance.
type testEnv struct {
	db           *gorm.DB
	redis        *redis.Client
	adminID      uuid.UUID
	jwtService   *jwt.JWTService
	auth         AuthUsecase
	directory    DoctorDirectoryUsecase
	applications DoctorApplicationUsecase
	appointments AppointmentUsecase
	auditLogs    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A second connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.DoctorProfile{},
		&entity.DoctorApplication{},
		&entity.Appointment{},
		&entity.AuditLog{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("failed to seed roles: %v", err)
	}

	admin := entity.User{
		RoleID:   entity.RoleIDAdmin,
		Email:    "admin@example.com",
		Password: "unused",
		FullName: "Admin",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	applicationRepo := repository.NewDoctorApplicationRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(db, log, auditLogRepo)
	lockService := service.NewWorkflowLockService(redisClient, log)

	return &testEnv{
		db:           db,
		redis:        redisClient,
		adminID:      admin.ID,
		jwtService:   jwtService,
		auth:         NewAuthUsecase(db, log, userRepo, doctorProfileRepo, applicationRepo, auditService, jwtService, redisClient),
		directory:    NewDoctorDirectoryUsecase(db, log, doctorProfileRepo),
		applications: NewDoctorApplicationUsecase(db, log, userRepo, doctorProfileRepo, applicationRepo, auditService, lockService),
		appointments: NewAppointmentUsecase(db, log, userRepo, doctorProfileRepo, appointmentRepo, auditService, lockService),
		auditLogs:    NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

// ctxForUser builds a context carrying the identity the auth middleware would
// have injected.
func ctxForUser(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

func registerPatient(t *testing.T, env *testEnv, email string) *dto.UserResponse {
	t.Helper()

	resp, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    email,
		Password: "secret123",
		FullName: "Test Patient",
		Phone:    "08123456789",
	})
	if err != nil {
		t.Fatalf("failed to register patient %s: %v", email, err)
	}
	return &resp.User
}

// registerApprovedDoctor registers a doctor account and approves its pending
// application, leaving a bookable doctor behind.
func registerApprovedDoctor(t *testing.T, env *testEnv, email, fullName, specialization string) *dto.UserResponse {
	t.Helper()

	resp, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:           email,
		Password:        "secret123",
		FullName:        fullName,
		AsDoctor:        true,
		Specialization:  specialization,
		ExperienceYears: 5,
		ConsultationFee: decimal.NewFromInt(100),
		Timings:         "09:00-17:00",
	})
	if err != nil {
		t.Fatalf("failed to register doctor %s: %v", email, err)
	}

	applications, err := env.applications.ListApplications(context.Background())
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}

	adminCtx := ctxForUser(env.adminID, entity.RoleIDAdmin)
	for _, app := range applications.Applications {
		if app.UserID == resp.User.ID && app.Status == string(entity.ApplicationStatusPending) {
			if err := env.applications.Decide(adminCtx, app.ID, &dto.DecideDoctorApplicationRequest{Decision: DecisionApproved}); err != nil {
				t.Fatalf("failed to approve application: %v", err)
			}
			return &resp.User
		}
	}

	t.Fatalf("no pending application found for doctor %s", email)
	return nil
}

// futureSlot returns a date and time string safely in the future.
func futureSlot() (string, string) {
	when := time.Now().Add(48 * time.Hour)
	return when.Format("2006-01-02"), "10:00"
}
