package usecase

import (
	"context"
	"testing"

	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("register must establish a session")
	}
	if resp.User.Role != entity.RolePatient {
		t.Fatalf("role = %s, want patient", resp.User.Role)
	}
	if resp.User.DoctorProfile != nil {
		t.Fatal("patient registration must not create a doctor profile")
	}

	login, err := env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Fatal("login must resolve the registered user")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	registerPatient(t, env, "alice@example.com")

	_, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "another123",
		FullName: "Alice Again",
	})
	if err != ErrEmailAlreadyExists {
		t.Fatalf("err = %v, want ErrEmailAlreadyExists", err)
	}
}

func TestRegisterEmailIsCaseSensitive(t *testing.T) {
	env := newTestEnv(t)
	registerPatient(t, env, "alice@example.com")

	// A differently-cased address is a distinct account
	if _, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "Alice@example.com",
		Password: "secret123",
		FullName: "Other Alice",
	}); err != nil {
		t.Fatalf("differently-cased email should register: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	registerPatient(t, env, "alice@example.com")

	_, err := env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	if err != ErrInvalidCredentials {
		t.Fatalf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	_, err = env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	if err != ErrInvalidCredentials {
		t.Fatalf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterAsDoctorStartsPending(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:          "drbob@example.com",
		Password:       "secret123",
		FullName:       "Dr. Bob",
		AsDoctor:       true,
		Specialization: "Cardiology",
		Timings:        "09:00-17:00",
	})
	if err != nil {
		t.Fatalf("doctor register failed: %v", err)
	}
	if resp.User.Role != entity.RoleDoctor {
		t.Fatalf("role = %s, want doctor", resp.User.Role)
	}
	if resp.User.DoctorProfile == nil {
		t.Fatal("doctor registration must create a profile")
	}
	if resp.User.DoctorProfile.ApplicationStatus != string(entity.ApplicationStatusPending) {
		t.Fatalf("application_status = %s, want pending_approval", resp.User.DoctorProfile.ApplicationStatus)
	}

	// The matching review application lands in the admin queue
	apps, err := env.applications.ListApplications(context.Background())
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}
	if apps.Total != 1 {
		t.Fatalf("applications = %d, want 1", apps.Total)
	}
	if apps.Applications[0].UserID != resp.User.ID {
		t.Fatal("application must reference the registered doctor")
	}
}

// A rejected doctor can still log in; the client routes on the embedded
// application status.
func TestRejectedDoctorStillLogsIn(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:          "drbob@example.com",
		Password:       "secret123",
		FullName:       "Dr. Bob",
		AsDoctor:       true,
		Specialization: "Cardiology",
		Timings:        "09:00-17:00",
	})
	if err != nil {
		t.Fatalf("doctor register failed: %v", err)
	}

	apps, _ := env.applications.ListApplications(context.Background())
	adminCtx := ctxForUser(env.adminID, entity.RoleIDAdmin)
	if err := env.applications.Decide(adminCtx, apps.Applications[0].ID, &dto.DecideDoctorApplicationRequest{Decision: DecisionRejected}); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	login, err := env.auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "drbob@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("rejected doctor login failed: %v", err)
	}
	if login.User.DoctorProfile == nil {
		t.Fatal("login response must carry the doctor profile")
	}
	if login.User.DoctorProfile.ApplicationStatus != string(entity.ApplicationStatusRejected) {
		t.Fatalf("application_status = %s, want rejected", login.User.DoctorProfile.ApplicationStatus)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	accessClaims, err := env.jwtService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token should validate: %v", err)
	}
	refreshClaims, err := env.jwtService.ValidateToken(resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token should validate: %v", err)
	}

	if err := env.auth.Logout(context.Background(), accessClaims.TokenID, refreshClaims.TokenID); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// The refresh token is gone from the store
	_, err = env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if err != ErrTokenRevoked {
		t.Fatalf("refresh after logout: err = %v, want ErrTokenRevoked", err)
	}
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "secret123",
		FullName: "Alice",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	rotated, err := env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.AccessToken == "" || rotated.RefreshToken == "" {
		t.Fatal("refresh must issue a new token pair")
	}

	_, err = env.auth.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	if err != ErrTokenRevoked {
		t.Fatalf("reused refresh token: err = %v, want ErrTokenRevoked", err)
	}
}

func TestListPatients(t *testing.T) {
	env := newTestEnv(t)
	registerPatient(t, env, "alice@example.com")
	registerPatient(t, env, "carol@example.com")
	registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")

	patients, err := env.auth.ListPatients(context.Background())
	if err != nil {
		t.Fatalf("list patients failed: %v", err)
	}
	if patients.Total != 2 {
		t.Fatalf("patients = %d, want 2", patients.Total)
	}
	for _, p := range patients.Users {
		if p.Role != entity.RolePatient {
			t.Fatalf("non-patient %s in patient list", p.Email)
		}
	}
}
