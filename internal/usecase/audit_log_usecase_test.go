package usecase

import (
	"context"
	"testing"

	"docspot/internal/domain/entity"
)

func TestAuditTrailRecordsActions(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")
	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	if err := env.appointments.Approve(ctxForUser(doctor.ID, entity.RoleIDDoctor), appointment.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	logs, err := env.auditLogs.GetAllAuditLogs(context.Background())
	if err != nil {
		t.Fatalf("list audit logs failed: %v", err)
	}

	seen := map[string]bool{}
	for _, l := range logs.Logs {
		seen[l.Action] = true
	}
	for _, action := range []string{
		entity.AuditActionUserRegister,
		entity.AuditActionApplicationApprove,
		entity.AuditActionAppointmentRequest,
		entity.AuditActionAppointmentApprove,
	} {
		if !seen[action] {
			t.Errorf("audit trail is missing %s", action)
		}
	}
}

func TestGetAuditLogNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auditLogs.GetAuditLog(context.Background(), 424242)
	if err != ErrAuditLogNotFound {
		t.Fatalf("err = %v, want ErrAuditLogNotFound", err)
	}
}
