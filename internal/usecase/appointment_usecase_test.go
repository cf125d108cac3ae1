package usecase

import (
	"context"
	"testing"

	"docspot/internal/delivery/dto"
	"docspot/internal/domain/entity"

	"github.com/google/uuid"
)

func bookAppointment(t *testing.T, env *testEnv, patientID, doctorID uuid.UUID) *dto.AppointmentResponse {
	t.Helper()

	date, clock := futureSlot()
	appointment, err := env.appointments.Request(ctxForUser(patientID, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: clock,
		Reason:          "Checkup",
	})
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	return appointment
}

func TestRequestAppointment(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")

	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	if appointment.Status != string(entity.AppointmentStatusPending) {
		t.Fatalf("status = %s, want pending", appointment.Status)
	}
	if appointment.PatientName != patient.FullName {
		t.Fatalf("patient_name = %s, want the booking-time snapshot", appointment.PatientName)
	}
	if appointment.DoctorName != doctor.FullName || appointment.DoctorSpecialization != "Cardiology" {
		t.Fatal("doctor display fields must be snapshotted at booking time")
	}
}

func TestRequestRejectsPastSlot(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")

	_, err := env.appointments.Request(ctxForUser(patient.ID, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
		DoctorID:        doctor.ID,
		AppointmentDate: "2020-01-01",
		AppointmentTime: "10:00",
	})
	if err != ErrPastDateTime {
		t.Fatalf("err = %v, want ErrPastDateTime", err)
	}
}

func TestRequestRequiresApprovedDoctor(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")

	// A doctor whose application is still pending cannot be booked
	pending, err := env.auth.Register(context.Background(), &dto.RegisterRequest{
		Email:          "drcarol@example.com",
		Password:       "secret123",
		FullName:       "Dr. Carol",
		AsDoctor:       true,
		Specialization: "Neurology",
		Timings:        "09:00-17:00",
	})
	if err != nil {
		t.Fatalf("doctor register failed: %v", err)
	}

	date, clock := futureSlot()
	for _, doctorID := range []uuid.UUID{pending.User.ID, uuid.New()} {
		_, err := env.appointments.Request(ctxForUser(patient.ID, entity.RoleIDPatient), &dto.CreateAppointmentRequest{
			DoctorID:        doctorID,
			AppointmentDate: date,
			AppointmentTime: clock,
		})
		if err != ErrDoctorNotFound {
			t.Fatalf("err = %v, want ErrDoctorNotFound", err)
		}
	}
}

func TestRequestReplaysIdempotencyKey(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")

	date, clock := futureSlot()
	req := &dto.CreateAppointmentRequest{
		DoctorID:        doctor.ID,
		AppointmentDate: date,
		AppointmentTime: clock,
		IdempotencyKey:  "retry-abc",
	}

	ctx := ctxForUser(patient.ID, entity.RoleIDPatient)
	first, err := env.appointments.Request(ctx, req)
	if err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	second, err := env.appointments.Request(ctx, req)
	if err != nil {
		t.Fatalf("replayed booking failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("replay created a new appointment: %s != %s", second.ID, first.ID)
	}

	all, _ := env.appointments.GetAllAppointments(context.Background())
	if all.Total != 1 {
		t.Fatalf("appointments = %d, want 1", all.Total)
	}
}

func TestAppointmentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")
	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	doctorCtx := ctxForUser(doctor.ID, entity.RoleIDDoctor)
	patientCtx := ctxForUser(patient.ID, entity.RoleIDPatient)

	if err := env.appointments.Approve(doctorCtx, appointment.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := env.appointments.Complete(doctorCtx, appointment.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	withSummary, err := env.appointments.AttachSummary(doctorCtx, appointment.ID, &dto.AttachSummaryRequest{
		VisitSummary: "All fine",
		Prescription: "Rest",
	})
	if err != nil {
		t.Fatalf("attach summary failed: %v", err)
	}
	if withSummary.VisitSummary != "All fine" || withSummary.Prescription != "Rest" {
		t.Fatal("summary fields must be persisted")
	}
	if withSummary.Status != string(entity.AppointmentStatusCompleted) {
		t.Fatalf("status = %s, want completed", withSummary.Status)
	}

	// Repeating the call overwrites: latest values win
	updated, err := env.appointments.AttachSummary(doctorCtx, appointment.ID, &dto.AttachSummaryRequest{
		VisitSummary: "Follow-up needed",
	})
	if err != nil {
		t.Fatalf("second attach summary failed: %v", err)
	}
	if updated.VisitSummary != "Follow-up needed" || updated.Prescription != "" {
		t.Fatal("attach summary must overwrite the previous values")
	}

	// Completed is terminal for everything but summary upserts
	if err := env.appointments.Cancel(patientCtx, appointment.ID); err != ErrInvalidTransition {
		t.Fatalf("cancel on completed: err = %v, want ErrInvalidTransition", err)
	}
}

func TestRejectAppointment(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")
	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	doctorCtx := ctxForUser(doctor.ID, entity.RoleIDDoctor)
	if err := env.appointments.Reject(doctorCtx, appointment.ID); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	// Rejected is terminal
	if err := env.appointments.Approve(doctorCtx, appointment.ID); err != ErrInvalidTransition {
		t.Fatalf("approve on rejected: err = %v, want ErrInvalidTransition", err)
	}
}

func TestCancelScheduledAppointment(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")
	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	if err := env.appointments.Approve(ctxForUser(doctor.ID, entity.RoleIDDoctor), appointment.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if err := env.appointments.Cancel(ctxForUser(patient.ID, entity.RoleIDPatient), appointment.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	mine, _ := env.appointments.GetMyAppointments(ctxForUser(patient.ID, entity.RoleIDPatient))
	if mine.Appointments[0].Status != string(entity.AppointmentStatusCancelled) {
		t.Fatalf("status = %s, want cancelled", mine.Appointments[0].Status)
	}
}

func TestActionsAreActorGated(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	eve := registerPatient(t, env, "eve@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")
	otherDoctor := registerApprovedDoctor(t, env, "drdan@example.com", "Dr. Dan", "Neurology")
	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	// Another patient cannot cancel
	if err := env.appointments.Cancel(ctxForUser(eve.ID, entity.RoleIDPatient), appointment.ID); err != ErrNotYourAppointment {
		t.Fatalf("foreign cancel: err = %v, want ErrNotYourAppointment", err)
	}

	// Another doctor cannot decide
	if err := env.appointments.Approve(ctxForUser(otherDoctor.ID, entity.RoleIDDoctor), appointment.ID); err != ErrNotYourAppointment {
		t.Fatalf("foreign approve: err = %v, want ErrNotYourAppointment", err)
	}

	// The booking patient cannot approve their own request
	if err := env.appointments.Approve(ctxForUser(patient.ID, entity.RoleIDPatient), appointment.ID); err != ErrNotYourAppointment {
		t.Fatalf("patient approve: err = %v, want ErrNotYourAppointment", err)
	}

	// A non-participant cannot reschedule
	date, clock := futureSlot()
	if _, err := env.appointments.Reschedule(ctxForUser(eve.ID, entity.RoleIDPatient), appointment.ID, &dto.RescheduleAppointmentRequest{
		AppointmentDate: date,
		AppointmentTime: clock,
	}); err != ErrNotYourAppointment {
		t.Fatalf("foreign reschedule: err = %v, want ErrNotYourAppointment", err)
	}
}

func TestRescheduleKeepsStatus(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")
	appointment := bookAppointment(t, env, patient.ID, doctor.ID)

	// Either participant may reschedule; here the doctor moves the slot
	rescheduled, err := env.appointments.Reschedule(ctxForUser(doctor.ID, entity.RoleIDDoctor), appointment.ID, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2099-06-01",
		AppointmentTime: "14:30",
	})
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if rescheduled.AppointmentDate != "2099-06-01" || rescheduled.AppointmentTime != "14:30" {
		t.Fatal("new slot must be persisted")
	}
	if rescheduled.Status != string(entity.AppointmentStatusPending) {
		t.Fatalf("status = %s, reschedule must not change it", rescheduled.Status)
	}

	// Past slots are refused here too
	if _, err := env.appointments.Reschedule(ctxForUser(patient.ID, entity.RoleIDPatient), appointment.ID, &dto.RescheduleAppointmentRequest{
		AppointmentDate: "2020-01-01",
		AppointmentTime: "10:00",
	}); err != ErrPastDateTime {
		t.Fatalf("past reschedule: err = %v, want ErrPastDateTime", err)
	}
}

func TestGetDoctorAppointmentsFiltersByStatus(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")
	doctor := registerApprovedDoctor(t, env, "drbob@example.com", "Dr. Bob", "Cardiology")

	first := bookAppointment(t, env, patient.ID, doctor.ID)
	bookAppointment(t, env, patient.ID, doctor.ID)

	doctorCtx := ctxForUser(doctor.ID, entity.RoleIDDoctor)
	if err := env.appointments.Approve(doctorCtx, first.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}

	all, err := env.appointments.GetDoctorAppointments(doctorCtx, "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if all.Total != 2 {
		t.Fatalf("unfiltered = %d, want 2", all.Total)
	}

	scheduled, err := env.appointments.GetDoctorAppointments(doctorCtx, entity.AppointmentStatusScheduled)
	if err != nil {
		t.Fatalf("filtered list failed: %v", err)
	}
	if scheduled.Total != 1 || scheduled.Appointments[0].ID != first.ID {
		t.Fatalf("scheduled filter returned %d, want exactly the approved one", scheduled.Total)
	}
}

func TestTransitionNotFound(t *testing.T) {
	env := newTestEnv(t)
	patient := registerPatient(t, env, "alice@example.com")

	err := env.appointments.Cancel(ctxForUser(patient.ID, entity.RoleIDPatient), uuid.New())
	if err != ErrAppointmentNotFound {
		t.Fatalf("err = %v, want ErrAppointmentNotFound", err)
	}
}
