package entity

import "testing"

func TestNextStatus(t *testing.T) {
	cases := []struct {
		name    string
		from    AppointmentStatus
		action  AppointmentAction
		want    AppointmentStatus
		allowed bool
	}{
		{"pending approve", AppointmentStatusPending, AppointmentActionApprove, AppointmentStatusScheduled, true},
		{"pending reject", AppointmentStatusPending, AppointmentActionReject, AppointmentStatusRejected, true},
		{"pending cancel", AppointmentStatusPending, AppointmentActionCancel, AppointmentStatusCancelled, true},
		{"pending reschedule", AppointmentStatusPending, AppointmentActionReschedule, AppointmentStatusPending, true},
		{"pending complete", AppointmentStatusPending, AppointmentActionComplete, AppointmentStatusPending, false},
		{"pending attach summary", AppointmentStatusPending, AppointmentActionAttachSummary, AppointmentStatusPending, false},

		{"scheduled cancel", AppointmentStatusScheduled, AppointmentActionCancel, AppointmentStatusCancelled, true},
		{"scheduled complete", AppointmentStatusScheduled, AppointmentActionComplete, AppointmentStatusCompleted, true},
		{"scheduled reschedule", AppointmentStatusScheduled, AppointmentActionReschedule, AppointmentStatusScheduled, true},
		{"scheduled approve", AppointmentStatusScheduled, AppointmentActionApprove, AppointmentStatusScheduled, false},
		{"scheduled reject", AppointmentStatusScheduled, AppointmentActionReject, AppointmentStatusScheduled, false},
		{"scheduled attach summary", AppointmentStatusScheduled, AppointmentActionAttachSummary, AppointmentStatusScheduled, false},

		{"completed attach summary", AppointmentStatusCompleted, AppointmentActionAttachSummary, AppointmentStatusCompleted, true},
		{"completed cancel", AppointmentStatusCompleted, AppointmentActionCancel, AppointmentStatusCompleted, false},
		{"completed approve", AppointmentStatusCompleted, AppointmentActionApprove, AppointmentStatusCompleted, false},
		{"completed reschedule", AppointmentStatusCompleted, AppointmentActionReschedule, AppointmentStatusCompleted, false},

		{"cancelled approve", AppointmentStatusCancelled, AppointmentActionApprove, AppointmentStatusCancelled, false},
		{"cancelled cancel", AppointmentStatusCancelled, AppointmentActionCancel, AppointmentStatusCancelled, false},
		{"cancelled reschedule", AppointmentStatusCancelled, AppointmentActionReschedule, AppointmentStatusCancelled, false},

		{"rejected approve", AppointmentStatusRejected, AppointmentActionApprove, AppointmentStatusRejected, false},
		{"rejected cancel", AppointmentStatusRejected, AppointmentActionCancel, AppointmentStatusRejected, false},
		{"rejected attach summary", AppointmentStatusRejected, AppointmentActionAttachSummary, AppointmentStatusRejected, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, allowed := NextStatus(tc.from, tc.action)
			if allowed != tc.allowed {
				t.Fatalf("NextStatus(%s, %s) allowed = %v, want %v", tc.from, tc.action, allowed, tc.allowed)
			}
			if got != tc.want {
				t.Fatalf("NextStatus(%s, %s) = %s, want %s", tc.from, tc.action, got, tc.want)
			}
		})
	}
}

func TestApplyMovesStatus(t *testing.T) {
	a := &Appointment{Status: AppointmentStatusPending}

	if !a.Apply(AppointmentActionApprove) {
		t.Fatal("approve on pending should be allowed")
	}
	if a.Status != AppointmentStatusScheduled {
		t.Fatalf("status = %s, want scheduled", a.Status)
	}

	if a.Apply(AppointmentActionApprove) {
		t.Fatal("approve on scheduled should be refused")
	}
	if a.Status != AppointmentStatusScheduled {
		t.Fatalf("refused action must not change the status, got %s", a.Status)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRejected}
	for _, s := range terminal {
		a := &Appointment{Status: s}
		if !a.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}

	for _, s := range []AppointmentStatus{AppointmentStatusPending, AppointmentStatusScheduled} {
		a := &Appointment{Status: s}
		if a.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestIsValidAppointmentStatus(t *testing.T) {
	for _, s := range []string{"pending", "scheduled", "completed", "cancelled", "rejected"} {
		if !IsValidAppointmentStatus(s) {
			t.Errorf("%s should be a valid status", s)
		}
	}
	for _, s := range []string{"", "approved", "PENDING", "done"} {
		if IsValidAppointmentStatus(s) {
			t.Errorf("%s should not be a valid status", s)
		}
	}
}
