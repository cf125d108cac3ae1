package entity

import "testing"

func TestDoctorApplicationLifecycle(t *testing.T) {
	a := &DoctorApplication{Status: ApplicationStatusPending}
	if !a.IsPending() {
		t.Fatal("new application should be pending")
	}

	a.Approve()
	if a.Status != ApplicationStatusApproved {
		t.Fatalf("status = %s, want approved", a.Status)
	}
	if a.IsPending() {
		t.Fatal("approved application must not be pending")
	}

	b := &DoctorApplication{Status: ApplicationStatusPending}
	b.Reject()
	if b.Status != ApplicationStatusRejected {
		t.Fatalf("status = %s, want rejected", b.Status)
	}
	if b.IsPending() {
		t.Fatal("rejected application must not be pending")
	}
}

func TestDoctorProfileIsApproved(t *testing.T) {
	for status, want := range map[ApplicationStatus]bool{
		ApplicationStatusPending:  false,
		ApplicationStatusApproved: true,
		ApplicationStatusRejected: false,
	} {
		p := &DoctorProfile{ApplicationStatus: status}
		if p.IsApproved() != want {
			t.Errorf("IsApproved() with %s = %v, want %v", status, !want, want)
		}
	}
}
