package domain

import (
	"testing"
	"time"
)

func TestIsInstitutionalEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@college.edu", true},
		{"faculty@iit.ac.in", true},
		{"a@gmail.com", false},
		{"a@college.education", false},
		{"@college.edu", false},
		{"a@", false},
		{"", false},
		{"plainaddress.edu", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsInstitutionalEmail(tt.email); got != tt.want {
				t.Fatalf("IsInstitutionalEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidAcademicYear(t *testing.T) {
	for _, y := range AcademicYears {
		if !ValidAcademicYear(y) {
			t.Errorf("ValidAcademicYear(%q) = false, want true", y)
		}
	}
	for _, y := range []string{"", "2022-2023", "2024", "2024-2026"} {
		if ValidAcademicYear(y) {
			t.Errorf("ValidAcademicYear(%q) = true, want false", y)
		}
	}
}

func TestProjectAttachment(t *testing.T) {
	p := Project{AgreementDocument: "agreement.pdf"}

	if got := p.Attachment(AttachmentAgreement); got != "agreement.pdf" {
		t.Errorf("agreement attachment = %q", got)
	}
	if got := p.Attachment(AttachmentBillSettlement); got != "" {
		t.Errorf("bill settlement attachment = %q, want empty", got)
	}
	if got := p.Attachment("bogus"); got != "" {
		t.Errorf("bogus attachment = %q, want empty", got)
	}
}

func TestCompletionDate(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p := Project{CreatedAt: created, Duration: 2}

	want := created.Add(60 * 24 * time.Hour)
	if got := p.CompletionDate(); !got.Equal(want) {
		t.Fatalf("CompletionDate() = %v, want %v", got, want)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("title", "academicYear")
	want := "missing required fields: title, academicYear"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
