package domain

import "time"

// AttachmentKind selects one of a project's stored documents.
type AttachmentKind string

const (
	AttachmentAgreement      AttachmentKind = "agreement"
	AttachmentBillSettlement AttachmentKind = "billSettlement"
)

// AcademicYears is the enumerated set accepted on project entry.
var AcademicYears = []string{"2023-2024", "2024-2025", "2025-2026", "2026-2027"}

// ValidAcademicYear reports whether year is one of the accepted entries.
func ValidAcademicYear(year string) bool {
	for _, y := range AcademicYears {
		if y == year {
			return true
		}
	}
	return false
}

// Project is one consultancy project record. The collection is append-only:
// records are created once and never updated or deleted.
type Project struct {
	ID                      string    `json:"id"`
	UserID                  string    `json:"userId"`
	IndustryName            string    `json:"industryName"`
	Title                   string    `json:"title"`
	PrincipalInvestigator   string    `json:"principalInvestigator"`
	CoPrincipalInvestigator string    `json:"coPrincipalInvestigator,omitempty"`
	AcademicYear            string    `json:"academicYear"`
	Duration                int       `json:"duration"` // months
	AmountSanctioned        float64   `json:"amountSanctioned"`
	AmountReceived          float64   `json:"amountReceived,omitempty"`
	BillSettlementDetails   string    `json:"billSettlementDetails,omitempty"`
	StudentDetails          string    `json:"studentDetails,omitempty"`
	Summary                 string    `json:"summary,omitempty"`
	AgreementDocument       string    `json:"agreementDocument"`
	BillSettlementProof     string    `json:"billSettlementProof,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
}

// Attachment returns the stored filename for the given kind, or "" when the
// project has none recorded.
func (p *Project) Attachment(kind AttachmentKind) string {
	switch kind {
	case AttachmentAgreement:
		return p.AgreementDocument
	case AttachmentBillSettlement:
		return p.BillSettlementProof
	}
	return ""
}

// CompletionDate projects the expected end of the engagement: creation time
// plus duration months counted as 30-day blocks, matching the notification
// sweep arithmetic.
func (p *Project) CompletionDate() time.Time {
	return p.CreatedAt.Add(time.Duration(p.Duration) * 30 * 24 * time.Hour)
}

// Notification is one entry of a user's pull-style notification feed.
type Notification struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
