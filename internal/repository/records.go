// Package repository implements the data-access layer over the record store:
// user registration/lookup and project CRUD, filtering and aggregation.
// Repositories never touch the collection files directly; every operation is
// load -> modify in memory -> save through the store.
package repository

import (
	"strconv"
	"time"

	"github.com/anbuchelva/cams/internal/domain"
	"github.com/anbuchelva/cams/internal/store"
)

const (
	CollectionUsers    = "users"
	CollectionProjects = "projects"
)

// Schemas fixes the column set of each collection. Column order matches the
// persisted workbooks.
var Schemas = map[string][]string{
	CollectionUsers: {
		"id", "name", "email", "password", "department", "createdAt",
	},
	CollectionProjects: {
		"id", "industryName", "duration", "title", "principalInvestigator",
		"coPrincipalInvestigator", "academicYear", "amountSanctioned",
		"amountReceived", "billSettlementDetails", "studentDetails", "summary",
		"agreementDocument", "billSettlementProof", "createdAt", "userId",
	},
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatAmount(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func userToRecord(u *domain.User) store.Record {
	return store.Record{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"password":   u.PasswordHash,
		"department": u.Department,
		"createdAt":  formatTime(u.CreatedAt),
	}
}

func userFromRecord(rec store.Record) domain.User {
	return domain.User{
		ID:           rec["id"],
		Name:         rec["name"],
		Email:        rec["email"],
		PasswordHash: rec["password"],
		Department:   rec["department"],
		CreatedAt:    parseTime(rec["createdAt"]),
	}
}

func projectToRecord(p *domain.Project) store.Record {
	return store.Record{
		"id":                      p.ID,
		"industryName":            p.IndustryName,
		"duration":                strconv.Itoa(p.Duration),
		"title":                   p.Title,
		"principalInvestigator":   p.PrincipalInvestigator,
		"coPrincipalInvestigator": p.CoPrincipalInvestigator,
		"academicYear":            p.AcademicYear,
		"amountSanctioned":        strconv.FormatFloat(p.AmountSanctioned, 'f', -1, 64),
		"amountReceived":          formatAmount(p.AmountReceived),
		"billSettlementDetails":   p.BillSettlementDetails,
		"studentDetails":          p.StudentDetails,
		"summary":                 p.Summary,
		"agreementDocument":       p.AgreementDocument,
		"billSettlementProof":     p.BillSettlementProof,
		"createdAt":               formatTime(p.CreatedAt),
		"userId":                  p.UserID,
	}
}

func projectFromRecord(rec store.Record) domain.Project {
	duration, _ := strconv.Atoi(rec["duration"])
	sanctioned, _ := strconv.ParseFloat(rec["amountSanctioned"], 64)
	received, _ := strconv.ParseFloat(rec["amountReceived"], 64)
	return domain.Project{
		ID:                      rec["id"],
		IndustryName:            rec["industryName"],
		Duration:                duration,
		Title:                   rec["title"],
		PrincipalInvestigator:   rec["principalInvestigator"],
		CoPrincipalInvestigator: rec["coPrincipalInvestigator"],
		AcademicYear:            rec["academicYear"],
		AmountSanctioned:        sanctioned,
		AmountReceived:          received,
		BillSettlementDetails:   rec["billSettlementDetails"],
		StudentDetails:          rec["studentDetails"],
		Summary:                 rec["summary"],
		AgreementDocument:       rec["agreementDocument"],
		BillSettlementProof:     rec["billSettlementProof"],
		CreatedAt:               parseTime(rec["createdAt"]),
		UserID:                  rec["userId"],
	}
}
