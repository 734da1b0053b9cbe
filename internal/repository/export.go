package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// exportColumns is the column set of the downloadable spreadsheet. Raw
// attachment filenames are replaced by yes/no indicator columns.
var exportColumns = []string{
	"id", "industryName", "duration", "title", "principalInvestigator",
	"coPrincipalInvestigator", "academicYear", "amountSanctioned",
	"amountReceived", "billSettlementDetails", "studentDetails", "summary",
	"createdAt", "userId", "hasAgreementDocument", "hasBillSettlementProof",
}

// ExportFiltered renders the projects matching the filters into an xlsx
// workbook and returns its bytes. Filter semantics are the same as List.
func (r *Projects) ExportFiltered(ctx context.Context, filters Filters) ([]byte, error) {
	projects := r.List(ctx, filters)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Projects"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]any, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("export header: %w", err)
	}

	for n, p := range projects {
		row := []any{
			p.ID, p.IndustryName, strconv.Itoa(p.Duration), p.Title,
			p.PrincipalInvestigator, p.CoPrincipalInvestigator, p.AcademicYear,
			p.AmountSanctioned, formatAmount(p.AmountReceived),
			p.BillSettlementDetails, p.StudentDetails, p.Summary,
			formatTime(p.CreatedAt), p.UserID,
			yesNo(p.AgreementDocument != ""), yesNo(p.BillSettlementProof != ""),
		}
		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("export row %d: %w", n, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
