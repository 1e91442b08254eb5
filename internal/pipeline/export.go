package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"jobwall/internal"
	"jobwall/internal/util"
)

func ExportJobsToXLSX(jobs []internal.JobRecord, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"id", "job_title", "publication_date", "depub_date",
		"account_number", "account_date", "company_inn", "company_name",
		"phone", "email", "address", "schedule", "salary",
		"contact_person", "status", "wall_link",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, job := range jobs {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		set(1, job.ID)
		set(2, util.Deref(job.JobTitle))
		set(3, util.Deref(job.PublicationDate))
		set(4, util.Deref(job.DepubDate))
		set(5, util.Deref(job.AccountNumber))
		set(6, util.Deref(job.AccountDate))
		set(7, util.Deref(job.CompanyINN))
		set(8, util.Deref(job.CompanyName))
		set(9, util.Deref(job.Phone))
		set(10, util.Deref(job.Email))
		set(11, util.Deref(job.Address))
		set(12, util.Deref(job.Schedule))
		set(13, util.Deref(job.Salary))
		set(14, util.Deref(job.ContactPerson))
		set(15, string(job.Status))
		set(16, util.Deref(job.WallLink))
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
