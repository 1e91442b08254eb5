package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"jobwall/internal"
	"jobwall/internal/util"
)

func TestExportJobsToXLSX(t *testing.T) {
	jobs := []internal.JobRecord{
		{
			ID:       1,
			JobTitle: util.StringPtr("Водитель"),
			Salary:   util.StringPtr("45000"),
			Status:   internal.StatusPosted,
			WallLink: util.StringPtr("https://vk.com/wall-1_42"),
		},
		{
			ID:       2,
			JobTitle: util.StringPtr("Повар"),
			Status:   internal.StatusNew,
		},
	}

	out := filepath.Join(t.TempDir(), "export", "jobs.xlsx")
	if err := ExportJobsToXLSX(jobs, out); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)

	if v, _ := f.GetCellValue(sheet, "A1"); v != "id" {
		t.Fatalf("header A1=%q", v)
	}
	if v, _ := f.GetCellValue(sheet, "B2"); v != "Водитель" {
		t.Fatalf("B2=%q", v)
	}
	if v, _ := f.GetCellValue(sheet, "P2"); v != "https://vk.com/wall-1_42" {
		t.Fatalf("P2=%q", v)
	}
	if v, _ := f.GetCellValue(sheet, "O3"); v != "new" {
		t.Fatalf("O3=%q", v)
	}
}
