package feed

import (
	"jobwall/internal"
	"jobwall/internal/util"
)

// Options control schema-variant handling during normalization.
type Options struct {
	StrictPhones bool
	HomeAreaCode string
}

// Normalize drives the row set through the field extractors and the
// sanitizer. Rows lacking both an account number and a job title are
// dropped and counted as issues. Output preserves input order; the
// transform is pure.
func Normalize(rows []RawRow, opts Options) ([]internal.JobRecord, []internal.RowIssue) {
	out := make([]internal.JobRecord, 0, len(rows))
	issues := make([]internal.RowIssue, 0)
	for i, row := range rows {
		if len(row) == 0 {
			issues = append(issues, internal.RowIssue{Index: i, Reason: "row carries no tags"})
			continue
		}
		job, ok := normalizeRow(row, opts)
		if !ok {
			issues = append(issues, internal.RowIssue{Index: i, Reason: "missing both account number and job title"})
			continue
		}
		out = append(out, job)
	}
	return out, issues
}

func normalizeRow(row RawRow, opts Options) (internal.JobRecord, bool) {
	// New-schema tag wins over its legacy equivalent.
	title := scalarField(row, "DOLZHNOST")
	if title == nil {
		title = scalarField(row, "VAKANSIYA")
	}
	account := scalarField(row, "NOMERSCHETA")
	if title == nil && account == nil {
		return internal.JobRecord{}, false
	}

	job := internal.JobRecord{
		JobTitle:      title,
		AccountNumber: account,
		Status:        internal.StatusNew,
	}
	job.PublicationDate = ParseEpochDate(row["DATAPUBLIKACII"].ScalarText())
	job.DepubDate = ParseEpochDate(row["DATASNYATIYA"].ScalarText())
	job.AccountDate = ParseAccountDate(row["DATASCHETA"].ScalarText())
	job.CompanyINN = scalarField(row, "INN")
	job.CompanyName = scalarField(row, "ORGANIZACIYA")
	job.Phone = ExtractPhone(row["TELEFON"], opts.StrictPhones, opts.HomeAreaCode)
	job.Email = scalarField(row, "EMAIL")
	job.Address = ExtractAddress(row)
	job.Conditions = sanitizeField(row, "USLOVIYA")
	job.Responsibilities = sanitizeField(row, "OBYAZANNOSTI")
	job.Requirements = sanitizeField(row, "TREBOVANIYA")
	job.Schedule = ExtractSchedule(row["GRAFIKRABOTI"], row["REZHIMRABOTI"])
	job.Salary = scalarField(row, "ZARPLATA")
	job.ContactPerson = scalarField(row, "KONTAKT")
	job.ExtraInfo = sanitizeField(row, "DOPOLNITELNO")
	return job, true
}

func scalarField(row RawRow, tag string) *string {
	return util.PtrOrNil(util.CollapseSpaces(row[tag].ScalarText()))
}

func sanitizeField(row RawRow, tag string) *string {
	text := row[tag].ScalarText()
	if text == "" {
		return nil
	}
	return Sanitize(&text)
}
