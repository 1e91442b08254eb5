package compose

import (
	"fmt"
	"strconv"
	"strings"

	"jobwall/internal"
	"jobwall/internal/util"
)

type Options struct {
	HideCompanyName bool
	HideAddress     bool
	HideEmail       bool
	IncludeDetails  bool
	MinSalary       int
	HashtagFooter   string
}

const (
	separator      = "________________________"
	defaultFooter  = "#работа #вакансии"
	negotiablePay  = "по договорённости"
	untitledVacant = "Вакансия"
)

// Compose renders a grouped cluster into a single publish payload. Output
// is byte-identical for identical inputs and options.
func Compose(group internal.JobGroup, opts Options) string {
	numbered := len(group.Jobs) > 1
	blocks := make([]string, 0, len(group.Jobs))
	for i, job := range group.Jobs {
		blocks = append(blocks, renderJob(job, i+1, numbered, opts))
	}

	footer := opts.HashtagFooter
	if footer == "" {
		footer = defaultFooter
	}
	return strings.Join(blocks, "\n"+separator+"\n") + "\n\n" + footer
}

func renderJob(job internal.JobRecord, no int, numbered bool, opts Options) string {
	var b strings.Builder

	title := util.Deref(job.JobTitle)
	if title == "" {
		title = untitledVacant
	}
	if numbered {
		b.WriteString(fmt.Sprintf("%d. %s\n", no, title))
	} else {
		b.WriteString(title + "\n")
	}

	line := func(label, value string) {
		if value != "" {
			b.WriteString(label + ": " + value + "\n")
		}
	}

	if !opts.HideCompanyName {
		line("Организация", util.Deref(job.CompanyName))
	}
	line("Зарплата", renderSalary(util.Deref(job.Salary), opts.MinSalary))
	line("График", util.Deref(job.Schedule))
	if !opts.HideAddress {
		line("Адрес", util.Deref(job.Address))
	}
	line("Телефон", util.Deref(job.Phone))
	if !opts.HideEmail {
		line("Email", util.Deref(job.Email))
	}
	line("Контактное лицо", util.Deref(job.ContactPerson))
	if opts.IncludeDetails {
		line("Условия", util.Deref(job.Conditions))
		line("Обязанности", util.Deref(job.Responsibilities))
		line("Требования", util.Deref(job.Requirements))
	}
	line("Дополнительно", util.Deref(job.ExtraInfo))

	return strings.TrimRight(b.String(), "\n")
}

// A numeric salary below the threshold is replaced with the negotiable
// placeholder; non-numeric salary text passes through verbatim.
func renderSalary(raw string, minSalary int) string {
	if raw == "" {
		return ""
	}
	compact := strings.ReplaceAll(raw, " ", "")
	if n, err := strconv.Atoi(compact); err == nil && n < minSalary {
		return negotiablePay
	}
	return raw
}
