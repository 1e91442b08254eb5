package compose

import (
	"strings"
	"testing"

	"jobwall/internal"
	"jobwall/internal/util"
)

func sampleJob() internal.JobRecord {
	return internal.JobRecord{
		JobTitle:    util.StringPtr("Водитель"),
		CompanyName: util.StringPtr("ООО Ромашка"),
		Salary:      util.StringPtr("45000"),
		Schedule:    util.StringPtr("смена: первая"),
		Address:     util.StringPtr("Пермь, Ленина, 10"),
		Phone:       util.StringPtr("89123456789"),
		Email:       util.StringPtr("hr@example.com"),
	}
}

func TestComposeSingleJob(t *testing.T) {
	group := internal.JobGroup{Key: "Водитель", Jobs: []internal.JobRecord{sampleJob()}}
	got := Compose(group, Options{MinSalary: 20000})

	want := strings.Join([]string{
		"Водитель",
		"Организация: ООО Ромашка",
		"Зарплата: 45000",
		"График: смена: первая",
		"Адрес: Пермь, Ленина, 10",
		"Телефон: 89123456789",
		"Email: hr@example.com",
		"",
		"#работа #вакансии",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposeNumbersMultipleJobs(t *testing.T) {
	second := sampleJob()
	second.JobTitle = util.StringPtr("Водитель-экспедитор")
	group := internal.JobGroup{Jobs: []internal.JobRecord{sampleJob(), second}}
	got := Compose(group, Options{})

	if !strings.Contains(got, "1. Водитель\n") {
		t.Fatalf("missing first number:\n%s", got)
	}
	if !strings.Contains(got, "2. Водитель-экспедитор\n") {
		t.Fatalf("missing second number:\n%s", got)
	}
	if !strings.Contains(got, "\n________________________\n") {
		t.Fatalf("missing separator:\n%s", got)
	}
}

func TestComposeSalaryThreshold(t *testing.T) {
	low := sampleJob()
	low.Salary = util.StringPtr("15 000")
	group := internal.JobGroup{Jobs: []internal.JobRecord{low}}
	got := Compose(group, Options{MinSalary: 20000})
	if !strings.Contains(got, "Зарплата: по договорённости") {
		t.Fatalf("low salary must turn negotiable:\n%s", got)
	}

	verbal := sampleJob()
	verbal.Salary = util.StringPtr("от 30 тыс.")
	got = Compose(internal.JobGroup{Jobs: []internal.JobRecord{verbal}}, Options{MinSalary: 20000})
	if !strings.Contains(got, "Зарплата: от 30 тыс.") {
		t.Fatalf("verbal salary must pass through:\n%s", got)
	}
}

func TestComposeHideFlags(t *testing.T) {
	group := internal.JobGroup{Jobs: []internal.JobRecord{sampleJob()}}
	got := Compose(group, Options{HideCompanyName: true, HideAddress: true, HideEmail: true})
	for _, label := range []string{"Организация", "Адрес", "Email"} {
		if strings.Contains(got, label) {
			t.Fatalf("label %q must be hidden:\n%s", label, got)
		}
	}
}

func TestComposeDetailsFlag(t *testing.T) {
	j := sampleJob()
	j.Conditions = util.StringPtr("Полный день")
	j.Requirements = util.StringPtr("Опыт от года")
	group := internal.JobGroup{Jobs: []internal.JobRecord{j}}

	if got := Compose(group, Options{}); strings.Contains(got, "Условия") {
		t.Fatalf("details must stay off by default:\n%s", got)
	}
	got := Compose(group, Options{IncludeDetails: true})
	if !strings.Contains(got, "Условия: Полный день") || !strings.Contains(got, "Требования: Опыт от года") {
		t.Fatalf("details missing:\n%s", got)
	}
}

func TestComposeUntitledAndFooter(t *testing.T) {
	group := internal.JobGroup{Jobs: []internal.JobRecord{{}}}
	got := Compose(group, Options{HashtagFooter: "#пермь"})
	if !strings.HasPrefix(got, "Вакансия") {
		t.Fatalf("placeholder title missing:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n\n#пермь") {
		t.Fatalf("custom footer missing:\n%s", got)
	}
}

func TestComposeDeterministic(t *testing.T) {
	group := internal.JobGroup{Jobs: []internal.JobRecord{sampleJob(), sampleJob()}}
	opts := Options{IncludeDetails: true, MinSalary: 20000}
	if Compose(group, opts) != Compose(group, opts) {
		t.Fatal("repeat renders must be byte-identical")
	}
}
