package grouping

import (
	"time"

	"jobwall/internal"
	"jobwall/internal/util"
)

type Decision int

const (
	AdmitInsert Decision = iota
	AdmitUpdate
	RejectDepublished
	RejectStale
)

// Admit decides whether a normalized candidate enters the store. A
// candidate whose depublication date is on or before today never enters.
// Against stored records sharing INN+title, only a strictly newer account
// date counts as a genuine update; equal or older is a stale duplicate.
// today is passed in to keep the rule testable.
func Admit(candidate internal.JobRecord, existing []internal.JobRecord, today time.Time) (Decision, int64) {
	cutoff := today.Format("2006-01-02")
	if candidate.DepubDate != nil && *candidate.DepubDate <= cutoff {
		return RejectDepublished, 0
	}
	if candidate.CompanyINN == nil || candidate.JobTitle == nil {
		return AdmitInsert, 0
	}
	for _, stored := range existing {
		if util.Deref(stored.CompanyINN) != *candidate.CompanyINN ||
			util.Deref(stored.JobTitle) != *candidate.JobTitle {
			continue
		}
		// ISO dates compare lexicographically.
		if candidate.AccountDate != nil &&
			(stored.AccountDate == nil || *candidate.AccountDate > *stored.AccountDate) {
			return AdmitUpdate, stored.ID
		}
		return RejectStale, stored.ID
	}
	return AdmitInsert, 0
}
