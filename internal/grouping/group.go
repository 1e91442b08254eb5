package grouping

import (
	"strings"

	"jobwall/internal"
	"jobwall/internal/util"
)

// Jobs without an account number share one fallback bucket.
const fallbackBucket = "_no_account"

// ClusterByTitle walks jobs in order and joins the first cluster whose
// anchor title scores at or above the threshold; otherwise a new singleton
// cluster starts. First-match wins, no global optimum search: the
// first-seen title anchors each cluster, so results are order-dependent by
// construction.
func ClusterByTitle(jobs []internal.JobRecord, threshold float64) []internal.JobGroup {
	groups := make([]internal.JobGroup, 0)
	for _, job := range jobs {
		title := strings.ToLower(util.Deref(job.JobTitle))
		placed := false
		for i := range groups {
			anchor := strings.ToLower(util.Deref(groups[i].Jobs[0].JobTitle))
			if util.DiceCoefficient(title, anchor) >= threshold {
				groups[i].Jobs = append(groups[i].Jobs, job)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, internal.JobGroup{
				Key:  util.Deref(job.JobTitle),
				Jobs: []internal.JobRecord{job},
			})
		}
	}
	return groups
}

// GroupByAccount partitions jobs by exact account-number equality,
// preserving first-seen order of bucket creation.
func GroupByAccount(jobs []internal.JobRecord) []internal.JobGroup {
	byKey := map[string]int{}
	groups := make([]internal.JobGroup, 0)
	for _, job := range jobs {
		key := fallbackBucket
		if job.AccountNumber != nil {
			key = *job.AccountNumber
		}
		idx, ok := byKey[key]
		if !ok {
			idx = len(groups)
			byKey[key] = idx
			groups = append(groups, internal.JobGroup{Key: key})
		}
		groups[idx].Jobs = append(groups[idx].Jobs, job)
	}
	return groups
}
