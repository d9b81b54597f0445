package testcase

import "sort"

// priorityRank orders priorities for suite sorting. Unknown priorities never
// occur post-validation, but rank defensively below low.
var priorityRank = map[Priority]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityLow:      3,
}

// guiCategoryRank orders GUI categories for suite sorting. Unknown
// categories sort after the known set.
var guiCategoryRank = map[string]int{
	"authentication": 0,
	"form":           1,
	"navigation":     2,
	"error":          3,
	"accessibility":  4,
}

const guiCategoryDefaultRank = 5

// apiCategoryRank orders API categories for suite sorting.
var apiCategoryRank = map[string]int{
	"authentication": 0,
	"crud":           1,
	"validation":     2,
	"security":       3,
	"performance":    4,
	"error":          5,
}

const apiCategoryDefaultRank = 6

// PriorityRank returns the sort rank of p; unknown values rank last.
func PriorityRank(p Priority) int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return len(priorityRank)
}

func rankGUICategory(c string) int {
	if r, ok := guiCategoryRank[c]; ok {
		return r
	}
	return guiCategoryDefaultRank
}

func rankAPICategory(c string) int {
	if r, ok := apiCategoryRank[c]; ok {
		return r
	}
	return apiCategoryDefaultRank
}

// Prioritize sorts a GUI collection in place by (priority, category). The
// sort is stable: ties keep their input order so suite ordering is
// reproducible across runs and diffs cleanly in CI.
func Prioritize(cases []TestCase) {
	sort.SliceStable(cases, func(i, j int) bool {
		pi, pj := PriorityRank(cases[i].Priority), PriorityRank(cases[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return rankGUICategory(cases[i].Category) < rankGUICategory(cases[j].Category)
	})
}

// PrioritizeAPI sorts an API collection in place by (priority, category),
// stable on ties.
func PrioritizeAPI(cases []APITestCase) {
	sort.SliceStable(cases, func(i, j int) bool {
		pi, pj := PriorityRank(cases[i].Priority), PriorityRank(cases[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return rankAPICategory(cases[i].Category) < rankAPICategory(cases[j].Category)
	})
}
