// Package ranks resolves free-text rank labels against the rank master and
// keeps rank definitions consistent on write.
package ranks

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/dmitrijs2005/pmdadmin/internal/common"
	"github.com/dmitrijs2005/pmdadmin/internal/server/models"
)

// FindRank returns the first rank whose equivalent code, one of whose
// aliases, or whose id equals label.
func FindRank(ranks []models.RankDefinition, label string) (models.RankDefinition, bool) {
	for _, r := range ranks {
		if r.EquivalentCode == label || slices.Contains(r.Aliases, label) || r.ID == label {
			return r, true
		}
	}
	return models.RankDefinition{}, false
}

// RequiresSecondaryID reports whether label resolves to a rank that needs
// a metal number. Unknown labels and ministerial ranks never require one.
func RequiresSecondaryID(ranks []models.RankDefinition, label string) bool {
	r, ok := FindRank(ranks, label)
	return ok && r.RequiresSecondaryID && r.StaffCategory != models.StaffMinisterial
}

// Sanitize applies the write-time rules: ministerial ranks carry no
// equivalent code and never require a metal number.
func Sanitize(r models.RankDefinition) models.RankDefinition {
	r.ID = strings.TrimSpace(r.ID)
	r.Label = strings.TrimSpace(r.Label)
	r.EquivalentCode = strings.TrimSpace(r.EquivalentCode)
	if r.StaffCategory == "" {
		r.StaffCategory = models.StaffPolice
	}
	r.StaffCategory = models.StaffCategory(strings.ToUpper(string(r.StaffCategory)))

	aliases := make([]string, 0, len(r.Aliases))
	for _, a := range r.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	r.Aliases = aliases

	if r.StaffCategory == models.StaffMinisterial {
		r.EquivalentCode = ""
		r.RequiresSecondaryID = false
	}
	return r
}

// Validate checks a sanitized rank.
func Validate(r models.RankDefinition) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: rank id is required", common.ErrorValidation)
	case r.Label == "":
		return fmt.Errorf("%w: rank label is required", common.ErrorValidation)
	case r.StaffCategory != models.StaffPolice && r.StaffCategory != models.StaffMinisterial:
		return fmt.Errorf("%w: unknown staff type %q", common.ErrorValidation, r.StaffCategory)
	case r.StaffCategory == models.StaffPolice && r.EquivalentCode == "":
		return fmt.Errorf("%w: equivalent rank is required for police staff", common.ErrorValidation)
	}
	return nil
}

// ActiveSorted returns the active ranks by seniority, then label. When no
// rank is active every rank is returned, so a freshly imported master
// without flags still lists.
func ActiveSorted(ranks []models.RankDefinition) []models.RankDefinition {
	out := make([]models.RankDefinition, 0, len(ranks))
	for _, r := range ranks {
		if r.Active {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		out = append(out, ranks...)
	}
	SortBySeniority(out)
	return out
}

func SortBySeniority(ranks []models.RankDefinition) {
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].SeniorityOrder != ranks[j].SeniorityOrder {
			return ranks[i].SeniorityOrder < ranks[j].SeniorityOrder
		}
		return ranks[i].Label < ranks[j].Label
	})
}

// CheckSecondaryID rejects a blank metal number for ranks that need one.
func CheckSecondaryID(ranks []models.RankDefinition, rank, metalNumber string) error {
	if RequiresSecondaryID(ranks, rank) && strings.TrimSpace(metalNumber) == "" {
		return fmt.Errorf("%w: metal number is required for rank %s", common.ErrorValidation, rank)
	}
	return nil
}
