package inmemdb

import (
	"sort"
	"strings"

	"github.com/trezcool/gracemarks/core"
	"github.com/trezcool/gracemarks/core/rule"
)

// RuleOrderingFields are the Rule fields listings can be ordered by.
var RuleOrderingFields = map[string]func(a, b rule.Rule) int{
	"id":                func(a, b rule.Rule) int { return strings.Compare(a.ID, b.ID) },
	"name":              func(a, b rule.Rule) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"distribution_type": func(a, b rule.Rule) int { return strings.Compare(a.DistributionType, b.DistributionType) },
	"mark_type":         func(a, b rule.Rule) int { return strings.Compare(a.MarkType, b.MarkType) },
}

type ruleRepository struct {
	db *ruleTable
}

var _ rule.Repository = (*ruleRepository)(nil)

func NewRuleRepository(db *DB) rule.Repository {
	return &ruleRepository{db: db.rule}
}

func (repo *ruleRepository) CreateRule(r rule.Rule) (rule.Rule, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.index[r.ID]; ok {
		return rule.Rule{}, rule.ErrIDExists
	}
	repo.db.index[r.ID] = len(repo.db.table)
	repo.db.table = append(repo.db.table, r)
	return r, nil
}

func (repo *ruleRepository) QueryRules(filter rule.QueryFilter, ordering []core.Ordering) ([]rule.Rule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search := strings.ToLower(filter.Search)
	rules := make([]rule.Rule, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Name), search) &&
			!strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		if filter.DistributionType != "" && r.DistributionType != filter.DistributionType {
			continue
		}
		if filter.MarkType != "" && r.MarkType != filter.MarkType {
			continue
		}
		rules = append(rules, r)
	}

	if len(ordering) > 0 {
		sort.SliceStable(rules, func(i, j int) bool {
			for _, ord := range ordering {
				cmp, ok := RuleOrderingFields[ord.Field]
				if !ok {
					continue
				}
				if c := cmp(rules[i], rules[j]); c != 0 {
					return (c < 0) == ord.Ascending
				}
			}
			return false
		})
	}
	return rules, nil
}

func (repo *ruleRepository) GetRuleByID(id string) (rule.Rule, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if idx, ok := repo.db.index[id]; ok {
		return repo.db.table[idx], nil
	}
	return rule.Rule{}, rule.ErrNotFound
}
