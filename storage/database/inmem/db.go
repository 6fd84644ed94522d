package inmemdb

import (
	"sync"

	"github.com/trezcool/gracemarks/core/application"
	"github.com/trezcool/gracemarks/core/rule"
	"github.com/trezcool/gracemarks/storage/seed"
)

type (
	DB struct {
		rule        *ruleTable
		application *applicationTable
	}

	// ruleTable keeps rules in creation order; index maps ids to positions in table.
	ruleTable struct {
		sync.RWMutex
		table []rule.Rule
		index map[string]int
	}

	applicationTable struct {
		sync.RWMutex
		table []application.Application
		index map[string]int
	}
)

// Open returns a DB holding a copy of the seed's rules & applications, in seed order.
func Open(s seed.Seed) (*DB, error) {
	rules, apps := s.Rules, s.Applications
	db := &DB{
		rule:        &ruleTable{table: make([]rule.Rule, 0, len(rules)), index: make(map[string]int, len(rules))},
		application: &applicationTable{table: make([]application.Application, 0, len(apps)), index: make(map[string]int, len(apps))},
	}
	for _, r := range rules {
		if _, ok := db.rule.index[r.ID]; ok {
			return nil, rule.ErrIDExists
		}
		db.rule.index[r.ID] = len(db.rule.table)
		db.rule.table = append(db.rule.table, r)
	}
	for _, app := range apps {
		if _, ok := db.application.index[app.ID]; ok {
			return nil, ErrDuplicateApplication
		}
		db.application.index[app.ID] = len(db.application.table)
		db.application.table = append(db.application.table, app.Clone())
	}
	return db, nil
}
