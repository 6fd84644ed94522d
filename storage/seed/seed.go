// Package seed provides the datasets the in-memory database starts from.
package seed

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/gracemarks/core"
	"github.com/trezcool/gracemarks/core/application"
	"github.com/trezcool/gracemarks/core/rule"
)

var ErrInvalidSeed = errors.New("invalid seed")

type Seed struct {
	Rules        []rule.Rule               `json:"rules"`
	Applications []application.Application `json:"applications"`
}

// LoadFile reads and validates a JSON seed.
func LoadFile(path string) (Seed, error) {
	var s Seed
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return s, errors.Wrap(err, "reading seed file")
	}
	if err = json.Unmarshal(data, &s); err != nil {
		return s, errors.Wrap(err, "decoding seed file")
	}
	if err = s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// Validate reports every inconsistency of the seed at once, as a *core.ValidationError.
func (s Seed) Validate() error {
	var flds []core.FieldError
	addErr := func(field, format string, args ...interface{}) {
		flds = append(flds, core.FieldError{Field: field, Error: fmt.Sprintf(format, args...)})
	}

	ruleIDs := make(map[string]bool, len(s.Rules))
	for i, r := range s.Rules {
		field := fmt.Sprintf("rules[%d]", i)
		switch {
		case r.ID == "":
			addErr(field+".id", "this field is required")
		case ruleIDs[r.ID]:
			addErr(field+".id", "duplicate rule id %q", r.ID)
		}
		ruleIDs[r.ID] = true
		if core.CleanString(r.Name) == "" {
			addErr(field+".name", "this field is required")
		}
		if r.DistributionType != rule.DistributionPercentage && r.DistributionType != rule.DistributionMark {
			addErr(field+".distribution_type", "unknown distribution type %q", r.DistributionType)
		}
		if r.MarkType != rule.MarkTypeMax && r.MarkType != rule.MarkTypeObtained {
			addErr(field+".mark_type", "unknown mark type %q", r.MarkType)
		}
	}

	appIDs := make(map[string]bool, len(s.Applications))
	eventIDs := make(map[string]bool)
	for i, app := range s.Applications {
		field := fmt.Sprintf("applications[%d]", i)
		switch {
		case app.ID == "":
			addErr(field+".id", "this field is required")
		case appIDs[app.ID]:
			addErr(field+".id", "duplicate application id %q", app.ID)
		}
		appIDs[app.ID] = true

		for j, evt := range app.Events {
			if eventIDs[evt.ID] {
				addErr(fmt.Sprintf("%s.events[%d].id", field, j), "duplicate event id %q", evt.ID)
			}
			eventIDs[evt.ID] = true
		}

		assigned := make(map[string]bool, len(app.Assignments))
		for j, a := range app.Assignments {
			afield := fmt.Sprintf("%s.assignments[%d]", field, j)
			if _, ok := app.EventByID(a.EventID); !ok {
				addErr(afield+".event_id", "unknown event %q", a.EventID)
			} else if assigned[a.EventID] {
				addErr(afield+".event_id", "event %q is assigned more than once", a.EventID)
			}
			assigned[a.EventID] = true

			if a.RuleID.Valid && !ruleIDs[a.RuleID.String] {
				addErr(afield+".rule_id", "unknown rule %q", a.RuleID.String)
			}
			if a.FromDate.Valid && !isDate(a.FromDate.String) {
				addErr(afield+".from_date", "from_date must be a valid date formatted as YYYY-MM-DD")
			}
			if a.ToDate.Valid && !isDate(a.ToDate.String) {
				addErr(afield+".to_date", "to_date must be a valid date formatted as YYYY-MM-DD")
			}
		}
		for _, evt := range app.Events {
			if !assigned[evt.ID] {
				addErr(field+".assignments", "event %q has no assignment", evt.ID)
			}
		}
	}

	if len(flds) > 0 {
		return core.NewValidationError(ErrInvalidSeed, flds...)
	}
	return nil
}

func isDate(s string) bool {
	_, err := time.Parse(core.DateLayout, s)
	return err == nil
}
