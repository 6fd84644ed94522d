package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/gracemarks/core"
	"github.com/trezcool/gracemarks/core/application"
	"github.com/trezcool/gracemarks/core/rule"
	"github.com/trezcool/gracemarks/storage/database/inmem"
	"github.com/trezcool/gracemarks/storage/seed"
)

func loadSeed(path string) (seed.Seed, error) {
	if path == "" {
		return seed.Default(), nil
	}
	return seed.LoadFile(path)
}

func (cli *commandLine) checkSeed(path string) error {
	s, err := seed.LoadFile(path)
	if err != nil {
		if vErr, ok := errors.Cause(err).(*core.ValidationError); ok {
			for _, fErr := range vErr.Fields {
				fmt.Fprintf(cli.out, "%s: %s\n", fErr.Field, fErr.Error)
			}
		}
		return errors.Wrapf(err, "checking seed %q", path)
	}
	fmt.Fprintf(cli.out, "seed OK: %d rules, %d applications\n", len(s.Rules), len(s.Applications))
	return nil
}

func (cli *commandLine) listRules(path, search, ordering string) error {
	s, err := loadSeed(path)
	if err != nil {
		return errors.Wrap(err, "loading seed")
	}
	db, err := inmemdb.Open(s)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	svc := rule.NewService(inmemdb.NewRuleRepository(db), validator.New())

	rules, err := svc.Query(&rule.QueryFilter{Search: search}, core.ParseOrdering(ordering))
	if err != nil {
		return errors.Wrap(err, "querying rules")
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	if cli.printHeaders() {
		fmt.Fprintln(w, "ID\tNAME\tAPPLIES TO\tDISTRIBUTION\tMARK TYPE\tSUBJECT LIMIT")
	}
	for _, r := range rules {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, appliesTo(r.AppliesTo), r.DistributionType, r.MarkType, subjectLimit(r.SubjectLimit))
	}
	return w.Flush()
}

func (cli *commandLine) listApplications(path string) error {
	s, err := loadSeed(path)
	if err != nil {
		return errors.Wrap(err, "loading seed")
	}
	db, err := inmemdb.Open(s)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	apps, err := inmemdb.NewApplicationRepository(db).QueryApplications()
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}

	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	if cli.printHeaders() {
		fmt.Fprintln(w, "ID\tNAME\tEVENTS\tASSIGNED RULES")
	}
	for _, app := range apps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\n", app.ID, app.Name, eventNames(app), app.AssignedCount(), len(app.Events))
	}
	return w.Flush()
}

func appliesTo(at rule.AppliesTo) string {
	switch {
	case at.Theory && at.Practical:
		return "theory,practical"
	case at.Theory:
		return "theory"
	case at.Practical:
		return "practical"
	}
	return "-"
}

func subjectLimit(sl rule.SubjectLimit) string {
	if !sl.Enabled {
		return "-"
	}
	return fmt.Sprint(sl.Limit)
}

func eventNames(app application.Application) string {
	names := make([]string, 0, len(app.Events))
	for _, evt := range app.Events {
		names = append(names, evt.Name)
	}
	return strings.Join(names, ",")
}
