package seed

import (
	"github.com/trezcool/gracemarks/core/application"
	"github.com/trezcool/gracemarks/core/rule"
)

// Default returns the example dataset: four rules & three applications with nothing assigned.
func Default() Seed {
	return Seed{
		Rules: []rule.Rule{
			{
				ID:               "1",
				Name:             "NCC Rule",
				Description:      "Grace marks for NCC cadets who have participated in camps",
				AppliesTo:        rule.AppliesTo{Theory: true, Practical: false},
				DistributionType: rule.DistributionPercentage,
				MarkType:         rule.MarkTypeMax,
				MarksAwarded: rule.MarksAwarded{
					PassPaper:          rule.PaperPolicy{Enabled: true, MaxMark: 100, ShouldNotExceed: 50},
					SupplementaryPaper: rule.PaperPolicy{Enabled: true, MaxMark: 75, ShouldNotExceed: 40},
				},
				SubjectLimit: rule.SubjectLimit{Enabled: true, Limit: 3},
			},
			{
				ID:               "2",
				Name:             "NSS Rule",
				Description:      "Grace marks for NSS volunteers who have participated in special camps",
				AppliesTo:        rule.AppliesTo{Theory: true, Practical: true},
				DistributionType: rule.DistributionMark,
				MarkType:         rule.MarkTypeObtained,
				MarksAwarded: rule.MarksAwarded{
					PassPaper:          rule.PaperPolicy{Enabled: true, MaxMark: 100, ShouldNotExceed: 20},
					SupplementaryPaper: rule.PaperPolicy{Enabled: false, MaxMark: 0, ShouldNotExceed: 0},
				},
				SubjectLimit: rule.SubjectLimit{Enabled: false, Limit: 0},
			},
			{
				ID:               "3",
				Name:             "Sports Rule",
				Description:      "Grace marks for sports achievements at university level",
				AppliesTo:        rule.AppliesTo{Theory: true, Practical: true},
				DistributionType: rule.DistributionPercentage,
				MarkType:         rule.MarkTypeMax,
				MarksAwarded: rule.MarksAwarded{
					PassPaper:          rule.PaperPolicy{Enabled: true, MaxMark: 100, ShouldNotExceed: 25},
					SupplementaryPaper: rule.PaperPolicy{Enabled: true, MaxMark: 75, ShouldNotExceed: 20},
				},
				SubjectLimit: rule.SubjectLimit{Enabled: true, Limit: 2},
			},
			{
				ID:               "4",
				Name:             "Arts Rule",
				Description:      "Grace marks for arts festival participation",
				AppliesTo:        rule.AppliesTo{Theory: false, Practical: true},
				DistributionType: rule.DistributionMark,
				MarkType:         rule.MarkTypeObtained,
				MarksAwarded: rule.MarksAwarded{
					PassPaper:          rule.PaperPolicy{Enabled: true, MaxMark: 100, ShouldNotExceed: 15},
					SupplementaryPaper: rule.PaperPolicy{Enabled: true, MaxMark: 75, ShouldNotExceed: 10},
				},
				SubjectLimit: rule.SubjectLimit{Enabled: false, Limit: 0},
			},
		},
		Applications: []application.Application{
			newApplication("APP001", "Engineering Degree Examination 2023",
				application.Event{ID: "event1", Name: "NCC"},
				application.Event{ID: "event2", Name: "NSS"},
				application.Event{ID: "event3", Name: "Sports"},
			),
			newApplication("APP002", "BBA Examination June 2023",
				application.Event{ID: "event4", Name: "Arts"},
				application.Event{ID: "event5", Name: "NCC"},
			),
			newApplication("APP003", "BSc Computer Science Semester 5 Exam",
				application.Event{ID: "event6", Name: "Sports"},
				application.Event{ID: "event7", Name: "NSS"},
				application.Event{ID: "event8", Name: "Arts"},
			),
		},
	}
}

// newApplication returns an Application with one empty Assignment per event.
func newApplication(id, name string, events ...application.Event) application.Application {
	app := application.Application{
		ID:          id,
		Name:        name,
		Events:      events,
		Assignments: make([]application.Assignment, 0, len(events)),
	}
	for _, evt := range events {
		app.Assignments = append(app.Assignments, application.Assignment{EventID: evt.ID})
	}
	return app
}
