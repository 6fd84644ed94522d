package application

import (
	"github.com/volatiletech/null/v8"
)

// Event is a named activity (e.g. "NCC", "Sports") belonging to one Application.
type Event struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Assignment binds a Rule and a validity window to one Event.
// It is complete iff RuleID, FromDate and ToDate are all set.
type Assignment struct {
	EventID  string      `json:"event_id"`
	RuleID   null.String `json:"rule_id"`
	FromDate null.String `json:"from_date"` // YYYY-MM-DD
	ToDate   null.String `json:"to_date"`   // YYYY-MM-DD
}

func (a Assignment) IsComplete() bool {
	return a.RuleID.Valid && a.FromDate.Valid && a.ToDate.Valid
}

// Application is an exam/program instance. It exclusively owns its Assignments, one per Event.
type Application struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Events      []Event      `json:"events"`
	Assignments []Assignment `json:"assignments"`
}

// Clone returns a deep copy of app; mutating it never affects the original.
func (app Application) Clone() Application {
	clone := app
	clone.Events = append(make([]Event, 0, len(app.Events)), app.Events...)
	clone.Assignments = append(make([]Assignment, 0, len(app.Assignments)), app.Assignments...)
	return clone
}

// AssignedCount is the number of events with a Rule assigned.
func (app Application) AssignedCount() int {
	var n int
	for _, a := range app.Assignments {
		if a.RuleID.Valid {
			n++
		}
	}
	return n
}

func (app Application) EventByID(id string) (Event, bool) {
	for _, evt := range app.Events {
		if evt.ID == id {
			return evt, true
		}
	}
	return Event{}, false
}

func (app Application) AssignmentByEventID(eventID string) (Assignment, bool) {
	for _, a := range app.Assignments {
		if a.EventID == eventID {
			return a, true
		}
	}
	return Assignment{}, false
}
