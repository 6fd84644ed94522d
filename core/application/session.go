package application

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/gracemarks/core"
)

// EventState is the per-event editing state within a Session.
type EventState string

const (
	StateEditable EventState = "editable"
	StateLocked   EventState = "locked"
)

// Draft holds the in-session values of one event's Assignment.
type Draft struct {
	RuleID   null.String `json:"rule_id"`
	FromDate null.String `json:"from_date" validate:"omitempty,datetime=2006-01-02"`
	ToDate   null.String `json:"to_date" validate:"omitempty,datetime=2006-01-02"`
}

// Clean trims every value and turns blank values into null.
func (d *Draft) Clean() {
	for _, fld := range []*null.String{&d.RuleID, &d.FromDate, &d.ToDate} {
		if !fld.Valid {
			continue
		}
		if s := core.CleanString(fld.String); s != "" {
			*fld = null.StringFrom(s)
		} else {
			*fld = null.String{}
		}
	}
}

// RuleChecker reports whether a Rule exists. rule.Service satisfies it.
type RuleChecker interface {
	Exists(id string) (bool, error)
}

// Session is an editing session over the Assignments of one Application.
// Changes stay local to the session until committed.
type Session struct {
	ID            string
	ApplicationID string
	OpenedAt      time.Time

	mu       sync.Mutex
	app      Application // snapshot taken when the session was opened
	drafts   map[string]Draft
	locked   map[string]bool
	closed   bool
	validate *validator.Validate
	rules    RuleChecker
}

func newSession(id string, app Application, validate *validator.Validate, rules RuleChecker) *Session {
	sess := &Session{
		ID:            id,
		ApplicationID: app.ID,
		OpenedAt:      NowFunc(),
		app:           app.Clone(),
		drafts:        make(map[string]Draft, len(app.Events)),
		locked:        make(map[string]bool, len(app.Events)),
		validate:      validate,
		rules:         rules,
	}
	for _, evt := range app.Events {
		sess.drafts[evt.ID] = Draft{}
	}
	for _, a := range app.Assignments {
		sess.drafts[a.EventID] = Draft{RuleID: a.RuleID, FromDate: a.FromDate, ToDate: a.ToDate}
	}
	return sess
}

// Draft returns the current in-session values of the given event.
func (sess *Session) Draft(eventID string) (Draft, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return Draft{}, ErrSessionClosed
	}
	d, ok := sess.drafts[eventID]
	if !ok {
		return Draft{}, ErrEventNotFound
	}
	return d, nil
}

// State returns the editing state of the given event.
func (sess *Session) State(eventID string) (EventState, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return "", ErrSessionClosed
	}
	if _, ok := sess.drafts[eventID]; !ok {
		return "", ErrEventNotFound
	}
	return sess.stateOf(eventID), nil
}

func (sess *Session) stateOf(eventID string) EventState {
	if sess.locked[eventID] {
		return StateLocked
	}
	return StateEditable
}

// Update replaces the draft of an editable event. Unset values are stored as null.
func (sess *Session) Update(eventID string, d Draft) error {
	return sess.Patch(eventID, func(draft *Draft) error {
		*draft = d
		return nil
	})
}

// Patch applies fn to a copy of an editable event's draft and stores the result once validated.
// fn runs with the session locked, so concurrent patches of one event never overwrite each other.
func (sess *Session) Patch(eventID string, fn func(d *Draft) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return ErrSessionClosed
	}
	d, ok := sess.drafts[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if sess.locked[eventID] {
		return ErrEventLocked
	}
	if err := fn(&d); err != nil {
		return err
	}

	d.Clean()
	if err := sess.validate.Struct(d); err != nil {
		return err
	}
	if d.RuleID.Valid {
		exists, err := sess.rules.Exists(d.RuleID.String)
		if err != nil {
			return errors.Wrap(err, "checking rule")
		}
		if !exists {
			return core.NewValidationError(
				errors.New("unknown rule"),
				core.FieldError{Field: "rule_id", Error: "rule does not exist"},
			)
		}
	}

	sess.drafts[eventID] = d
	return nil
}

// SetRule sets or clears (empty id) the rule of an editable event.
func (sess *Session) SetRule(eventID, ruleID string) error {
	return sess.Patch(eventID, func(d *Draft) error {
		d.RuleID = null.StringFrom(ruleID)
		return nil
	})
}

// SetFromDate sets or clears (empty date) the start of an editable event's window.
func (sess *Session) SetFromDate(eventID, date string) error {
	return sess.Patch(eventID, func(d *Draft) error {
		d.FromDate = null.StringFrom(date)
		return nil
	})
}

// SetToDate sets or clears (empty date) the end of an editable event's window.
func (sess *Session) SetToDate(eventID, date string) error {
	return sess.Patch(eventID, func(d *Draft) error {
		d.ToDate = null.StringFrom(date)
		return nil
	})
}

// Lock marks an event as saved. It fails on the first missing value, checked
// in rule, from date, to date order, and leaves the event editable.
// Locking an already locked event is a no-op.
func (sess *Session) Lock(eventID string) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return ErrSessionClosed
	}
	d, ok := sess.drafts[eventID]
	if !ok {
		return ErrEventNotFound
	}
	if sess.locked[eventID] {
		return nil
	}

	switch {
	case !d.RuleID.Valid:
		return core.NewMissingFieldError("rule_id", "please select a rule")
	case !d.FromDate.Valid:
		return core.NewMissingFieldError("from_date", "please select a from date")
	case !d.ToDate.Valid:
		return core.NewMissingFieldError("to_date", "please select a to date")
	}

	sess.locked[eventID] = true
	return nil
}

// CanCommit is true iff every event of the application is locked.
func (sess *Session) CanCommit() bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.canCommit()
}

func (sess *Session) canCommit() bool {
	for _, evt := range sess.app.Events {
		if !sess.locked[evt.ID] {
			return false
		}
	}
	return true
}

// assignments builds the list to commit, in the order of the stored list.
func (sess *Session) assignments() ([]Assignment, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.closed {
		return nil, ErrSessionClosed
	}
	if !sess.canCommit() {
		return nil, ErrCommitNotReady
	}

	list := make([]Assignment, 0, len(sess.app.Assignments))
	for _, a := range sess.app.Assignments {
		d := sess.drafts[a.EventID]
		list = append(list, Assignment{EventID: a.EventID, RuleID: d.RuleID, FromDate: d.FromDate, ToDate: d.ToDate})
	}
	return list, nil
}

func (sess *Session) close() {
	sess.mu.Lock()
	sess.closed = true
	sess.mu.Unlock()
}

// Closed reports whether the session was committed or abandoned.
func (sess *Session) Closed() bool {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.closed
}

type (
	EventView struct {
		EventID string `json:"event_id"`
		Name    string `json:"name"`
		Draft
		State EventState `json:"state"`
	}

	// View is a read-only snapshot of a Session.
	View struct {
		ID              string      `json:"id"`
		ApplicationID   string      `json:"application_id"`
		ApplicationName string      `json:"application_name"`
		OpenedAt        time.Time   `json:"opened_at"`
		Events          []EventView `json:"events"`
		CanCommit       bool        `json:"can_commit"`
	}
)

// View lists the application's events, in order, with their drafts and states.
func (sess *Session) View() View {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	view := View{
		ID:              sess.ID,
		ApplicationID:   sess.ApplicationID,
		ApplicationName: sess.app.Name,
		OpenedAt:        sess.OpenedAt,
		Events:          make([]EventView, 0, len(sess.app.Events)),
		CanCommit:       sess.canCommit(),
	}
	for _, evt := range sess.app.Events {
		view.Events = append(view.Events, EventView{
			EventID: evt.ID,
			Name:    evt.Name,
			Draft:   sess.drafts[evt.ID],
			State:   sess.stateOf(evt.ID),
		})
	}
	return view
}
