package application

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/gracemarks/core"
)

var (
	NewSessionIDFunc = func() string { return uuid.New().String() } // mockable
	NowFunc          = func() time.Time { return time.Now().UTC() } // mockable

	// errors
	ErrNotFound          = errors.New("application not found")
	ErrEventNotFound     = errors.New("event not found")
	ErrSessionNotFound   = errors.New("editing session not found")
	ErrSessionInProgress = errors.New("an editing session is already open for this application")
	ErrSessionClosed     = errors.New("editing session is closed")
	ErrEventLocked       = errors.New("event assignment is saved and can no longer be edited")
	ErrCommitNotReady    = errors.New("every event must be saved before saving all")
)

type (
	Repository interface {
		// QueryApplications returns every Application, in storage order.
		QueryApplications() ([]Application, error)
		GetApplicationByID(id string) (Application, error)
		// ReplaceAssignments swaps the whole Assignment list of an Application.
		ReplaceAssignments(appID string, assignments []Assignment) (Application, error)
	}

	Service interface {
		Query() ([]Application, error)
		GetByID(id string) (Application, error)
		// OpenSession starts editing the Assignments of an Application.
		// At most one session may be open per Application.
		OpenSession(appID string) (*Session, error)
		// OpenSessionID returns the id of the session currently open on an Application, if any.
		OpenSessionID(appID string) (string, bool)
		GetSession(id string) (*Session, error)
		// Commit writes every locked draft of the session back to the Application, then closes the session.
		Commit(sessionID string) (Application, error)
		// Abandon closes the session, discarding its drafts.
		Abandon(sessionID string) error
	}

	service struct {
		repo     Repository
		rules    RuleChecker
		validate *validator.Validate

		mu       sync.Mutex
		sessions map[string]*Session
		openApps map[string]string // application id -> session id
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, rules RuleChecker, validate *validator.Validate) Service {
	return &service{
		repo:     repo,
		rules:    rules,
		validate: validate,
		sessions: make(map[string]*Session),
		openApps: make(map[string]string),
	}
}

func (svc *service) Query() ([]Application, error) {
	return svc.repo.QueryApplications()
}

func (svc *service) GetByID(id string) (Application, error) {
	return svc.repo.GetApplicationByID(core.CleanString(id))
}

func (svc *service) OpenSession(appID string) (*Session, error) {
	app, err := svc.GetByID(appID)
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, ok := svc.openApps[app.ID]; ok {
		return nil, ErrSessionInProgress
	}
	sess := newSession(NewSessionIDFunc(), app, svc.validate, svc.rules)
	svc.sessions[sess.ID] = sess
	svc.openApps[app.ID] = sess.ID
	return sess, nil
}

func (svc *service) OpenSessionID(appID string) (string, bool) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	id, ok := svc.openApps[core.CleanString(appID)]
	return id, ok
}

func (svc *service) GetSession(id string) (*Session, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	sess, ok := svc.sessions[core.CleanString(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (svc *service) Commit(sessionID string) (Application, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	sess, ok := svc.sessions[core.CleanString(sessionID)]
	if !ok {
		return Application{}, ErrSessionNotFound
	}
	list, err := sess.assignments()
	if err != nil {
		return Application{}, err
	}
	app, err := svc.repo.ReplaceAssignments(sess.ApplicationID, list)
	if err != nil {
		return Application{}, errors.Wrap(err, "committing assignments")
	}
	svc.closeSession(sess)
	return app, nil
}

func (svc *service) Abandon(sessionID string) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	sess, ok := svc.sessions[core.CleanString(sessionID)]
	if !ok {
		return ErrSessionNotFound
	}
	svc.closeSession(sess)
	return nil
}

// closeSession must be called with svc.mu held.
func (svc *service) closeSession(sess *Session) {
	sess.close()
	delete(svc.sessions, sess.ID)
	delete(svc.openApps, sess.ApplicationID)
}
