package inmemdb

import (
	"github.com/pkg/errors"

	"github.com/trezcool/gracemarks/core/application"
)

var ErrDuplicateApplication = errors.New("an application with this id already exists")

type applicationRepository struct {
	db *applicationTable
}

var _ application.Repository = (*applicationRepository)(nil)

func NewApplicationRepository(db *DB) application.Repository {
	return &applicationRepository{db: db.application}
}

func (repo *applicationRepository) QueryApplications() ([]application.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	apps := make([]application.Application, 0, len(repo.db.table))
	for _, app := range repo.db.table {
		apps = append(apps, app.Clone())
	}
	return apps, nil
}

func (repo *applicationRepository) GetApplicationByID(id string) (application.Application, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if idx, ok := repo.db.index[id]; ok {
		return repo.db.table[idx].Clone(), nil
	}
	return application.Application{}, application.ErrNotFound
}

func (repo *applicationRepository) ReplaceAssignments(appID string, assignments []application.Assignment) (application.Application, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	idx, ok := repo.db.index[appID]
	if !ok {
		return application.Application{}, application.ErrNotFound
	}
	app := &repo.db.table[idx]
	app.Assignments = append(make([]application.Assignment, 0, len(assignments)), assignments...)
	return app.Clone(), nil
}
