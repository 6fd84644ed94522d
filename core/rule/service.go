package rule

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/gracemarks/core"
)

const maxIDAttempts = 3

var (
	NewIDFunc = func() string { return uuid.New().String() } // mockable

	// errors
	ErrNotFound = errors.New("rule not found")
	ErrIDExists = errors.New("a rule with this id already exists")
)

type (
	Repository interface {
		// CreateRule stores a new Rule. It returns ErrIDExists if the ID is taken.
		CreateRule(rule Rule) (Rule, error)
		// QueryRules applies AND operation on available QueryFilter fields.
		// QueryFilter.Search does a case-insensitive match on one of Rule.Name or Rule.Description.
		// Rules are returned in creation order unless an ordering is given.
		QueryRules(filter QueryFilter, ordering []core.Ordering) ([]Rule, error)
		GetRuleByID(id string) (Rule, error)
	}

	Service interface {
		Create(nr NewRule) (Rule, error)
		Query(filter *QueryFilter, ordering []core.Ordering) ([]Rule, error)
		GetByID(id string) (Rule, error)
		Exists(id string) (bool, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, validate *validator.Validate) Service {
	return &service{repo: repo, validate: validate}
}

// Create validates nr and appends the resulting Rule to the collection under a fresh ID.
// Nothing is stored when validation fails.
func (svc *service) Create(nr NewRule) (Rule, error) {
	if err := nr.Validate(svc.validate); err != nil {
		return Rule{}, err
	}

	rule := Rule{
		Name:             nr.Name,
		Description:      nr.Description,
		AppliesTo:        nr.AppliesTo,
		DistributionType: nr.DistributionType,
		MarkType:         nr.MarkType,
		MarksAwarded:     nr.MarksAwarded,
		SubjectLimit:     nr.SubjectLimit,
	}
	for attempt := 1; ; attempt++ {
		rule.ID = NewIDFunc()
		created, err := svc.repo.CreateRule(rule)
		if err == nil {
			return created, nil
		}
		if errors.Cause(err) != ErrIDExists || attempt >= maxIDAttempts {
			return Rule{}, errors.Wrap(err, "creating rule")
		}
	}
}

func (svc *service) Query(filter *QueryFilter, ordering []core.Ordering) ([]Rule, error) {
	var qf QueryFilter
	if filter != nil {
		qf = *filter
		qf.Clean()
	}
	return svc.repo.QueryRules(qf, ordering)
}

func (svc *service) GetByID(id string) (Rule, error) {
	return svc.repo.GetRuleByID(core.CleanString(id))
}

func (svc *service) Exists(id string) (bool, error) {
	if _, err := svc.GetByID(id); err != nil {
		if errors.Cause(err) == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
