package rule

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/gracemarks/core"
)

// Distribution types: how the grace mark is expressed.
const (
	DistributionPercentage = "percentage"
	DistributionMark       = "mark"
)

// Mark types: what the grace mark is computed against.
const (
	MarkTypeMax      = "max"
	MarkTypeObtained = "obtained"
)

var (
	DistributionTypes = []string{DistributionPercentage, DistributionMark}
	MarkTypes         = []string{MarkTypeMax, MarkTypeObtained}
)

type (
	// AppliesTo tells which exam components a Rule covers. Both may be false.
	AppliesTo struct {
		Theory    bool `json:"theory"`
		Practical bool `json:"practical"`
	}

	// PaperPolicy bounds the grace mark awarded for one kind of paper.
	PaperPolicy struct {
		Enabled         bool    `json:"enabled"`
		MaxMark         float64 `json:"max_mark"`          // upper bound on the grace mark itself
		ShouldNotExceed float64 `json:"should_not_exceed"` // upper bound on the resulting mark
	}

	MarksAwarded struct {
		PassPaper          PaperPolicy `json:"pass_paper"`
		SupplementaryPaper PaperPolicy `json:"supplementary_paper"`
	}

	// SubjectLimit caps how many subjects a student may apply a Rule to. Stored only.
	SubjectLimit struct {
		Enabled bool `json:"enabled"`
		Limit   int  `json:"limit"`
	}
)

// Rule is a named policy for awarding grace marks. Rules are immutable once created.
type Rule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	AppliesTo        AppliesTo    `json:"theory_practical"`
	DistributionType string       `json:"distribution_type"`
	MarkType         string       `json:"mark_type"`
	MarksAwarded     MarksAwarded `json:"marks_awarded"`
	SubjectLimit     SubjectLimit `json:"subject_limit"`
}

// NewRule contains information needed to create a new Rule.
type NewRule struct {
	Name             string       `json:"name" validate:"required"`
	Description      string       `json:"description"`
	AppliesTo        AppliesTo    `json:"theory_practical"`
	DistributionType string       `json:"distribution_type" validate:"oneof=percentage mark"`
	MarkType         string       `json:"mark_type" validate:"oneof=max obtained"`
	MarksAwarded     MarksAwarded `json:"marks_awarded"`
	SubjectLimit     SubjectLimit `json:"subject_limit"`
}

// DefaultNewRule returns a NewRule holding the preset value of every optional field.
// Decode user input on top of it so that omitted fields keep their preset.
func DefaultNewRule() NewRule {
	return NewRule{
		AppliesTo:        AppliesTo{Theory: false, Practical: true},
		DistributionType: DistributionPercentage,
		MarkType:         MarkTypeMax,
		MarksAwarded: MarksAwarded{
			PassPaper:          PaperPolicy{Enabled: true, MaxMark: 100, ShouldNotExceed: 50},
			SupplementaryPaper: PaperPolicy{Enabled: true, MaxMark: 75, ShouldNotExceed: 40},
		},
		SubjectLimit: SubjectLimit{Enabled: false, Limit: 0},
	}
}

func (nr *NewRule) Validate(validate *validator.Validate) error {
	nr.Name = core.CleanString(nr.Name)
	nr.DistributionType = core.CleanString(nr.DistributionType, true /* lower */)
	nr.MarkType = core.CleanString(nr.MarkType, true /* lower */)
	return validate.Struct(nr)
}

// QueryFilter narrows down Rule listings. Empty fields match everything.
type QueryFilter struct {
	Search           string `query:"search"`
	DistributionType string `query:"distribution_type"`
	MarkType         string `query:"mark_type"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.DistributionType = core.CleanString(qf.DistributionType, true /* lower */)
	qf.MarkType = core.CleanString(qf.MarkType, true /* lower */)
}
