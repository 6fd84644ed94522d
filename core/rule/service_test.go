package rule_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/gracemarks/core"
	"github.com/trezcool/gracemarks/core/rule"
	"github.com/trezcool/gracemarks/storage/database/inmem"
	"github.com/trezcool/gracemarks/tests"
)

func setup(t *testing.T) rule.Service {
	db := testutil.OpenDB(t)
	validate, _ := testutil.NewValidator()
	return rule.NewService(inmemdb.NewRuleRepository(db), validate)
}

func ruleIDs(rules []rule.Rule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestDefaultNewRule(t *testing.T) {
	nr := rule.DefaultNewRule()
	assert.Equal(t, "", nr.Name)
	assert.Equal(t, rule.AppliesTo{Theory: false, Practical: true}, nr.AppliesTo)
	assert.Equal(t, rule.DistributionPercentage, nr.DistributionType)
	assert.Equal(t, rule.MarkTypeMax, nr.MarkType)
	assert.Equal(t, rule.PaperPolicy{Enabled: true, MaxMark: 100, ShouldNotExceed: 50}, nr.MarksAwarded.PassPaper)
	assert.Equal(t, rule.PaperPolicy{Enabled: true, MaxMark: 75, ShouldNotExceed: 40}, nr.MarksAwarded.SupplementaryPaper)
	assert.Equal(t, rule.SubjectLimit{Enabled: false, Limit: 0}, nr.SubjectLimit)
}

func Test_service_Create(t *testing.T) {
	newRule := func(name string) rule.NewRule {
		nr := rule.DefaultNewRule()
		nr.Name = name
		nr.Description = "Grace marks for chess"
		return nr
	}

	t.Run("valid rule is appended", func(t *testing.T) {
		svc := setup(t)
		r, err := svc.Create(newRule("  Chess Rule "))
		require.NoError(t, err)
		assert.NotEmpty(t, r.ID)
		assert.Equal(t, "Chess Rule", r.Name)
		assert.Equal(t, rule.DistributionPercentage, r.DistributionType)

		rules, err := svc.Query(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3", "4", r.ID}, ruleIDs(rules))
		assert.Equal(t, r, rules[4])
	})

	t.Run("ids are unique", func(t *testing.T) {
		svc := setup(t)
		r1, err := svc.Create(newRule("A"))
		require.NoError(t, err)
		r2, err := svc.Create(newRule("A"))
		require.NoError(t, err)
		assert.NotEqual(t, r1.ID, r2.ID)
	})

	tests := []struct {
		name    string
		nr      rule.NewRule
		wantTag string
	}{
		{name: "empty name", nr: newRule(""), wantTag: "required"},
		{name: "blank name", nr: newRule("   \t "), wantTag: "required"},
		{
			name:    "unknown distribution type",
			nr:      func() rule.NewRule { nr := newRule("X"); nr.DistributionType = "lol"; return nr }(),
			wantTag: "oneof",
		},
		{
			name:    "unknown mark type",
			nr:      func() rule.NewRule { nr := newRule("X"); nr.MarkType = "lol"; return nr }(),
			wantTag: "oneof",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setup(t)
			_, err := svc.Create(tt.nr)
			vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
			require.True(t, ok, "err = %v", err)
			assert.Equal(t, tt.wantTag, vErrs[0].Tag())
			assert.Equal(t, tt.wantTag == "required", core.IsMissingRequiredField(err))

			rules, err := svc.Query(nil, nil)
			require.NoError(t, err)
			assert.Len(t, rules, 4)
		})
	}

	t.Run("enums are case insensitive", func(t *testing.T) {
		svc := setup(t)
		nr := newRule("X")
		nr.DistributionType = " MARK "
		nr.MarkType = "Obtained"
		r, err := svc.Create(nr)
		require.NoError(t, err)
		assert.Equal(t, rule.DistributionMark, r.DistributionType)
		assert.Equal(t, rule.MarkTypeObtained, r.MarkType)
	})
}

func Test_service_Create_idCollision(t *testing.T) {
	origNewID := rule.NewIDFunc
	defer func() { rule.NewIDFunc = origNewID }()

	t.Run("retries on taken id", func(t *testing.T) {
		svc := setup(t)
		ids := []string{"1", "2", "fresh"}
		rule.NewIDFunc = func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		}
		nr := rule.DefaultNewRule()
		nr.Name = "Chess Rule"
		r, err := svc.Create(nr)
		require.NoError(t, err)
		assert.Equal(t, "fresh", r.ID)
	})

	t.Run("gives up after 3 attempts", func(t *testing.T) {
		svc := setup(t)
		rule.NewIDFunc = func() string { return "1" }
		nr := rule.DefaultNewRule()
		nr.Name = "Chess Rule"
		_, err := svc.Create(nr)
		assert.Equal(t, rule.ErrIDExists, errors.Cause(err))

		got, err := svc.GetByID("1")
		require.NoError(t, err)
		assert.Equal(t, "NCC Rule", got.Name)
	})
}

func Test_service_Query(t *testing.T) {
	svc := setup(t)

	tests := []struct {
		name     string
		filter   *rule.QueryFilter
		ordering []core.Ordering
		want     []string
	}{
		{name: "all", want: []string{"1", "2", "3", "4"}},
		{name: "search name", filter: &rule.QueryFilter{Search: " ncc "}, want: []string{"1"}},
		{name: "search description", filter: &rule.QueryFilter{Search: "UNIVERSITY"}, want: []string{"3"}},
		{name: "search (unknown)", filter: &rule.QueryFilter{Search: "lol"}, want: []string{}},
		{name: "distribution type", filter: &rule.QueryFilter{DistributionType: "Mark"}, want: []string{"2", "4"}},
		{name: "mark type", filter: &rule.QueryFilter{MarkType: "max"}, want: []string{"1", "3"}},
		{name: "combo", filter: &rule.QueryFilter{Search: "rule", MarkType: "obtained"}, want: []string{"2", "4"}},
		{name: "order by name", ordering: []core.Ordering{{Field: "name", Ascending: true}}, want: []string{"4", "1", "2", "3"}},
		{name: "order by -id", ordering: []core.Ordering{{Field: "id"}}, want: []string{"4", "3", "2", "1"}},
		{
			name:     "order by distribution_type,-name",
			ordering: []core.Ordering{{Field: "distribution_type", Ascending: true}, {Field: "name"}},
			want:     []string{"2", "4", "3", "1"},
		},
		{name: "unknown ordering is ignored", ordering: []core.Ordering{{Field: "lol"}}, want: []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := svc.Query(tt.filter, tt.ordering)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ruleIDs(rules))
		})
	}
}

func Test_service_GetByID(t *testing.T) {
	svc := setup(t)

	r, err := svc.GetByID(" 2 ")
	require.NoError(t, err)
	assert.Equal(t, "NSS Rule", r.Name)

	_, err = svc.GetByID("lol")
	assert.Equal(t, rule.ErrNotFound, errors.Cause(err))

	exists, err := svc.Exists("4")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.Exists("lol")
	require.NoError(t, err)
	assert.False(t, exists)
}
