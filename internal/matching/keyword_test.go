package matching

import (
	"errors"
	"testing"

	"github.com/jonathan/career-pathfinder/internal/careergraph"
	"github.com/jonathan/career-pathfinder/internal/skills"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordMatcher_DefaultGraph(t *testing.T) {
	km, err := NewKeywordMatcher(careergraph.Default())
	require.NoError(t, err)
	defer km.Close()

	assert.Equal(t, 12, km.Len())

	tests := []struct {
		name   string
		skills []string
		text   string
		want   string
	}{
		{"frontend profile", []string{"JavaScript", "React", "HTML", "CSS"}, "Built React apps", "Junior Frontend Developer"},
		{"data profile", []string{"Excel", "Tableau/PowerBI", "Statistics"}, "Analyst building dashboards in Tableau", "Junior Data Analyst"},
		{"devops profile", []string{"Terraform", "Linux", "Bash Scripting"}, "", "DevOps Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := km.ClosestRole(skills.NewSet(tt.skills...), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywordMatcher_NoMatch(t *testing.T) {
	km, err := NewKeywordMatcher(smallGraph(t))
	require.NoError(t, err)
	defer km.Close()

	_, err = km.ClosestRole(skills.NewSet(), "")
	assert.ErrorIs(t, err, ErrNoKeywordMatch)

	_, err = km.ClosestRole(skills.NewSet("cobol"), "mainframe")
	assert.ErrorIs(t, err, ErrNoKeywordMatch)
}

func TestKeywordMatcher_Empty(t *testing.T) {
	km, err := NewKeywordMatcher(careergraph.New())
	require.NoError(t, err)
	defer km.Close()

	_, err = km.ClosestRole(skills.NewSet("go"), "gopher")
	var noRoles *NoRolesAvailableError
	assert.True(t, errors.As(err, &noRoles))
}

func TestClosestBySkillOverlap(t *testing.T) {
	km, err := NewKeywordMatcher(smallGraph(t))
	require.NoError(t, err)
	defer km.Close()

	got, err := km.closestBySkillOverlap(skills.NewSet("docker"))
	require.NoError(t, err)
	assert.Equal(t, "Senior", got)

	// Junior and Senior both overlap on sql; registration order wins
	got, err = km.closestBySkillOverlap(skills.NewSet("SQL"))
	require.NoError(t, err)
	assert.Equal(t, "Junior", got)
}
