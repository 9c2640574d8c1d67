package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Python", "python"},
		{"  SQL  ", "sql"},
		{"CI/CD (Jenkins/GitLab)", "ci/cd (jenkins/gitlab)"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNewSet_DedupesCaseInsensitively(t *testing.T) {
	set := NewSet("Python", "python", "PYTHON", "SQL", "", "  ")

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("python"))
	assert.True(t, set.Has("Sql"))
	assert.Equal(t, []string{"python", "sql"}, set.Sorted())
}

func TestSet_SortedNeverNil(t *testing.T) {
	var empty Set
	sorted := empty.Sorted()
	assert.NotNil(t, sorted)
	assert.Empty(t, sorted)
}

func TestSet_Operations(t *testing.T) {
	a := NewSet("go", "sql", "docker")
	b := NewSet("sql", "kubernetes")

	assert.Equal(t, []string{"docker", "go"}, a.Minus(b).Sorted())
	assert.Equal(t, []string{"docker", "go", "kubernetes", "sql"}, a.Union(b).Sorted())
	assert.Equal(t, []string{"sql"}, a.Intersect(b).Sorted())
}

func TestSet_CloneIsIndependent(t *testing.T) {
	original := NewSet("go")
	clone := original.Clone()
	clone.Add("rust")

	assert.False(t, original.Has("rust"))
	assert.True(t, clone.Has("rust"))
}
