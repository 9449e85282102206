package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSkills(t *testing.T) {
	assert.Empty(t, ParseSkills(""))
	assert.Equal(t, []string{"Go", "SQL"}, ParseSkills("Go, SQL"))
	assert.Equal(t, []string{"Go", "SQL"}, ParseSkills(" Go ,, SQL , "))
}

func TestMergeSkillsSkipsCaseInsensitiveDuplicates(t *testing.T) {
	merged := MergeSkills([]string{"Go", "SQL"}, []string{"go", "Docker", "sql", "Docker"})
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, merged)
}

func TestMergeSkillsKeepsExistingOrder(t *testing.T) {
	merged := MergeSkills([]string{"Kubernetes", "Go"}, []string{"Terraform"})
	assert.Equal(t, []string{"Kubernetes", "Go", "Terraform"}, merged)
}

func TestMergeSkillsTrimsAndDropsEmpty(t *testing.T) {
	merged := MergeSkills([]string{" Go "}, []string{"", "  ", "SQL "})
	assert.Equal(t, []string{"Go", "SQL"}, merged)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleStudent))
	assert.True(t, ValidRole(RoleRecruiter))
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
}
