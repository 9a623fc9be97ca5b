package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSection(t *testing.T) {
	cases := map[string]Section{
		"deliverables":       SectionDeliverables,
		" Processes ":        SectionProcesses,
		"business-processes": SectionProcesses,
		"ai":                 SectionAITechnologies,
		"tools":              SectionSoftwareTools,
		"research-items":     SectionResearch,
		"integration":        SectionIntegrations,
	}
	for in, want := range cases {
		got, err := ParseSection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSection("budgets")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid: deliverables")
}

func TestSection_EveryEntryHasPathLabelNoun(t *testing.T) {
	for _, sec := range Sections {
		assert.NotEmpty(t, sec.APIPath(), sec)
		assert.NotEmpty(t, sec.Label(), sec)
		assert.NotEmpty(t, sec.Noun(), sec)
	}
	assert.Equal(t, "/api/business-processes", SectionProcesses.APIPath())
	assert.Equal(t, "/api/research-items", SectionResearch.APIPath())
}

func TestSection_UnknownPanics(t *testing.T) {
	assert.Panics(t, func() { Section("budgets").APIPath() })
}

func TestSession_Marker(t *testing.T) {
	assert.Equal(t, "role-viewer", ViewerSession().Marker())
	assert.False(t, ViewerSession().CanMutate())

	admin := Session{Role: RoleAdmin, Permissions: Permissions{CanEdit: true}}
	assert.Equal(t, "role-admin", admin.Marker())
	assert.True(t, admin.CanMutate())
}
