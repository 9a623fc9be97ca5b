package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftOf_SkipsIDAndBlanksNil(t *testing.T) {
	score := 7
	d := DraftOf(BusinessProcess{ID: 4, Name: "Invoicing", PriorityScore: &score})
	_, hasID := d["id"]
	assert.False(t, hasID)
	assert.Equal(t, "Invoicing", d["name"])
	assert.Equal(t, "7", d["priority_score"])

	d = DraftOf(&BusinessProcess{Name: "Onboarding"})
	assert.Equal(t, "", d["priority_score"])
}

func TestBindDraft_ParsesFields(t *testing.T) {
	p, err := BindDraft[BusinessProcess](Draft{
		"id":             "99",
		"name":           " Invoicing ",
		"department":     "Finance",
		"priority_score": "8",
	})
	require.NoError(t, err)
	assert.Zero(t, p.ID, "ids come from the server")
	assert.Equal(t, "Invoicing", p.Name)
	assert.Equal(t, "Finance", p.Department)
	require.NotNil(t, p.PriorityScore)
	assert.Equal(t, 8, *p.PriorityScore)
}

func TestBindDraft_BlankLeavesZero(t *testing.T) {
	p, err := BindDraft[BusinessProcess](Draft{"name": "x", "priority_score": "  "})
	require.NoError(t, err)
	assert.Nil(t, p.PriorityScore)
}

func TestBindDraft_InvalidNumber(t *testing.T) {
	_, err := BindDraft[BusinessProcess](Draft{"priority_score": "high"})
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "priority_score", fe.Field)
}

func TestBusinessProcess_ValidateScoreRange(t *testing.T) {
	over := 11
	err := BusinessProcess{PriorityScore: &over}.Validate()
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "priority_score", fe.Field)

	ok := 10
	assert.NoError(t, BusinessProcess{PriorityScore: &ok}.Validate())
}

func TestDraft_CloneIsIndependent(t *testing.T) {
	d := Draft{"title": "a"}
	c := d.Clone()
	c["title"] = "b"
	assert.Equal(t, "a", d["title"])
}
