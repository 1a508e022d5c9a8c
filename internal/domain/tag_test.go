package domain_test

import (
	"encoding/json"
	"testing"

	"devjobs-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRequirementInputUnmarshal(t *testing.T) {
	t.Run("Should accept a bare string as the description", func(t *testing.T) {
		var r domain.RequirementInput
		err := json.Unmarshal([]byte(`"5+ years of Go"`), &r)

		assert.NoError(t, err)
		assert.Equal(t, "5+ years of Go", r.Description)
		assert.Empty(t, r.Type)
		assert.Empty(t, r.Priority)
	})

	t.Run("Should accept the full object form", func(t *testing.T) {
		var r domain.RequirementInput
		err := json.Unmarshal([]byte(`{
			"description": "Bachelor's degree",
			"type": "education",
			"priority": "preferred",
			"value": "4",
			"unit": "years"
		}`), &r)

		assert.NoError(t, err)
		assert.Equal(t, "Bachelor's degree", r.Description)
		assert.Equal(t, "education", r.Type)
		assert.Equal(t, "preferred", r.Priority)
		assert.Equal(t, "4", *r.Value)
		assert.Equal(t, "years", *r.Unit)
	})

	t.Run("Should handle a mixed array of strings and objects", func(t *testing.T) {
		var reqs []domain.RequirementInput
		err := json.Unmarshal([]byte(`["Team player", {"description": "AWS certification", "type": "certification"}]`), &reqs)

		assert.NoError(t, err)
		assert.Len(t, reqs, 2)
		assert.Equal(t, "Team player", reqs[0].Description)
		assert.Equal(t, "certification", reqs[1].Type)
	})

	t.Run("Should reject malformed JSON", func(t *testing.T) {
		var r domain.RequirementInput
		assert.Error(t, json.Unmarshal([]byte(`123`), &r))
	})
}
