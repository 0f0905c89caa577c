package requests

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func TestCreateBerichtUnmarshal(t *testing.T) {
	t.Run("Observations As Array", func(t *testing.T) {
		payload := `{
			"questionnaireResponse": {"resourceType": "QuestionnaireResponse", "id": "qr-1"},
			"observations": [
				{"resourceType": "Observation", "id": "obs-1", "valueString": "x"},
				{"resourceType": "Observation", "id": "obs-2", "valueBoolean": true}
			]
		}`

		var request CreateBericht
		err := json.Unmarshal([]byte(payload), &request)

		assert.NoError(t, err)
		assert.Len(t, request.Observations, 2)
		assert.Equal(t, "obs-1", request.Observations[0].ID)
	})

	t.Run("Single Observation Object Is Wrapped", func(t *testing.T) {
		payload := `{
			"questionnaireResponse": {"resourceType": "QuestionnaireResponse"},
			"observations": {"resourceType": "Observation", "id": "obs-1", "valueString": "x"}
		}`

		var request CreateBericht
		err := json.Unmarshal([]byte(payload), &request)

		assert.NoError(t, err)
		assert.Len(t, request.Observations, 1)
		assert.Equal(t, "obs-1", request.Observations[0].ID)
	})

	t.Run("Meta Overrides", func(t *testing.T) {
		payload := `{
			"questionnaireResponse": {"resourceType": "QuestionnaireResponse"},
			"meta": {"generatedAt": "2026-01-05T10:00:00Z", "questionnaireTitle": "Patientenfragebogen"}
		}`

		var request CreateBericht
		err := json.Unmarshal([]byte(payload), &request)

		assert.NoError(t, err)
		assert.Equal(t, "2026-01-05T10:00:00Z", request.Meta.GeneratedAt)
		assert.Equal(t, "Patientenfragebogen", request.Meta.QuestionnaireTitle)
	})
}
