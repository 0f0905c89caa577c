package requests

import (
	"isik-bericht-service/internal/pkg/fhir_dto"

	"github.com/goccy/go-json"
)

// CreateBericht carries the raw assembly input: the filled-in form, the
// derived observations and optional metadata overrides.
type CreateBericht struct {
	QuestionnaireResponse *fhir_dto.QuestionnaireResponse `json:"questionnaireResponse" validate:"required"`
	Observations          ObservationList                 `json:"observations"`
	Meta                  BerichtMeta                     `json:"meta"`
}

type BerichtMeta struct {
	GeneratedAt        string `json:"generatedAt,omitempty"`
	QuestionnaireTitle string `json:"questionnaireTitle,omitempty"`
}

// CreateBerichtFromServer assembles from resources already stored on the
// configured FHIR server, read by id.
type CreateBerichtFromServer struct {
	QuestionnaireResponseID string      `json:"questionnaireResponseId" validate:"required"`
	ObservationIDs          []string    `json:"observationIds"`
	Meta                    BerichtMeta `json:"meta"`
}

// ObservationList tolerates a single observation object where an array is
// expected, matching what loosely written exporters send.
type ObservationList []*fhir_dto.Observation

func (l *ObservationList) UnmarshalJSON(data []byte) error {
	var many []*fhir_dto.Observation
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}
	var one fhir_dto.Observation
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	*l = ObservationList{&one}
	return nil
}
