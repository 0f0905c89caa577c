package responses

import "isik-bericht-service/internal/pkg/fhir_dto"

type CreateBericht struct {
	BerichtID string           `json:"berichtId,omitempty"`
	Bundle    *fhir_dto.Bundle `json:"bundle"`
}

type FindBericht struct {
	BerichtID string           `json:"berichtId"`
	CreatedAt string           `json:"createdAt,omitempty"`
	Bundle    *fhir_dto.Bundle `json:"bundle"`
}
