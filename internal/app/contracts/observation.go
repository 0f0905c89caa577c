package contracts

import (
	"context"
	"isik-bericht-service/internal/pkg/fhir_dto"
)

type ObservationFhirClient interface {
	FindObservationByID(ctx context.Context, observationID string) (*fhir_dto.Observation, error)
}
