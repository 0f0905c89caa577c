package contracts

import (
	"context"
	"isik-bericht-service/internal/pkg/fhir_dto"
)

type QuestionnaireResponseFhirClient interface {
	FindQuestionnaireResponseByID(ctx context.Context, questionnaireResponseID string) (*fhir_dto.QuestionnaireResponse, error)
}
