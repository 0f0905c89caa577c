package berichte

import (
	"context"
	"errors"
	"testing"

	"isik-bericht-service/internal/app/config"
	"isik-bericht-service/internal/app/models"
	"isik-bericht-service/internal/pkg/dto/requests"
	"isik-bericht-service/internal/pkg/exceptions"
	"isik-bericht-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeBerichtRepository struct {
	inserted []*models.Bericht
	stored   map[string]*models.Bericht
}

func (f *fakeBerichtRepository) InsertBericht(_ context.Context, bericht *models.Bericht) error {
	f.inserted = append(f.inserted, bericht)
	return nil
}

func (f *fakeBerichtRepository) FindBerichtByID(_ context.Context, berichtID string) (*models.Bericht, error) {
	return f.stored[berichtID], nil
}

type fakeBerichtPublisher struct {
	events []*models.BerichtAssembledEvent
	err    error
}

func (f *fakeBerichtPublisher) PublishBerichtAssembled(_ context.Context, event *models.BerichtAssembledEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

type fakeQuestionnaireResponseFhirClient struct {
	response *fhir_dto.QuestionnaireResponse
}

func (f *fakeQuestionnaireResponseFhirClient) FindQuestionnaireResponseByID(_ context.Context, _ string) (*fhir_dto.QuestionnaireResponse, error) {
	if f.response == nil {
		return nil, errors.New("not found")
	}
	return f.response, nil
}

type fakeObservationFhirClient struct {
	observations map[string]*fhir_dto.Observation
}

func (f *fakeObservationFhirClient) FindObservationByID(_ context.Context, observationID string) (*fhir_dto.Observation, error) {
	obs, ok := f.observations[observationID]
	if !ok {
		return nil, errors.New("not found")
	}
	return obs, nil
}

func newTestUsecase(repo *fakeBerichtRepository, publisher *fakeBerichtPublisher, qrClient *fakeQuestionnaireResponseFhirClient, obsClient *fakeObservationFhirClient) *berichtUsecase {
	return &berichtUsecase{
		BerichtRepository:               repo,
		BerichtPublisher:                publisher,
		QuestionnaireResponseFhirClient: qrClient,
		ObservationFhirClient:           obsClient,
		InternalConfig: &config.InternalConfig{
			Archive: config.Archive{Enabled: true, Collection: "berichte"},
			Bericht: config.Bericht{QueueName: "bericht_assembled_queue"},
		},
		Log: zap.NewNop(),
	}
}

func TestCreateBericht(t *testing.T) {
	t.Run("Assembles Archives And Publishes", func(t *testing.T) {
		repo := &fakeBerichtRepository{stored: map[string]*models.Bericht{}}
		publisher := &fakeBerichtPublisher{}
		uc := newTestUsecase(repo, publisher, &fakeQuestionnaireResponseFhirClient{}, &fakeObservationFhirClient{})

		response, err := uc.CreateBericht(context.Background(), &requests.CreateBericht{
			QuestionnaireResponse: &fhir_dto.QuestionnaireResponse{
				ResourceType: "QuestionnaireResponse",
				ID:           "qr-1",
				Subject:      &fhir_dto.Reference{Reference: "Patient/42"},
			},
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, response.BerichtID)
		assert.NotNil(t, response.Bundle)
		assert.Equal(t, "document", response.Bundle.Type)

		assert.Len(t, repo.inserted, 1)
		assert.Equal(t, response.BerichtID, repo.inserted[0].ID)
		assert.NotEmpty(t, repo.inserted[0].BundleRaw)

		assert.Len(t, publisher.events, 1)
		assert.Equal(t, response.BerichtID, publisher.events[0].BerichtID)
	})

	t.Run("Guard Rejection Maps To Unprocessable", func(t *testing.T) {
		repo := &fakeBerichtRepository{stored: map[string]*models.Bericht{}}
		uc := newTestUsecase(repo, &fakeBerichtPublisher{}, &fakeQuestionnaireResponseFhirClient{}, &fakeObservationFhirClient{})

		_, err := uc.CreateBericht(context.Background(), &requests.CreateBericht{
			QuestionnaireResponse: &fhir_dto.QuestionnaireResponse{ResourceType: "Patient"},
		})

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 422, customErr.StatusCode)
		assert.Empty(t, repo.inserted, "a rejected input must not be archived")
	})

	t.Run("Publish Failure Does Not Fail The Request", func(t *testing.T) {
		repo := &fakeBerichtRepository{stored: map[string]*models.Bericht{}}
		publisher := &fakeBerichtPublisher{err: errors.New("broker down")}
		uc := newTestUsecase(repo, publisher, &fakeQuestionnaireResponseFhirClient{}, &fakeObservationFhirClient{})

		response, err := uc.CreateBericht(context.Background(), &requests.CreateBericht{
			QuestionnaireResponse: &fhir_dto.QuestionnaireResponse{ResourceType: "QuestionnaireResponse"},
		})

		assert.NoError(t, err, "archival and publishing are best-effort after assembly")
		assert.NotNil(t, response.Bundle)
		assert.Len(t, repo.inserted, 1)
	})
}

func TestCreateBerichtFromServer(t *testing.T) {
	t.Run("Fetches Resources Then Assembles", func(t *testing.T) {
		strVal := "x"
		repo := &fakeBerichtRepository{stored: map[string]*models.Bericht{}}
		qrClient := &fakeQuestionnaireResponseFhirClient{
			response: &fhir_dto.QuestionnaireResponse{ResourceType: "QuestionnaireResponse", ID: "qr-1"},
		}
		obsClient := &fakeObservationFhirClient{observations: map[string]*fhir_dto.Observation{
			"obs-1": {ResourceType: "Observation", ID: "obs-1", ValueString: &strVal},
		}}
		uc := newTestUsecase(repo, &fakeBerichtPublisher{}, qrClient, obsClient)

		response, err := uc.CreateBerichtFromServer(context.Background(), &requests.CreateBerichtFromServer{
			QuestionnaireResponseID: "qr-1",
			ObservationIDs:          []string{"obs-1"},
		})

		assert.NoError(t, err)
		assert.Len(t, response.Bundle.Entry, 3, "composition, response and one observation")
	})

	t.Run("Missing Observation Fails The Call", func(t *testing.T) {
		qrClient := &fakeQuestionnaireResponseFhirClient{
			response: &fhir_dto.QuestionnaireResponse{ResourceType: "QuestionnaireResponse"},
		}
		uc := newTestUsecase(&fakeBerichtRepository{stored: map[string]*models.Bericht{}}, &fakeBerichtPublisher{}, qrClient, &fakeObservationFhirClient{observations: map[string]*fhir_dto.Observation{}})

		_, err := uc.CreateBerichtFromServer(context.Background(), &requests.CreateBerichtFromServer{
			QuestionnaireResponseID: "qr-1",
			ObservationIDs:          []string{"missing"},
		})

		assert.Error(t, err)
	})
}

func TestFindBerichtByID(t *testing.T) {
	t.Run("Returns Stored Bundle", func(t *testing.T) {
		repo := &fakeBerichtRepository{stored: map[string]*models.Bericht{}}
		uc := newTestUsecase(repo, &fakeBerichtPublisher{}, &fakeQuestionnaireResponseFhirClient{}, &fakeObservationFhirClient{})

		created, err := uc.CreateBericht(context.Background(), &requests.CreateBericht{
			QuestionnaireResponse: &fhir_dto.QuestionnaireResponse{ResourceType: "QuestionnaireResponse"},
		})
		assert.NoError(t, err)
		repo.stored[created.BerichtID] = repo.inserted[0]

		found, err := uc.FindBerichtByID(context.Background(), created.BerichtID)

		assert.NoError(t, err)
		assert.Equal(t, created.BerichtID, found.BerichtID)
		assert.Equal(t, "document", found.Bundle.Type)
		assert.NotEmpty(t, found.CreatedAt)
	})

	t.Run("Unknown ID Maps To Not Found", func(t *testing.T) {
		uc := newTestUsecase(&fakeBerichtRepository{stored: map[string]*models.Bericht{}}, &fakeBerichtPublisher{}, &fakeQuestionnaireResponseFhirClient{}, &fakeObservationFhirClient{})

		_, err := uc.FindBerichtByID(context.Background(), "nope")

		assert.Error(t, err)
		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
		assert.Equal(t, 404, customErr.StatusCode)
	})
}
