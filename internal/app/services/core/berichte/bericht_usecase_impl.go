package berichte

import (
	"context"
	"strings"
	"sync"
	"time"

	"isik-bericht-service/internal/app/config"
	"isik-bericht-service/internal/app/contracts"
	"isik-bericht-service/internal/app/models"
	"isik-bericht-service/internal/pkg/constvars"
	"isik-bericht-service/internal/pkg/dto/requests"
	"isik-bericht-service/internal/pkg/dto/responses"
	"isik-bericht-service/internal/pkg/exceptions"
	"isik-bericht-service/internal/pkg/fhir_dto"
	"isik-bericht-service/internal/pkg/isik"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type berichtUsecase struct {
	BerichtRepository               contracts.BerichtRepository
	BerichtPublisher                contracts.BerichtPublisher
	QuestionnaireResponseFhirClient contracts.QuestionnaireResponseFhirClient
	ObservationFhirClient           contracts.ObservationFhirClient
	InternalConfig                  *config.InternalConfig
	Log                             *zap.Logger
}

var (
	berichtUsecaseInstance contracts.BerichtUsecase
	onceBerichtUsecase     sync.Once
)

func NewBerichtUsecase(
	berichtRepository contracts.BerichtRepository,
	berichtPublisher contracts.BerichtPublisher,
	questionnaireResponseFhirClient contracts.QuestionnaireResponseFhirClient,
	observationFhirClient contracts.ObservationFhirClient,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BerichtUsecase {
	onceBerichtUsecase.Do(func() {
		instance := &berichtUsecase{
			BerichtRepository:               berichtRepository,
			BerichtPublisher:                berichtPublisher,
			QuestionnaireResponseFhirClient: questionnaireResponseFhirClient,
			ObservationFhirClient:           observationFhirClient,
			InternalConfig:                  internalConfig,
			Log:                             logger,
		}
		berichtUsecaseInstance = instance
	})
	return berichtUsecaseInstance
}

func (uc *berichtUsecase) CreateBericht(ctx context.Context, request *requests.CreateBericht) (*responses.CreateBericht, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	bundle := isik.AssembleBerichtBundle(isik.AssembleInput{
		QuestionnaireResponse: request.QuestionnaireResponse,
		Observations:          request.Observations,
		Meta: isik.AssembleMeta{
			GeneratedAt:        request.Meta.GeneratedAt,
			QuestionnaireTitle: request.Meta.QuestionnaireTitle,
		},
	})
	if bundle == nil {
		return nil, exceptions.ErrBerichtGuardRejected(nil)
	}

	berichtID := strings.TrimPrefix(bundle.Identifier.Value, "urn:uuid:")
	uc.Log.Info("berichtUsecase.CreateBericht assembled bundle",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBerichtIDKey, berichtID),
		zap.Int(constvars.LoggingEntryCountKey, len(bundle.Entry)),
	)

	uc.archiveAndPublish(ctx, berichtID, bundle)

	return &responses.CreateBericht{
		BerichtID: berichtID,
		Bundle:    bundle,
	}, nil
}

func (uc *berichtUsecase) CreateBerichtFromServer(ctx context.Context, request *requests.CreateBerichtFromServer) (*responses.CreateBericht, error) {
	qr, err := uc.QuestionnaireResponseFhirClient.FindQuestionnaireResponseByID(ctx, request.QuestionnaireResponseID)
	if err != nil {
		return nil, err
	}

	observations := make([]*fhir_dto.Observation, 0, len(request.ObservationIDs))
	for _, observationID := range request.ObservationIDs {
		observation, err := uc.ObservationFhirClient.FindObservationByID(ctx, observationID)
		if err != nil {
			return nil, err
		}
		observations = append(observations, observation)
	}

	return uc.CreateBericht(ctx, &requests.CreateBericht{
		QuestionnaireResponse: qr,
		Observations:          observations,
		Meta:                  request.Meta,
	})
}

func (uc *berichtUsecase) FindBerichtByID(ctx context.Context, berichtID string) (*responses.FindBericht, error) {
	bericht, err := uc.BerichtRepository.FindBerichtByID(ctx, berichtID)
	if err != nil {
		return nil, err
	}
	if bericht == nil {
		return nil, exceptions.ErrBerichtNotFound(nil)
	}

	bundle := new(fhir_dto.Bundle)
	if err := json.Unmarshal(bericht.BundleRaw, &bundle); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	return &responses.FindBericht{
		BerichtID: bericht.ID,
		CreatedAt: bericht.CreatedAt.Format(time.RFC3339),
		Bundle:    bundle,
	}, nil
}

// archiveAndPublish persists and announces an assembled bundle. The bundle
// has already been handed to the caller at this point, so failures here are
// logged and swallowed rather than turning a successful assembly into an
// error response.
func (uc *berichtUsecase) archiveAndPublish(ctx context.Context, berichtID string, bundle *fhir_dto.Bundle) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	raw, err := json.Marshal(bundle)
	if err != nil {
		uc.Log.Error("berichtUsecase.archiveAndPublish error marshaling bundle",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBerichtIDKey, berichtID),
			zap.Error(err),
		)
		return
	}

	if uc.InternalConfig.Archive.Enabled {
		bericht := &models.Bericht{
			ID:        berichtID,
			CreatedAt: time.Now().UTC(),
			BundleRaw: raw,
		}
		if err := uc.BerichtRepository.InsertBericht(ctx, bericht); err != nil {
			uc.Log.Error("berichtUsecase.archiveAndPublish error archiving bundle",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBerichtIDKey, berichtID),
				zap.Error(err),
			)
		}
	}

	if uc.InternalConfig.Bericht.QueueName != "" && uc.BerichtPublisher != nil {
		event := &models.BerichtAssembledEvent{
			BerichtID:   berichtID,
			GeneratedAt: bundle.Timestamp,
			Bundle:      raw,
		}
		if err := uc.BerichtPublisher.PublishBerichtAssembled(ctx, event); err != nil {
			uc.Log.Error("berichtUsecase.archiveAndPublish error publishing event",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingBerichtIDKey, berichtID),
				zap.Error(err),
			)
		}
	}
}
