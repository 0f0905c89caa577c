package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"isik-bericht-service/internal/app/contracts"
	"isik-bericht-service/internal/pkg/constvars"
	"isik-bericht-service/internal/pkg/dto/requests"
	"isik-bericht-service/internal/pkg/exceptions"
	"isik-bericht-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BerichtController struct {
	Log            *zap.Logger
	BerichtUsecase contracts.BerichtUsecase
}

var (
	berichtControllerInstance *BerichtController
	onceBerichtController     sync.Once
)

func NewBerichtController(logger *zap.Logger, berichtUsecase contracts.BerichtUsecase) *BerichtController {
	onceBerichtController.Do(func() {
		instance := &BerichtController{
			Log:            logger,
			BerichtUsecase: berichtUsecase,
		}
		berichtControllerInstance = instance
	})
	return berichtControllerInstance
}

func (ctrl *BerichtController) CreateBericht(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("BerichtController.CreateBericht requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BerichtController.CreateBericht called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateBericht)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("BerichtController.CreateBericht error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("BerichtController.CreateBericht validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BerichtUsecase.CreateBericht(ctx, request)
	if err != nil {
		ctrl.Log.Error("BerichtController.CreateBericht error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BerichtController.CreateBericht succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBerichtIDKey, response.BerichtID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBerichtSuccessMessage, response)
}

func (ctrl *BerichtController) CreateBerichtFromServer(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("BerichtController.CreateBerichtFromServer requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BerichtController.CreateBerichtFromServer called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.CreateBerichtFromServer)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("BerichtController.CreateBerichtFromServer error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("BerichtController.CreateBerichtFromServer validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	response, err := ctrl.BerichtUsecase.CreateBerichtFromServer(ctx, request)
	if err != nil {
		ctrl.Log.Error("BerichtController.CreateBerichtFromServer error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BerichtController.CreateBerichtFromServer succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBerichtIDKey, response.BerichtID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateBerichtSuccessMessage, response)
}

func (ctrl *BerichtController) FindBerichtByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("BerichtController.FindBerichtByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("BerichtController.FindBerichtByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	berichtID := chi.URLParam(r, constvars.URLParamBerichtID)
	if berichtID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamBerichtID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BerichtUsecase.FindBerichtByID(ctx, berichtID)
	if err != nil {
		ctrl.Log.Error("BerichtController.FindBerichtByID error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("BerichtController.FindBerichtByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBerichtIDKey, response.BerichtID),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindBerichtSuccessMessage, response)
}
