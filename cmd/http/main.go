package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"isik-bericht-service/internal/app/config"
	"isik-bericht-service/internal/app/delivery/http/controllers"
	"isik-bericht-service/internal/app/delivery/http/middlewares"
	"isik-bericht-service/internal/app/delivery/http/routers"
	"isik-bericht-service/internal/app/drivers/database"
	"isik-bericht-service/internal/app/drivers/logger"
	"isik-bericht-service/internal/app/drivers/messaging"
	"isik-bericht-service/internal/app/services/core/berichte"
	"isik-bericht-service/internal/app/services/fhir_spark/observations"
	"isik-bericht-service/internal/app/services/fhir_spark/questionnaire_responses"
	"isik-bericht-service/internal/app/services/shared/berichtqueue"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		RabbitMQ:       rabbitMQ,
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Printf("Error while closing drivers: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// FHIR read clients
	questionnaireResponseFhirClient := questionnaire_responses.NewQuestionnaireResponseFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.Logger)
	observationFhirClient := observations.NewObservationFhirClient(bootstrap.InternalConfig.FHIR.BaseUrl, bootstrap.Logger)

	// Bericht queue
	berichtPublisher, err := berichtqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.Bericht.QueueName)
	if err != nil {
		logrus.Fatalf("Failed to initialize bericht queue: %v", err)
	}

	// Bericht
	berichtMongoRepository := berichte.NewBerichtMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
		bootstrap.InternalConfig.Archive.Collection,
	)
	berichtUsecase := berichte.NewBerichtUsecase(
		berichtMongoRepository,
		berichtPublisher,
		questionnaireResponseFhirClient,
		observationFhirClient,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	berichtController := controllers.NewBerichtController(bootstrap.Logger, berichtUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, berichtController)
}
