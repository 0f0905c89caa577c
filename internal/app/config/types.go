package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		RabbitMQ RabbitMQ
		Logger   Logger
	}

	InternalConfig struct {
		App     App
		FHIR    FHIR
		Archive Archive
		Bericht Bericht
	}

	App struct {
		Env                       string
		Port                      string
		Version                   string
		Address                   string
		Timezone                  string
		EndpointPrefix            string
		MaxRequests               int
		ShutdownTimeout           int
		MaxTimeRequestsPerSeconds int
	}

	MongoDB struct {
		Port     string
		Host     string
		DbName   string
		Username string
		Password string
	}

	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}

	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}

	FHIR struct {
		BaseUrl string
	}

	Archive struct {
		// Enabled toggles persisting assembled bundles to MongoDB.
		Enabled    bool
		Collection string
	}

	Bericht struct {
		// QueueName is the durable queue assembled berichte are
		// published to. Empty disables publishing.
		QueueName string
	}
)
