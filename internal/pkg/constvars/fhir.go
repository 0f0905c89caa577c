package constvars

const (
	ResourcePatient               = "Patient"
	ResourceObservation           = "Observation"
	ResourceComposition           = "Composition"
	ResourceBundle                = "Bundle"
	ResourceQuestionnaire         = "Questionnaire"
	ResourceQuestionnaireResponse = "QuestionnaireResponse"
	ResourceOperationOutcome      = "OperationOutcome"
)

const (
	FhirBundleTypeDocument = "document"

	FhirCompositionStatusFinal = "final"
)
