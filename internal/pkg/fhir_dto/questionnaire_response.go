package fhir_dto

type QuestionnaireResponse struct {
	ResourceType          string                      `json:"resourceType" bson:"resourceType"`
	ID                    string                      `json:"id,omitempty" bson:"id,omitempty"`
	Meta                  *Meta                       `json:"meta,omitempty" bson:"meta,omitempty"`
	Text                  *Narrative                  `json:"text,omitempty" bson:"text,omitempty"`
	Identifier            *Identifier                 `json:"identifier,omitempty" bson:"identifier,omitempty"`
	Questionnaire         string                      `json:"questionnaire,omitempty" bson:"questionnaire,omitempty"`
	QuestionnaireExt      *PrimitiveExtension         `json:"_questionnaire,omitempty" bson:"_questionnaire,omitempty"`
	Status                string                      `json:"status,omitempty" bson:"status,omitempty"`
	Subject               *Reference                  `json:"subject,omitempty" bson:"subject,omitempty"`
	Encounter             *Reference                  `json:"encounter,omitempty" bson:"encounter,omitempty"`
	Authored              string                      `json:"authored,omitempty" bson:"authored,omitempty"`
	Author                *Reference                  `json:"author,omitempty" bson:"author,omitempty"`
	Source                *Reference                  `json:"source,omitempty" bson:"source,omitempty"`
	Item                  []QuestionnaireResponseItem `json:"item,omitempty" bson:"item,omitempty"`
}

type QuestionnaireResponseItem struct {
	LinkID string                            `json:"linkId" bson:"linkId"`
	Text   string                            `json:"text,omitempty" bson:"text,omitempty"`
	Answer []QuestionnaireResponseItemAnswer `json:"answer,omitempty" bson:"answer,omitempty"`
	Item   []QuestionnaireResponseItem       `json:"item,omitempty" bson:"item,omitempty"`
}

type QuestionnaireResponseItemAnswer struct {
	ValueBoolean   *bool                       `json:"valueBoolean,omitempty" bson:"valueBoolean,omitempty"`
	ValueDecimal   *float64                    `json:"valueDecimal,omitempty" bson:"valueDecimal,omitempty"`
	ValueInteger   *int                        `json:"valueInteger,omitempty" bson:"valueInteger,omitempty"`
	ValueDate      *string                     `json:"valueDate,omitempty" bson:"valueDate,omitempty"`
	ValueDateTime  *string                     `json:"valueDateTime,omitempty" bson:"valueDateTime,omitempty"`
	ValueTime      *string                     `json:"valueTime,omitempty" bson:"valueTime,omitempty"`
	ValueString    *string                     `json:"valueString,omitempty" bson:"valueString,omitempty"`
	ValueUri       *string                     `json:"valueUri,omitempty" bson:"valueUri,omitempty"`
	ValueCoding    *Coding                     `json:"valueCoding,omitempty" bson:"valueCoding,omitempty"`
	ValueQuantity  *Quantity                   `json:"valueQuantity,omitempty" bson:"valueQuantity,omitempty"`
	ValueReference *Reference                  `json:"valueReference,omitempty" bson:"valueReference,omitempty"`
	Item           []QuestionnaireResponseItem `json:"item,omitempty" bson:"item,omitempty"`
}
