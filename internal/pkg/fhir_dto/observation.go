package fhir_dto

type Observation struct {
	ResourceType      string                 `json:"resourceType" bson:"resourceType"`
	ID                string                 `json:"id,omitempty" bson:"id,omitempty"`
	Meta              *Meta                  `json:"meta,omitempty" bson:"meta,omitempty"`
	Text              *Narrative             `json:"text,omitempty" bson:"text,omitempty"`
	Identifier        []Identifier           `json:"identifier,omitempty" bson:"identifier,omitempty"`
	Status            string                 `json:"status,omitempty" bson:"status,omitempty"`
	Code              *CodeableConcept       `json:"code,omitempty" bson:"code,omitempty"`
	Subject           *Reference             `json:"subject,omitempty" bson:"subject,omitempty"`
	Performer         []Reference            `json:"performer,omitempty" bson:"performer,omitempty"`
	EffectiveDateTime string                 `json:"effectiveDateTime,omitempty" bson:"effectiveDateTime,omitempty"`
	EffectivePeriod   *Period                `json:"effectivePeriod,omitempty" bson:"effectivePeriod,omitempty"`
	Issued            string                 `json:"issued,omitempty" bson:"issued,omitempty"`
	DerivedFrom       []Reference            `json:"derivedFrom,omitempty" bson:"derivedFrom,omitempty"`
	Component         []ObservationComponent `json:"component,omitempty" bson:"component,omitempty"`

	ValueString          *string          `json:"valueString,omitempty" bson:"valueString,omitempty"`
	ValueBoolean         *bool            `json:"valueBoolean,omitempty" bson:"valueBoolean,omitempty"`
	ValueInteger         *int             `json:"valueInteger,omitempty" bson:"valueInteger,omitempty"`
	ValueDecimal         *float64         `json:"valueDecimal,omitempty" bson:"valueDecimal,omitempty"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty" bson:"valueCodeableConcept,omitempty"`
	ValueQuantity        *Quantity        `json:"valueQuantity,omitempty" bson:"valueQuantity,omitempty"`
	ValueDateTime        *string          `json:"valueDateTime,omitempty" bson:"valueDateTime,omitempty"`
	ValueDate            *string          `json:"valueDate,omitempty" bson:"valueDate,omitempty"`
	ValueTime            *string          `json:"valueTime,omitempty" bson:"valueTime,omitempty"`
}

type ObservationComponent struct {
	Code *CodeableConcept `json:"code,omitempty" bson:"code,omitempty"`

	ValueString          *string          `json:"valueString,omitempty" bson:"valueString,omitempty"`
	ValueBoolean         *bool            `json:"valueBoolean,omitempty" bson:"valueBoolean,omitempty"`
	ValueInteger         *int             `json:"valueInteger,omitempty" bson:"valueInteger,omitempty"`
	ValueDecimal         *float64         `json:"valueDecimal,omitempty" bson:"valueDecimal,omitempty"`
	ValueCodeableConcept *CodeableConcept `json:"valueCodeableConcept,omitempty" bson:"valueCodeableConcept,omitempty"`
	ValueQuantity        *Quantity        `json:"valueQuantity,omitempty" bson:"valueQuantity,omitempty"`
	ValueDateTime        *string          `json:"valueDateTime,omitempty" bson:"valueDateTime,omitempty"`
	ValueDate            *string          `json:"valueDate,omitempty" bson:"valueDate,omitempty"`
	ValueTime            *string          `json:"valueTime,omitempty" bson:"valueTime,omitempty"`
}
