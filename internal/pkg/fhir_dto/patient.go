package fhir_dto

type Patient struct {
	ResourceType string       `json:"resourceType" bson:"resourceType"`
	ID           string       `json:"id,omitempty" bson:"id,omitempty"`
	Meta         *Meta        `json:"meta,omitempty" bson:"meta,omitempty"`
	Text         *Narrative   `json:"text,omitempty" bson:"text,omitempty"`
	Identifier   []Identifier `json:"identifier,omitempty" bson:"identifier,omitempty"`
	Name         []HumanName  `json:"name,omitempty" bson:"name,omitempty"`
	Gender       string       `json:"gender,omitempty" bson:"gender,omitempty"`
	BirthDate    string       `json:"birthDate,omitempty" bson:"birthDate,omitempty"`
}
