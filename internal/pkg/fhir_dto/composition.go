package fhir_dto

type Composition struct {
	ResourceType string               `json:"resourceType" bson:"resourceType"`
	ID           string               `json:"id,omitempty" bson:"id,omitempty"`
	Meta         *Meta                `json:"meta,omitempty" bson:"meta,omitempty"`
	Text         *Narrative           `json:"text,omitempty" bson:"text,omitempty"`
	Identifier   *Identifier          `json:"identifier,omitempty" bson:"identifier,omitempty"`
	Status       string               `json:"status,omitempty" bson:"status,omitempty"`
	Type         *CodeableConcept     `json:"type,omitempty" bson:"type,omitempty"`
	Subject      *Reference           `json:"subject,omitempty" bson:"subject,omitempty"`
	Encounter    *Reference           `json:"encounter,omitempty" bson:"encounter,omitempty"`
	Date         string               `json:"date,omitempty" bson:"date,omitempty"`
	Author       []Reference          `json:"author,omitempty" bson:"author,omitempty"`
	Title        string               `json:"title,omitempty" bson:"title,omitempty"`
	Section      []CompositionSection `json:"section,omitempty" bson:"section,omitempty"`
}

type CompositionSection struct {
	Title string      `json:"title,omitempty" bson:"title,omitempty"`
	Text  *Narrative  `json:"text,omitempty" bson:"text,omitempty"`
	Entry []Reference `json:"entry,omitempty" bson:"entry,omitempty"`
}
