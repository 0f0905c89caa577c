package fhir_dto

type Bundle struct {
	ResourceType string        `json:"resourceType" bson:"resourceType"`
	ID           string        `json:"id,omitempty" bson:"id,omitempty"`
	Meta         *Meta         `json:"meta,omitempty" bson:"meta,omitempty"`
	Identifier   *Identifier   `json:"identifier,omitempty" bson:"identifier,omitempty"`
	Type         string        `json:"type,omitempty" bson:"type,omitempty"`
	Timestamp    string        `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	Entry        []BundleEntry `json:"entry,omitempty" bson:"entry,omitempty"`
}

type BundleEntry struct {
	FullUrl  string      `json:"fullUrl,omitempty" bson:"fullUrl,omitempty"`
	Resource interface{} `json:"resource,omitempty" bson:"resource,omitempty"`
}

type OperationOutcome struct {
	ResourceType string                  `json:"resourceType" bson:"resourceType"`
	Issue        []OperationOutcomeIssue `json:"issue,omitempty" bson:"issue,omitempty"`
}

type OperationOutcomeIssue struct {
	Severity    string `json:"severity,omitempty" bson:"severity,omitempty"`
	Code        string `json:"code,omitempty" bson:"code,omitempty"`
	Diagnostics string `json:"diagnostics,omitempty" bson:"diagnostics,omitempty"`
}
