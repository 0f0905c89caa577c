package fhir_dto

import "github.com/goccy/go-json"

type Reference struct {
	Reference string `json:"reference,omitempty" bson:"reference,omitempty"`
	Type      string `json:"type,omitempty" bson:"type,omitempty"`
	Display   string `json:"display,omitempty" bson:"display,omitempty"`
}

// UnmarshalJSON tolerates references sent as a bare string, which some
// clients emit for QuestionnaireResponse.subject and author.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		r.Reference = raw
		return nil
	}
	type reference Reference
	var ref reference
	if err := json.Unmarshal(data, &ref); err != nil {
		return err
	}
	*r = Reference(ref)
	return nil
}

type Identifier struct {
	Use    string           `json:"use,omitempty" bson:"use,omitempty"`
	System string           `json:"system,omitempty" bson:"system,omitempty"`
	Value  string           `json:"value,omitempty" bson:"value,omitempty"`
	Type   *CodeableConcept `json:"type,omitempty" bson:"type,omitempty"`
}

type CodeableConcept struct {
	Coding []Coding `json:"coding,omitempty" bson:"coding,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
}

type Coding struct {
	System  string `json:"system,omitempty" bson:"system,omitempty"`
	Version string `json:"version,omitempty" bson:"version,omitempty"`
	Code    string `json:"code,omitempty" bson:"code,omitempty"`
	Display string `json:"display,omitempty" bson:"display,omitempty"`
}

type Period struct {
	Start string `json:"start,omitempty" bson:"start,omitempty"`
	End   string `json:"end,omitempty" bson:"end,omitempty"`
}

type HumanName struct {
	Use    string   `json:"use,omitempty" bson:"use,omitempty"`
	Text   string   `json:"text,omitempty" bson:"text,omitempty"`
	Family string   `json:"family,omitempty" bson:"family,omitempty"`
	Given  []string `json:"given,omitempty" bson:"given,omitempty"`
	Prefix []string `json:"prefix,omitempty" bson:"prefix,omitempty"`
}

type Meta struct {
	VersionID   string   `json:"versionId,omitempty" bson:"versionId,omitempty"`
	LastUpdated string   `json:"lastUpdated,omitempty" bson:"lastUpdated,omitempty"`
	Source      string   `json:"source,omitempty" bson:"source,omitempty"`
	Profile     []string `json:"profile,omitempty" bson:"profile,omitempty"`
	Security    []Coding `json:"security,omitempty" bson:"security,omitempty"`
	Tag         []Coding `json:"tag,omitempty" bson:"tag,omitempty"`
}

// Narrative is the human-readable XHTML summary embedded in a resource.
type Narrative struct {
	Status string `json:"status,omitempty" bson:"status,omitempty"`
	Div    string `json:"div,omitempty" bson:"div,omitempty"`
}

// Quantity carries a measured amount. Value may arrive from loosely
// validated sources as a JSON string instead of a number, so it is kept
// behind QuantityValue until normalization.
type Quantity struct {
	Value      *QuantityValue `json:"value,omitempty" bson:"value,omitempty"`
	Comparator string         `json:"comparator,omitempty" bson:"comparator,omitempty"`
	Unit       string         `json:"unit,omitempty" bson:"unit,omitempty"`
	System     string         `json:"system,omitempty" bson:"system,omitempty"`
	Code       string         `json:"code,omitempty" bson:"code,omitempty"`
}

// QuantityValue is either a number or the original string when the source
// did not send a JSON number. Exactly one of Num and Str is set.
type QuantityValue struct {
	Num *float64
	Str *string
}

func NumberValue(v float64) *QuantityValue {
	return &QuantityValue{Num: &v}
}

func StringValue(s string) *QuantityValue {
	return &QuantityValue{Str: &s}
}

func (q *QuantityValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		q.Num = &num
		q.Str = nil
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	q.Str = &str
	q.Num = nil
	return nil
}

func (q QuantityValue) MarshalJSON() ([]byte, error) {
	if q.Num != nil {
		return json.Marshal(*q.Num)
	}
	if q.Str != nil {
		return json.Marshal(*q.Str)
	}
	return []byte("null"), nil
}

type Extension struct {
	Url         string `json:"url,omitempty" bson:"url,omitempty"`
	ValueString string `json:"valueString,omitempty" bson:"valueString,omitempty"`
	ValueCode   string `json:"valueCode,omitempty" bson:"valueCode,omitempty"`
}

// PrimitiveExtension is the companion element for a primitive field,
// e.g. the `_questionnaire` element next to `questionnaire`.
type PrimitiveExtension struct {
	Extension []Extension `json:"extension,omitempty" bson:"extension,omitempty"`
}
