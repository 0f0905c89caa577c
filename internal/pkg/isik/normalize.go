package isik

import (
	"regexp"
	"strconv"
	"strings"

	"isik-bericht-service/internal/pkg/constvars"
	"isik-bericht-service/internal/pkg/fhir_dto"
)

// numericStringPattern accepts an optional sign, digits, an optional decimal
// part separated by either a period or a comma, and an optional exponent.
// The comma tolerance covers values typed with a German locale keyboard.
var numericStringPattern = regexp.MustCompile(`^-?\d+(?:[.,]\d+)?(?:[eE][+-]?\d+)?$`)

// IsNumericString reports whether the whole trimmed string is a number.
func IsNumericString(s string) bool {
	return numericStringPattern.MatchString(strings.TrimSpace(s))
}

// NormalizeQuantityValue coerces a quantity value that arrived as a numeric
// string into a real number, replacing a comma decimal separator with a
// period. Non-numeric strings are left untouched.
func NormalizeQuantityValue(q *fhir_dto.Quantity) {
	if q == nil || q.Value == nil || q.Value.Str == nil {
		return
	}
	raw := *q.Value.Str
	if !IsNumericString(raw) {
		return
	}
	norm := strings.Replace(strings.TrimSpace(raw), ",", ".", 1)
	num, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return
	}
	q.Value = fhir_dto.NumberValue(num)
}

// SanitizeObservation strips the derivedFrom linkage, which is not carried
// into the exported document, and normalizes the primary and component
// quantity values. The observation is mutated in place and returned.
func SanitizeObservation(obs *fhir_dto.Observation) *fhir_dto.Observation {
	if obs == nil || obs.ResourceType != constvars.ResourceObservation {
		return obs
	}
	obs.DerivedFrom = nil
	NormalizeQuantityValue(obs.ValueQuantity)
	for i := range obs.Component {
		NormalizeQuantityValue(obs.Component[i].ValueQuantity)
	}
	return obs
}

// HasDirectValue reports whether the observation carries one of the nine
// recognized value slots. Panel observations that only group components
// have none and are excluded from the document to avoid duplicate reporting.
func HasDirectValue(obs *fhir_dto.Observation) bool {
	if obs == nil {
		return false
	}
	return obs.ValueString != nil ||
		obs.ValueBoolean != nil ||
		obs.ValueInteger != nil ||
		obs.ValueDecimal != nil ||
		obs.ValueCodeableConcept != nil ||
		obs.ValueQuantity != nil ||
		obs.ValueDateTime != nil ||
		obs.ValueDate != nil ||
		obs.ValueTime != nil
}
