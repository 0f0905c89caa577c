package isik

import (
	"regexp"
	"strings"

	"isik-bericht-service/internal/pkg/fhir_dto"
)

var patientReferencePattern = regexp.MustCompile(`(?i)(^|/)Patient/([^/?#]+)`)

// ResolveSubjectReference returns the subject of the response as a plain
// reference/display pair, or nil when the response carries no usable subject.
func ResolveSubjectReference(qr *fhir_dto.QuestionnaireResponse) *fhir_dto.Reference {
	if qr == nil || qr.Subject == nil {
		return nil
	}
	if qr.Subject.Reference == "" && qr.Subject.Display == "" {
		return nil
	}
	return &fhir_dto.Reference{
		Reference: qr.Subject.Reference,
		Display:   qr.Subject.Display,
	}
}

// ResolveEncounterReference mirrors ResolveSubjectReference for the
// response's encounter.
func ResolveEncounterReference(qr *fhir_dto.QuestionnaireResponse) *fhir_dto.Reference {
	if qr == nil || qr.Encounter == nil {
		return nil
	}
	if qr.Encounter.Reference == "" && qr.Encounter.Display == "" {
		return nil
	}
	return &fhir_dto.Reference{
		Reference: qr.Encounter.Reference,
		Display:   qr.Encounter.Display,
	}
}

// ResolveAuthorDisplay prefers the author's display, then its raw reference
// string, then the supplied fallback.
func ResolveAuthorDisplay(qr *fhir_dto.QuestionnaireResponse, fallback string) string {
	if qr == nil || qr.Author == nil {
		return fallback
	}
	if qr.Author.Display != "" {
		return qr.Author.Display
	}
	if qr.Author.Reference != "" {
		return qr.Author.Reference
	}
	return fallback
}

// ExtractPatientIDFromReference pulls the {id} out of a `.../Patient/{id}`
// reference string, tolerating trailing path, query or fragment segments.
func ExtractPatientIDFromReference(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	m := patientReferencePattern.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// FindPatientIdentifierValue searches a Patient's identifiers for the pid
// value: first an identifier whose type coding carries the code "pid", then
// one whose system contains "pid", then the first identifier. The precedence
// is load-bearing for downstream consumers and must not be reordered.
func FindPatientIdentifierValue(patient *fhir_dto.Patient) string {
	if patient == nil {
		return ""
	}
	for _, ident := range patient.Identifier {
		if ident.Type == nil {
			continue
		}
		for _, coding := range ident.Type.Coding {
			if strings.EqualFold(coding.Code, "pid") {
				return ident.Value
			}
		}
	}
	for _, ident := range patient.Identifier {
		if strings.Contains(strings.ToLower(ident.System), "pid") {
			return ident.Value
		}
	}
	if len(patient.Identifier) > 0 {
		return patient.Identifier[0].Value
	}
	return ""
}

// CodingDisplay returns the first coding's display, falling back to its code.
func CodingDisplay(codings []fhir_dto.Coding) string {
	if len(codings) == 0 {
		return ""
	}
	if codings[0].Display != "" {
		return codings[0].Display
	}
	return codings[0].Code
}

// FirstFamilyName returns the family part of a Patient's first name entry.
func FirstFamilyName(patient *fhir_dto.Patient) string {
	if patient == nil || len(patient.Name) == 0 {
		return ""
	}
	return patient.Name[0].Family
}
