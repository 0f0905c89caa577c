package isik

import (
	"testing"

	"isik-bericht-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
)

func TestResolveSubjectReference(t *testing.T) {
	t.Run("Reference And Display Pair", func(t *testing.T) {
		qr := &fhir_dto.QuestionnaireResponse{
			Subject: &fhir_dto.Reference{Reference: "Patient/42", Display: "Erika Musterfrau"},
		}

		ref := ResolveSubjectReference(qr)

		assert.NotNil(t, ref)
		assert.Equal(t, "Patient/42", ref.Reference)
		assert.Equal(t, "Erika Musterfrau", ref.Display)
	})

	t.Run("Nil Subject", func(t *testing.T) {
		assert.Nil(t, ResolveSubjectReference(&fhir_dto.QuestionnaireResponse{}))
		assert.Nil(t, ResolveSubjectReference(nil))
	})

	t.Run("Empty Reference And Display", func(t *testing.T) {
		qr := &fhir_dto.QuestionnaireResponse{Subject: &fhir_dto.Reference{}}
		assert.Nil(t, ResolveSubjectReference(qr))
	})
}

func TestResolveAuthorDisplay(t *testing.T) {
	t.Run("Display Wins", func(t *testing.T) {
		qr := &fhir_dto.QuestionnaireResponse{
			Author: &fhir_dto.Reference{Reference: "Practitioner/9", Display: "Dr. Beispiel"},
		}
		assert.Equal(t, "Dr. Beispiel", ResolveAuthorDisplay(qr, "fallback"))
	})

	t.Run("Reference When No Display", func(t *testing.T) {
		qr := &fhir_dto.QuestionnaireResponse{
			Author: &fhir_dto.Reference{Reference: "Practitioner/9"},
		}
		assert.Equal(t, "Practitioner/9", ResolveAuthorDisplay(qr, "fallback"))
	})

	t.Run("Fallback When No Author", func(t *testing.T) {
		assert.Equal(t, "fallback", ResolveAuthorDisplay(&fhir_dto.QuestionnaireResponse{}, "fallback"))
		assert.Equal(t, "fallback", ResolveAuthorDisplay(nil, "fallback"))
	})
}

func TestExtractPatientIDFromReference(t *testing.T) {
	t.Run("Relative Reference", func(t *testing.T) {
		id, ok := ExtractPatientIDFromReference("Patient/42")
		assert.True(t, ok)
		assert.Equal(t, "42", id)
	})

	t.Run("Absolute URL With Query", func(t *testing.T) {
		id, ok := ExtractPatientIDFromReference("http://fhir.example.org/fhir/Patient/abc-1?x=1")
		assert.True(t, ok)
		assert.Equal(t, "abc-1", id)
	})

	t.Run("Fragment Is Not Part Of The ID", func(t *testing.T) {
		id, ok := ExtractPatientIDFromReference("Patient/42#frag")
		assert.True(t, ok)
		assert.Equal(t, "42", id)
	})

	t.Run("Case Insensitive Resource Name", func(t *testing.T) {
		id, ok := ExtractPatientIDFromReference("patient/42")
		assert.True(t, ok)
		assert.Equal(t, "42", id)
	})

	t.Run("Other Resource Types Do Not Match", func(t *testing.T) {
		_, ok := ExtractPatientIDFromReference("Group/7")
		assert.False(t, ok)

		_, ok = ExtractPatientIDFromReference("")
		assert.False(t, ok)
	})
}

func TestFindPatientIdentifierValue(t *testing.T) {
	t.Run("Type Coding Code Pid Wins", func(t *testing.T) {
		patient := &fhir_dto.Patient{
			Identifier: []fhir_dto.Identifier{
				{System: "urn:other", Value: "first"},
				{System: "http://example.org/pid-system", Value: "by-system"},
				{
					Type: &fhir_dto.CodeableConcept{
						Coding: []fhir_dto.Coding{{Code: "PID"}},
					},
					Value: "by-type",
				},
			},
		}

		assert.Equal(t, "by-type", FindPatientIdentifierValue(patient), "type coding match has highest precedence, case-insensitively")
	})

	t.Run("System Substring Pid Beats Positional Fallback", func(t *testing.T) {
		patient := &fhir_dto.Patient{
			Identifier: []fhir_dto.Identifier{
				{System: "urn:other", Value: "first"},
				{System: "http://example.org/PID", Value: "by-system"},
			},
		}

		assert.Equal(t, "by-system", FindPatientIdentifierValue(patient))
	})

	t.Run("First Identifier As Last Resort", func(t *testing.T) {
		patient := &fhir_dto.Patient{
			Identifier: []fhir_dto.Identifier{
				{System: "urn:other", Value: "first"},
				{System: "urn:another", Value: "second"},
			},
		}

		assert.Equal(t, "first", FindPatientIdentifierValue(patient))
	})

	t.Run("No Identifiers", func(t *testing.T) {
		assert.Equal(t, "", FindPatientIdentifierValue(&fhir_dto.Patient{}))
		assert.Equal(t, "", FindPatientIdentifierValue(nil))
	})
}

func TestCodingDisplay(t *testing.T) {
	t.Run("Display Preferred Over Code", func(t *testing.T) {
		codings := []fhir_dto.Coding{{Code: "8302-2", Display: "Körpergröße"}}
		assert.Equal(t, "Körpergröße", CodingDisplay(codings))
	})

	t.Run("Code Fallback", func(t *testing.T) {
		codings := []fhir_dto.Coding{{Code: "8302-2"}}
		assert.Equal(t, "8302-2", CodingDisplay(codings))
	})

	t.Run("Empty Slice", func(t *testing.T) {
		assert.Equal(t, "", CodingDisplay(nil))
	})
}
