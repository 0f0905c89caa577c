package isik

import (
	"testing"

	"isik-bericht-service/internal/pkg/fhir_dto"

	"github.com/stretchr/testify/assert"
)

func newTestResponse() *fhir_dto.QuestionnaireResponse {
	return &fhir_dto.QuestionnaireResponse{
		ResourceType: "QuestionnaireResponse",
		ID:           "qr-1",
		Status:       "completed",
		Authored:     "2026-01-05T09:30:00Z",
		Subject:      &fhir_dto.Reference{Reference: "Patient/42", Display: "Erika Musterfrau"},
	}
}

func newHeightObservation() *fhir_dto.Observation {
	return &fhir_dto.Observation{
		ResourceType: "Observation",
		ID:           "obs-height",
		Status:       "final",
		Code:         &fhir_dto.CodeableConcept{Text: "Größe"},
		ValueQuantity: &fhir_dto.Quantity{
			Value: fhir_dto.StringValue("180,5"),
			Unit:  "cm",
		},
		DerivedFrom: []fhir_dto.Reference{{Reference: "QuestionnaireResponse/qr-1"}},
	}
}

func TestAssembleBerichtBundleGuard(t *testing.T) {
	t.Run("Nil Response", func(t *testing.T) {
		assert.Nil(t, AssembleBerichtBundle(AssembleInput{}))
	})

	t.Run("Wrong ResourceType", func(t *testing.T) {
		input := AssembleInput{
			QuestionnaireResponse: &fhir_dto.QuestionnaireResponse{ResourceType: "Patient"},
		}
		assert.Nil(t, AssembleBerichtBundle(input))
	})
}

func TestAssembleBerichtBundleStructure(t *testing.T) {
	qr := newTestResponse()
	obs := newHeightObservation()
	bundle := AssembleBerichtBundle(AssembleInput{
		QuestionnaireResponse: qr,
		Observations:          []*fhir_dto.Observation{obs},
		Meta:                  AssembleMeta{GeneratedAt: "2026-01-05T10:00:00Z"},
	})

	t.Run("Bundle Envelope", func(t *testing.T) {
		assert.Equal(t, "Bundle", bundle.ResourceType)
		assert.Equal(t, "document", bundle.Type)
		assert.Equal(t, "2026-01-05T10:00:00Z", bundle.Timestamp)
		assert.Equal(t, []string{ProfileBerichtBundle}, bundle.Meta.Profile)
		assert.Equal(t, "urn:ietf:rfc:3986", bundle.Identifier.System)
		assert.Contains(t, bundle.Identifier.Value, "urn:uuid:")
	})

	t.Run("Entry Order", func(t *testing.T) {
		assert.Len(t, bundle.Entry, 4)

		comp, ok := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.True(t, ok, "first entry must be the Composition")
		assert.Equal(t, "Composition/"+comp.ID, bundle.Entry[0].FullUrl)

		patient, ok := bundle.Entry[1].Resource.(*fhir_dto.Patient)
		assert.True(t, ok, "second entry must be the Patient stub")
		assert.Equal(t, "42", patient.ID)

		entryQR, ok := bundle.Entry[2].Resource.(*fhir_dto.QuestionnaireResponse)
		assert.True(t, ok, "third entry must be the QuestionnaireResponse")
		assert.Same(t, qr, entryQR, "the bundle shares the caller's response object")

		_, ok = bundle.Entry[3].Resource.(*fhir_dto.Observation)
		assert.True(t, ok, "fourth entry must be the Observation")
	})

	t.Run("Patient Stub", func(t *testing.T) {
		patient := bundle.Entry[1].Resource.(*fhir_dto.Patient)
		assert.Equal(t, "Patient", patient.ResourceType)
		assert.Equal(t, "Patient/42", bundle.Entry[1].FullUrl)
		assert.Equal(t, []fhir_dto.Identifier{{System: "urn:source-id", Value: "42"}}, patient.Identifier)
	})

	t.Run("Composition Header", func(t *testing.T) {
		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, "final", comp.Status)
		assert.Equal(t, "ISiK Bericht", comp.Title)
		assert.Equal(t, "2026-01-05T10:00:00Z", comp.Date)
		assert.Equal(t, []string{ProfileBerichtSubSysteme}, comp.Meta.Profile)
		assert.Equal(t, "urn:ietf:rfc:3986", comp.Identifier.System)
		assert.Equal(t, "urn:uuid:"+comp.ID, comp.Identifier.Value)
		assert.Equal(t, "Patient/42", comp.Subject.Reference, "subject points at the in-bundle patient")
		assert.Equal(t, []fhir_dto.Reference{{Display: "LHC-Forms Demo App"}}, comp.Author)

		assert.Equal(t, "http://dvmd.de/fhir/CodeSystem/kdl", comp.Type.Coding[0].System)
		assert.Equal(t, "AM170103", comp.Type.Coding[0].Code)
		assert.Equal(t, "Patientenfragebogen", comp.Type.Coding[0].Display)
		assert.Equal(t, "AM170103 - Patientenfragebogen", comp.Type.Text)

		assert.NotNil(t, comp.Text)
		assert.Contains(t, comp.Text.Div, "Dokumenten-Header")
	})

	t.Run("Sections Reference Entries", func(t *testing.T) {
		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Len(t, comp.Section, 2)
		assert.Equal(t, "QuestionnaireResponse", comp.Section[0].Title)
		assert.Equal(t, "QuestionnaireResponse/qr-1", comp.Section[0].Entry[0].Reference)
		assert.Equal(t, "Größe", comp.Section[1].Title)
		assert.Equal(t, "Observation/obs-height", comp.Section[1].Entry[0].Reference)
		assert.NotNil(t, comp.Section[1].Text)
	})

	t.Run("Quantity Normalized Through Assembly", func(t *testing.T) {
		entryObs := bundle.Entry[3].Resource.(*fhir_dto.Observation)
		assert.NotNil(t, entryObs.ValueQuantity.Value.Num)
		assert.Equal(t, 180.5, *entryObs.ValueQuantity.Value.Num)
		assert.Nil(t, entryObs.DerivedFrom, "derivedFrom must be stripped")
	})
}

func TestAssembleBerichtBundleMutations(t *testing.T) {
	t.Run("Response Gains Narrative And Profile", func(t *testing.T) {
		qr := newTestResponse()

		AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.NotNil(t, qr.Text)
		assert.Contains(t, qr.Text.Div, "Fragebogen")
		assert.Equal(t, []string{ProfileFormularDaten}, qr.Meta.Profile)
	})

	t.Run("Profile Append Is Idempotent", func(t *testing.T) {
		qr := newTestResponse()

		AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})
		AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.Equal(t, []string{ProfileFormularDaten}, qr.Meta.Profile, "repeated assembly must not duplicate the profile")
	})

	t.Run("Caller Observation Gains Narrative But Bundle Copy Does Not", func(t *testing.T) {
		qr := newTestResponse()
		obs := newHeightObservation()

		bundle := AssembleBerichtBundle(AssembleInput{
			QuestionnaireResponse: qr,
			Observations:          []*fhir_dto.Observation{obs},
		})

		assert.NotNil(t, obs.Text, "caller's observation carries the narrative")

		entryObs := bundle.Entry[3].Resource.(*fhir_dto.Observation)
		assert.NotSame(t, obs, entryObs)
		assert.Nil(t, entryObs.Text, "the in-bundle copy is taken before narrative attachment")
	})

	t.Run("Response ID Preserved When Present", func(t *testing.T) {
		qr := newTestResponse()

		AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.Equal(t, "qr-1", qr.ID)
	})

	t.Run("Response ID Assigned When Missing", func(t *testing.T) {
		qr := newTestResponse()
		qr.ID = ""

		bundle := AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.NotEmpty(t, qr.ID)
		assert.Equal(t, "QuestionnaireResponse/"+qr.ID, bundle.Entry[2].FullUrl)
	})

	t.Run("Questionnaire Title Extension Replaced Not Duplicated", func(t *testing.T) {
		qr := newTestResponse()
		qr.QuestionnaireExt = &fhir_dto.PrimitiveExtension{
			Extension: []fhir_dto.Extension{
				{Url: "http://hl7.org/fhir/StructureDefinition/display", ValueString: "Alt"},
			},
		}

		AssembleBerichtBundle(AssembleInput{
			QuestionnaireResponse: qr,
			Meta:                  AssembleMeta{QuestionnaireTitle: "Patientenfragebogen"},
		})

		assert.Len(t, qr.QuestionnaireExt.Extension, 1)
		assert.Equal(t, "Patientenfragebogen", qr.QuestionnaireExt.Extension[0].ValueString)
	})
}

func TestAssembleBerichtBundleObservationFiltering(t *testing.T) {
	t.Run("Panel Observations Are Dropped", func(t *testing.T) {
		qr := newTestResponse()
		panel := &fhir_dto.Observation{
			ResourceType: "Observation",
			ID:           "obs-panel",
			Code:         &fhir_dto.CodeableConcept{Text: "Blutdruck"},
			Component: []fhir_dto.ObservationComponent{
				{ValueQuantity: &fhir_dto.Quantity{Value: fhir_dto.NumberValue(120)}},
			},
		}
		height := newHeightObservation()

		bundle := AssembleBerichtBundle(AssembleInput{
			QuestionnaireResponse: qr,
			Observations:          []*fhir_dto.Observation{panel, height, nil},
		})

		assert.Len(t, bundle.Entry, 4, "panel and nil observations are excluded")
		entryObs := bundle.Entry[3].Resource.(*fhir_dto.Observation)
		assert.Equal(t, "obs-height", entryObs.ID)
	})

	t.Run("Input Order Preserved", func(t *testing.T) {
		qr := newTestResponse()
		first := newHeightObservation()
		first.ID = "obs-a"
		second := newHeightObservation()
		second.ID = "obs-b"
		second.Code = &fhir_dto.CodeableConcept{Text: "Gewicht"}

		bundle := AssembleBerichtBundle(AssembleInput{
			QuestionnaireResponse: qr,
			Observations:          []*fhir_dto.Observation{first, second},
		})

		assert.Equal(t, "obs-a", bundle.Entry[3].Resource.(*fhir_dto.Observation).ID)
		assert.Equal(t, "obs-b", bundle.Entry[4].Resource.(*fhir_dto.Observation).ID)

		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, "Größe", comp.Section[1].Title)
		assert.Equal(t, "Gewicht", comp.Section[2].Title)
	})

	t.Run("Observation Without ID Gets One", func(t *testing.T) {
		qr := newTestResponse()
		obs := newHeightObservation()
		obs.ID = ""

		bundle := AssembleBerichtBundle(AssembleInput{
			QuestionnaireResponse: qr,
			Observations:          []*fhir_dto.Observation{obs},
		})

		entryObs := bundle.Entry[3].Resource.(*fhir_dto.Observation)
		assert.NotEmpty(t, entryObs.ID)
		assert.Equal(t, "Observation/"+entryObs.ID, bundle.Entry[3].FullUrl)
		assert.Empty(t, obs.ID, "the caller's observation keeps its missing id")
	})
}

func TestAssembleBerichtBundleSubjectHandling(t *testing.T) {
	t.Run("Non Patient Subject Kept Without Stub", func(t *testing.T) {
		qr := newTestResponse()
		qr.Subject = &fhir_dto.Reference{Reference: "Group/7"}

		bundle := AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.Len(t, bundle.Entry, 2, "no Patient stub for a Group subject")
		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, "Group/7", comp.Subject.Reference)
	})

	t.Run("No Subject At All", func(t *testing.T) {
		qr := newTestResponse()
		qr.Subject = nil

		bundle := AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.Len(t, bundle.Entry, 2)
		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Nil(t, comp.Subject)
	})

	t.Run("Encounter Carried Over", func(t *testing.T) {
		qr := newTestResponse()
		qr.Encounter = &fhir_dto.Reference{Reference: "Encounter/5"}

		bundle := AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, "Encounter/5", comp.Encounter.Reference)
	})

	t.Run("Author Display From Response", func(t *testing.T) {
		qr := newTestResponse()
		qr.Author = &fhir_dto.Reference{Display: "Dr. Beispiel"}

		bundle := AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, "Dr. Beispiel", comp.Author[0].Display)
	})
}

func TestAssembleBerichtBundleTimestamps(t *testing.T) {
	t.Run("Override Applied Everywhere", func(t *testing.T) {
		qr := newTestResponse()

		bundle := AssembleBerichtBundle(AssembleInput{
			QuestionnaireResponse: qr,
			Meta:                  AssembleMeta{GeneratedAt: "2026-02-01T00:00:00Z"},
		})

		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, "2026-02-01T00:00:00Z", bundle.Timestamp)
		assert.Equal(t, "2026-02-01T00:00:00Z", comp.Date)
	})

	t.Run("Default Timestamp Is Set", func(t *testing.T) {
		qr := newTestResponse()

		bundle := AssembleBerichtBundle(AssembleInput{QuestionnaireResponse: qr})

		assert.NotEmpty(t, bundle.Timestamp)
		comp := bundle.Entry[0].Resource.(*fhir_dto.Composition)
		assert.Equal(t, bundle.Timestamp, comp.Date)
	})
}
