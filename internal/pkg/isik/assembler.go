package isik

import (
	"time"

	"isik-bericht-service/internal/pkg/constvars"
	"isik-bericht-service/internal/pkg/fhir_dto"

	"github.com/google/uuid"
)

// Fixed literals of the ISiK "Bericht aus Subsystemen" exchange. Downstream
// primary systems match on these values, so they are not configurable.
const (
	ProfileBerichtBundle     = "https://gematik.de/fhir/isik/StructureDefinition/ISiKBerichtBundle"
	ProfileBerichtSubSysteme = "https://gematik.de/fhir/isik/StructureDefinition/ISiKBerichtSubSysteme"
	ProfileFormularDaten     = "https://gematik.de/fhir/isik/StructureDefinition/ISiKFormularDaten"

	systemKDL              = "http://dvmd.de/fhir/CodeSystem/kdl"
	systemRFC3986          = "urn:ietf:rfc:3986"
	systemSourceID         = "urn:source-id"
	systemDisplayExtension = "http://hl7.org/fhir/StructureDefinition/display"

	kdlCodePatientenfragebogen    = "AM170103"
	kdlDisplayPatientenfragebogen = "Patientenfragebogen"

	berichtTitle         = "ISiK Bericht"
	defaultAuthorDisplay = "LHC-Forms Demo App"

	questionnaireResponseSectionTitle = "QuestionnaireResponse"
)

type AssembleMeta struct {
	// GeneratedAt overrides the document instant; RFC 3339. Empty
	// means "now".
	GeneratedAt string
	// QuestionnaireTitle, when set, is attached to the response's
	// questionnaire element as a display extension.
	QuestionnaireTitle string
}

type AssembleInput struct {
	QuestionnaireResponse *fhir_dto.QuestionnaireResponse
	Observations          []*fhir_dto.Observation
	Meta                  AssembleMeta
}

// AssembleBerichtBundle packages a QuestionnaireResponse and its derived
// Observations into an ISiK document Bundle: a generated Composition first,
// then a synthesized Patient stub when the subject resolves to one, then the
// response and each observation that carries a direct value.
//
// The input response and observations are mutated: narratives are attached,
// quantities normalized and the ISiK profile ensured on the response. A nil
// return means the response was missing or not a QuestionnaireResponse; no
// other input shape fails the call.
func AssembleBerichtBundle(input AssembleInput) *fhir_dto.Bundle {
	qr := input.QuestionnaireResponse
	if qr == nil || qr.ResourceType != constvars.ResourceQuestionnaireResponse {
		return nil
	}

	observations := make([]*fhir_dto.Observation, 0, len(input.Observations))
	for _, obs := range input.Observations {
		if obs == nil {
			continue
		}
		SanitizeObservation(obs)
		if HasDirectValue(obs) {
			observations = append(observations, obs)
		}
	}

	nowISO := input.Meta.GeneratedAt
	if nowISO == "" {
		nowISO = time.Now().UTC().Format(time.RFC3339)
	}

	compositionID := uuid.New().String()
	if qr.ID == "" {
		qr.ID = uuid.New().String()
	}
	observationIDs := make([]string, len(observations))
	for i, obs := range observations {
		if obs.ID != "" {
			observationIDs[i] = obs.ID
		} else {
			observationIDs[i] = uuid.New().String()
		}
	}

	authorDisplay := ResolveAuthorDisplay(qr, defaultAuthorDisplay)
	subjectRef := ResolveSubjectReference(qr)
	encounterRef := ResolveEncounterReference(qr)

	// When the subject points at a Patient, embed a minimal stub and
	// prefer the in-bundle reference for all linkage.
	var patientEntry *fhir_dto.BundleEntry
	var patientStub *fhir_dto.Patient
	var patientRefInBundle *fhir_dto.Reference
	if subjectRef != nil {
		if pid, ok := ExtractPatientIDFromReference(subjectRef.Reference); ok {
			patientStub = &fhir_dto.Patient{
				ResourceType: constvars.ResourcePatient,
				ID:           pid,
				Identifier: []fhir_dto.Identifier{
					{System: systemSourceID, Value: pid},
				},
			}
			patientEntry = &fhir_dto.BundleEntry{
				FullUrl:  constvars.ResourcePatient + "/" + pid,
				Resource: patientStub,
			}
			patientRefInBundle = &fhir_dto.Reference{Reference: patientEntry.FullUrl}
		}
	}

	compositionRef := constvars.ResourceComposition + "/" + compositionID
	responseRef := constvars.ResourceQuestionnaireResponse + "/" + qr.ID

	composition := &fhir_dto.Composition{
		ResourceType: constvars.ResourceComposition,
		ID:           compositionID,
		Status:       constvars.FhirCompositionStatusFinal,
		Identifier: &fhir_dto.Identifier{
			System: systemRFC3986,
			Value:  "urn:uuid:" + compositionID,
		},
		Meta: &fhir_dto.Meta{Profile: []string{ProfileBerichtSubSysteme}},
		Type: &fhir_dto.CodeableConcept{
			Coding: []fhir_dto.Coding{
				{
					System:  systemKDL,
					Code:    kdlCodePatientenfragebogen,
					Display: kdlDisplayPatientenfragebogen,
				},
			},
			Text: kdlCodePatientenfragebogen + " - " + kdlDisplayPatientenfragebogen,
		},
		Date:   nowISO,
		Title:  berichtTitle,
		Author: []fhir_dto.Reference{{Display: authorDisplay}},
		Section: []fhir_dto.CompositionSection{
			{
				Title: questionnaireResponseSectionTitle,
				Text:  RenderQuestionnaireResponseNarrative(qr),
				Entry: []fhir_dto.Reference{{Reference: responseRef}},
			},
		},
	}
	if patientRefInBundle != nil {
		composition.Subject = patientRefInBundle
	} else if subjectRef != nil {
		composition.Subject = subjectRef
	}
	composition.Encounter = encounterRef

	for i, obs := range observations {
		composition.Section = append(composition.Section, fhir_dto.CompositionSection{
			Title: ObservationTitle(obs),
			Text:  RenderObservationNarrative(obs),
			Entry: []fhir_dto.Reference{
				{Reference: constvars.ResourceObservation + "/" + observationIDs[i]},
			},
		})
	}

	// Document header summary. Cosmetic: a nil narrative leaves the
	// Composition otherwise valid.
	headerSubjectRef := ""
	if patientRefInBundle != nil {
		headerSubjectRef = patientRefInBundle.Reference
	} else if subjectRef != nil {
		headerSubjectRef = subjectRef.Reference
	}
	composition.Text = RenderCompositionNarrative(composition, CompositionNarrativeOptions{
		Patient:       patientStub,
		SubjectRef:    headerSubjectRef,
		AuthorDisplay: authorDisplay,
	})

	bundle := &fhir_dto.Bundle{
		ResourceType: constvars.ResourceBundle,
		Type:         constvars.FhirBundleTypeDocument,
		Timestamp:    nowISO,
		Identifier: &fhir_dto.Identifier{
			System: systemRFC3986,
			Value:  "urn:uuid:" + uuid.New().String(),
		},
		Meta: &fhir_dto.Meta{Profile: []string{ProfileBerichtBundle}},
	}
	bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
		FullUrl:  compositionRef,
		Resource: composition,
	})
	if patientEntry != nil {
		bundle.Entry = append(bundle.Entry, *patientEntry)
	}
	bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
		FullUrl:  responseRef,
		Resource: qr,
	})
	for i, obs := range observations {
		// Shallow copy so the generated id is forced without touching
		// the caller's observation. Narrative attachment below still
		// mutates the caller's objects on purpose.
		entryResource := *obs
		entryResource.ID = observationIDs[i]
		bundle.Entry = append(bundle.Entry, fhir_dto.BundleEntry{
			FullUrl:  constvars.ResourceObservation + "/" + observationIDs[i],
			Resource: &entryResource,
		})
	}

	qr.Text = RenderQuestionnaireResponseNarrative(qr)
	if input.Meta.QuestionnaireTitle != "" {
		addQuestionnaireDisplayExtension(qr, input.Meta.QuestionnaireTitle)
	}
	ensureResponseProfile(qr)
	for _, obs := range observations {
		obs.Text = RenderObservationNarrative(obs)
	}

	return bundle
}

// addQuestionnaireDisplayExtension attaches the questionnaire title as a
// display extension on the response's questionnaire element, replacing an
// existing extension with the same URL instead of appending a duplicate.
func addQuestionnaireDisplayExtension(qr *fhir_dto.QuestionnaireResponse, title string) {
	if qr == nil || title == "" {
		return
	}
	if qr.QuestionnaireExt == nil {
		qr.QuestionnaireExt = &fhir_dto.PrimitiveExtension{}
	}
	for i, ext := range qr.QuestionnaireExt.Extension {
		if ext.Url == systemDisplayExtension {
			qr.QuestionnaireExt.Extension[i].ValueString = title
			return
		}
	}
	qr.QuestionnaireExt.Extension = append(qr.QuestionnaireExt.Extension, fhir_dto.Extension{
		Url:         systemDisplayExtension,
		ValueString: title,
	})
}

// ensureResponseProfile appends the ISiK form-data profile once.
func ensureResponseProfile(qr *fhir_dto.QuestionnaireResponse) {
	if qr == nil {
		return
	}
	if qr.Meta == nil {
		qr.Meta = &fhir_dto.Meta{}
	}
	for _, profile := range qr.Meta.Profile {
		if profile == ProfileFormularDaten {
			return
		}
	}
	qr.Meta.Profile = append(qr.Meta.Profile, ProfileFormularDaten)
}
