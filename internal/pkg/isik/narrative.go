package isik

import (
	"fmt"
	"strconv"
	"strings"

	"isik-bericht-service/internal/pkg/fhir_dto"
)

const (
	xhtmlNamespace = "http://www.w3.org/1999/xhtml"

	// Signals that the text was rendered out of the structured data,
	// not authored by hand.
	narrativeStatusExtensions = "extensions"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func newNarrative(innerHTML string) *fhir_dto.Narrative {
	return &fhir_dto.Narrative{
		Status: narrativeStatusExtensions,
		Div:    fmt.Sprintf(`<div xmlns=%q>%s</div>`, xhtmlNamespace, innerHTML),
	}
}

type CompositionNarrativeOptions struct {
	Patient       *fhir_dto.Patient
	SubjectRef    string
	AuthorDisplay string
}

// RenderCompositionNarrative builds the document header table. Missing data
// renders as empty cells so the row set stays fixed.
func RenderCompositionNarrative(comp *fhir_dto.Composition, opts CompositionNarrativeOptions) *fhir_dto.Narrative {
	if comp == nil {
		return nil
	}

	var family, birthDate, pid string
	if opts.Patient != nil {
		family = FirstFamilyName(opts.Patient)
		birthDate = opts.Patient.BirthDate
		pid = FindPatientIdentifierValue(opts.Patient)
	}
	if pid == "" && opts.SubjectRef != "" {
		if id, ok := ExtractPatientIDFromReference(opts.SubjectRef); ok {
			pid = id
		}
	}

	var typeText string
	if comp.Type != nil {
		typeText = comp.Type.Text
	}

	var b strings.Builder
	b.WriteString("<h2>Dokumenten-Header</h2>")
	b.WriteString(`<table class="grid">`)
	writeHeaderRow(&b, "Patient (Familienname)", family)
	writeHeaderRow(&b, "Geburtsdatum", birthDate)
	writeHeaderRow(&b, "Patienten-ID (pid)", pid)
	writeHeaderRow(&b, "Status", comp.Status)
	writeHeaderRow(&b, "Dokumenttyp", typeText)
	writeHeaderRow(&b, "Datum", comp.Date)
	writeHeaderRow(&b, "Titel", comp.Title)
	writeHeaderRow(&b, "Autor", opts.AuthorDisplay)
	b.WriteString("</table>")
	return newNarrative(b.String())
}

func writeHeaderRow(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "<tr><th>%s</th><td>%s</td></tr>", escapeHTML(label), escapeHTML(value))
}

// ObservationTitle derives a human title for an observation section.
func ObservationTitle(obs *fhir_dto.Observation) string {
	if obs == nil {
		return ""
	}
	if obs.Code != nil {
		if obs.Code.Text != "" {
			return obs.Code.Text
		}
		if display := CodingDisplay(obs.Code.Coding); display != "" {
			return display
		}
	}
	return strings.TrimSpace("Observation " + obs.ID)
}

// FormatQuantity renders "{value} {unit-or-code-or-system}".
func FormatQuantity(q *fhir_dto.Quantity) string {
	if q == nil {
		return ""
	}
	var val string
	if q.Value != nil {
		switch {
		case q.Value.Num != nil:
			val = strconv.FormatFloat(*q.Value.Num, 'f', -1, 64)
		case q.Value.Str != nil:
			val = *q.Value.Str
		}
	}
	unit := q.Unit
	if unit == "" {
		unit = q.Code
	}
	if unit == "" {
		unit = q.System
	}
	return strings.TrimSpace(val + " " + unit)
}

func formatObservationValue(obs *fhir_dto.Observation) string {
	switch {
	case obs.ValueString != nil:
		return *obs.ValueString
	case obs.ValueBoolean != nil:
		return formatBoolean(*obs.ValueBoolean)
	case obs.ValueInteger != nil:
		return strconv.Itoa(*obs.ValueInteger)
	case obs.ValueDecimal != nil:
		return strconv.FormatFloat(*obs.ValueDecimal, 'f', -1, 64)
	case obs.ValueCodeableConcept != nil:
		if obs.ValueCodeableConcept.Text != "" {
			return obs.ValueCodeableConcept.Text
		}
		return CodingDisplay(obs.ValueCodeableConcept.Coding)
	case obs.ValueQuantity != nil:
		return FormatQuantity(obs.ValueQuantity)
	case obs.ValueDateTime != nil:
		return *obs.ValueDateTime
	case obs.ValueDate != nil:
		return *obs.ValueDate
	case obs.ValueTime != nil:
		return *obs.ValueTime
	}
	return ""
}

func formatBoolean(v bool) string {
	if v {
		return "ja"
	}
	return "nein"
}

// RenderObservationNarrative builds the per-observation section text: a
// heading plus value, effective time and performer rows. Empty rows are
// dropped; a fully empty table shows a placeholder row instead.
func RenderObservationNarrative(obs *fhir_dto.Observation) *fhir_dto.Narrative {
	if obs == nil {
		return nil
	}

	effective := obs.EffectiveDateTime
	if effective == "" && obs.EffectivePeriod != nil {
		effective = obs.EffectivePeriod.Start
	}
	var performer string
	if len(obs.Performer) > 0 {
		performer = obs.Performer[0].Display
	}

	var rows strings.Builder
	writeOptionalRow(&rows, "Wert", formatObservationValue(obs))
	writeOptionalRow(&rows, "Erhoben am", effective)
	writeOptionalRow(&rows, "Erhoben von", performer)
	if rows.Len() == 0 {
		rows.WriteString(`<tr><td colspan="2">(keine Details)</td></tr>`)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s</h2>", escapeHTML(ObservationTitle(obs)))
	b.WriteString(`<table class="grid">`)
	b.WriteString(rows.String())
	b.WriteString("</table>")
	return newNarrative(b.String())
}

func writeOptionalRow(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "<tr><th>%s</th><td>%s</td></tr>", escapeHTML(label), escapeHTML(value))
}

func formatAnswer(ans fhir_dto.QuestionnaireResponseItemAnswer) string {
	switch {
	case ans.ValueString != nil:
		return *ans.ValueString
	case ans.ValueBoolean != nil:
		return formatBoolean(*ans.ValueBoolean)
	case ans.ValueInteger != nil:
		return strconv.Itoa(*ans.ValueInteger)
	case ans.ValueDecimal != nil:
		return strconv.FormatFloat(*ans.ValueDecimal, 'f', -1, 64)
	case ans.ValueDate != nil:
		return *ans.ValueDate
	case ans.ValueDateTime != nil:
		return *ans.ValueDateTime
	case ans.ValueTime != nil:
		return *ans.ValueTime
	case ans.ValueCoding != nil:
		if ans.ValueCoding.Display != "" {
			return ans.ValueCoding.Display
		}
		return ans.ValueCoding.Code
	case ans.ValueQuantity != nil:
		return FormatQuantity(ans.ValueQuantity)
	case ans.ValueReference != nil:
		if ans.ValueReference.Display != "" {
			return ans.ValueReference.Display
		}
		return ans.ValueReference.Reference
	}
	return ""
}

// walkResponseItems flattens the nested item tree depth-first into one list
// line per item that has a label or at least one answer.
func walkResponseItems(items []fhir_dto.QuestionnaireResponseItem, out *[]string) {
	for _, item := range items {
		label := item.Text
		if label == "" {
			label = item.LinkID
		}
		var answers []string
		for _, ans := range item.Answer {
			if formatted := formatAnswer(ans); formatted != "" {
				answers = append(answers, escapeHTML(formatted))
			}
		}
		joined := strings.Join(answers, ", ")
		if label != "" || joined != "" {
			if joined == "" {
				joined = "—"
			}
			*out = append(*out, fmt.Sprintf("<li><strong>%s:</strong> %s</li>", escapeHTML(label), joined))
		}
		walkResponseItems(item.Item, out)
	}
}

// RenderQuestionnaireResponseNarrative builds the questionnaire section text:
// status, authored and subject rows, then every answered item in document
// order.
func RenderQuestionnaireResponseNarrative(qr *fhir_dto.QuestionnaireResponse) *fhir_dto.Narrative {
	if qr == nil {
		return nil
	}

	var info strings.Builder
	writeOptionalRow(&info, "Status", qr.Status)
	writeOptionalRow(&info, "Erstellt", qr.Authored)
	if qr.Subject != nil {
		subject := qr.Subject.Display
		if subject == "" {
			subject = qr.Subject.Reference
		}
		writeOptionalRow(&info, "Patient", subject)
	}

	var lines []string
	walkResponseItems(qr.Item, &lines)

	var b strings.Builder
	b.WriteString("<h2>Fragebogen</h2>")
	b.WriteString(`<table class="grid">`)
	b.WriteString(info.String())
	b.WriteString("</table>")
	if len(lines) > 0 {
		b.WriteString("<ul>")
		b.WriteString(strings.Join(lines, ""))
		b.WriteString("</ul>")
	} else {
		b.WriteString("<div>(keine Antworten)</div>")
	}
	return newNarrative(b.String())
}
