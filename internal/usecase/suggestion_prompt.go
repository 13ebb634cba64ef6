package usecase

import (
	"fmt"
	"strings"

	"github.com/valyala/bytebufferpool"
)

var suggestionRequirements = []string{
	"Only assign a cook on dates listed in that cook's availability.",
	"Never schedule a cook alone on a date unless that cook has solo=yes.",
	"Never make a cook the lead of a pair unless that cook has lead=yes.",
	"Never make a cook an assistant unless that cook has assist=yes.",
	"Fill as many cooking dates as possible.",
	"Keep every existing assignment exactly as listed.",
	"Never name an assistant for a date that has no lead.",
}

func renderSuggestionPrompt(snap scheduleSnapshot) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("You plan the cooking calendar of a shared kitchen for one month.\n")
	fmt.Fprintf(buf, "PERIOD: %s\n\n", snap.Period)

	buf.WriteString("PREFERENCES:\n")
	for _, cook := range snap.Cooks {
		if !cook.HasPreference {
			fmt.Fprintf(buf, "- %s: no preference submitted, do not schedule\n", cook.User)
			continue
		}
		p := cook.Preference
		fmt.Fprintf(buf, "- %s: solo=%s, lead=%s, assist=%s, max cooking days=%d\n",
			cook.User, yesNo(p.CanSolo), yesNo(p.CanLead), yesNo(p.CanAssist), p.MaxCookingDays)
	}
	writeEmptyMarker(buf, len(snap.Cooks))

	buf.WriteString("\nAVAILABILITY:\n")
	for _, cook := range snap.Cooks {
		dates := "none"
		if len(cook.Available) > 0 {
			dates = strings.Join(cook.Available, ", ")
		}
		fmt.Fprintf(buf, "- %s: %s\n", cook.User, dates)
	}
	writeEmptyMarker(buf, len(snap.Cooks))

	buf.WriteString("\nCOOKING DATES:\n")
	for _, date := range snap.Dates {
		fmt.Fprintf(buf, "- %s\n", date)
	}
	writeEmptyMarker(buf, len(snap.Dates))

	buf.WriteString("\nEXISTING ASSIGNMENTS:\n")
	for _, item := range snap.Assignments {
		assistant := "none"
		if !item.IsSolo() {
			assistant = item.Assistant
		}
		fmt.Fprintf(buf, "- %s: lead=%s, assistant=%s\n", item.Date, item.Lead, assistant)
	}
	writeEmptyMarker(buf, len(snap.Assignments))

	buf.WriteString("\nCRITICAL REQUIREMENTS:\n")
	for i, rule := range suggestionRequirements {
		fmt.Fprintf(buf, "%d. %s\n", i+1, rule)
	}
	buf.WriteString("No cook may appear on more dates than their max cooking days.\n")

	buf.WriteString("\nRespond with JSON in exactly this structure:\n")
	buf.WriteString("{\n  \"assignments\": [\n    {\"date\": \"YYYY-MM-DD\", \"lead\": \"user\", \"assistant\": \"user or null\"}\n  ]\n}\n")
	buf.WriteString("Return ONLY the JSON object.\n")

	return buf.String()
}

func writeEmptyMarker(buf *bytebufferpool.ByteBuffer, n int) {
	if n == 0 {
		buf.WriteString("- none\n")
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
