package notes

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed templates/*.txt
var templateFS embed.FS

// TemplateInfo describes one note-formatting template.
type TemplateInfo struct {
	ID          string
	Name        string
	Description string
	BestFor     string
}

// registry order is the order templates are presented to the user.
var registry = []TemplateInfo{
	{
		ID:          "study_guide",
		Name:        "Study Guide / Comprehensive Notes",
		Description: "Detailed educational notes with key concepts, definitions, examples, and organized by topic.",
		BestFor:     "Lectures, educational content, learning material, study sessions",
	},
	{
		ID:          "meeting_minutes",
		Name:        "Meeting Minutes",
		Description: "Professional meeting notes with agenda items, decisions, action items, and deadlines.",
		BestFor:     "Business meetings, team syncs, project discussions, planning sessions",
	},
	{
		ID:          "instructions",
		Name:        "Step-by-Step Instructions",
		Description: "Clear tutorial-style notes with numbered steps, prerequisites, troubleshooting, and tips.",
		BestFor:     "Tutorials, how-to guides, training sessions, demonstrations",
	},
	{
		ID:          "summary",
		Name:        "Brief Summary",
		Description: "Condensed notes focusing on key points and takeaways only.",
		BestFor:     "Quick reviews, executive summaries, condensed overviews",
	},
	{
		ID:          "verbatim_transcript",
		Name:        "Verbatim Transcript",
		Description: "Word-for-word transcription cleaned up for readability, with speaker turns where identifiable.",
		BestFor:     "Legal records, interviews, detailed analysis, accurate documentation",
	},
}

// List returns all available templates in presentation order.
func List() []TemplateInfo {
	out := make([]TemplateInfo, len(registry))
	copy(out, registry)
	return out
}

// Load returns the prompt template for the given id.
func Load(id string) (string, error) {
	found := false
	for _, t := range registry {
		if t.ID == id {
			found = true
			break
		}
	}
	if !found {
		ids := make([]string, len(registry))
		for i, t := range registry {
			ids[i] = t.ID
		}
		return "", fmt.Errorf("unknown template %q (valid: %s)", id, strings.Join(ids, ", "))
	}

	data, err := templateFS.ReadFile("templates/" + id + ".txt")
	if err != nil {
		return "", fmt.Errorf("load template %s: %w", id, err)
	}
	return string(data), nil
}
