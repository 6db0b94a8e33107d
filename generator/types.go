package generator

// Action values the model may return for a story.
const (
	ActionProceed = "PROCEED"
	ActionSkip    = "SKIP"
)

// Summary is the structured editorial verdict for one article: what to say,
// what to draw, and whether to run the story at all.
type Summary struct {
	SummaryOneLiner string `json:"summary_one_liner"`
	VisualBrief     string `json:"visual_brief"`
	ImagePrompt     string `json:"image_prompt"`
	Action          string `json:"action"`
}

// Skipped reports whether the model flagged the story as unsuitable for
// illustration.
func (s *Summary) Skipped() bool { return s.Action == ActionSkip }
