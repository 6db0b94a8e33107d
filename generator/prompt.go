package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the LLM.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message carries optional prior turns.
type Message struct {
	Role    string
	Content string
}

const summarySystemPrompt = `You are a senior news editor and visual director for an automated news publication.
Given an article, reply with STRICT JSON only. No prose, no markdown, no code fences.
The JSON object must contain exactly these keys:
- "summary_one_liner": one neutral, factual sentence summarizing the story.
- "visual_brief": a short concept for a light, safe-for-work illustration. No violence, no gore.
- "image_prompt": a detailed prompt for a photorealistic editorial illustration. No text, no logos, no real people's faces.
- "action": "SKIP" if the story primarily involves minors, death or tragedy, sexual violence, or ongoing serious crime. Otherwise "PROCEED".`

// BuildSummaryPrompt asks the model for the structured summary of an article.
func BuildSummaryPrompt(text string) Prompt {
	var sb strings.Builder
	sb.WriteString("Article:\n")
	sb.WriteString(text)
	return Prompt{
		System: summarySystemPrompt,
		User:   sb.String(),
	}
}

const captionSystemPrompt = `You are Nova, the social media editor of an online news brand.
Write one engaging Instagram caption for the story you are given.
- Hook the reader in the first few words.
- Stay under 200 characters.
- Include 2-4 relevant hashtags and at most two emoji.
- Output the caption text only, nothing else.`

// BuildCaptionPrompt asks the model for a social caption built from a
// one-line summary.
func BuildCaptionPrompt(summary string) Prompt {
	return Prompt{
		System: captionSystemPrompt,
		User:   fmt.Sprintf("Story: %s", summary),
	}
}
