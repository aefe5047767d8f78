package backend

import "umatl/internal/glossary"

// systemInstruction is the fixed preamble sent with every request. The
// glossary is appended as literal JSON inside this system message; the backend
// sees exactly one system and one user message per call.
const systemInstruction = `You are a professional localizer translating Japanese horse-racing game dialogue into natural English.
Rules:
- Translate the user's text faithfully; do not add commentary, notes, or romaji.
- Preserve line breaks exactly as given.
- Keep names and proper nouns consistent with the glossary below.
- Output only the translated text.

Glossary (Japanese to English, JSON):
`

// BuildSystemPrompt embeds the serialized glossary into the fixed instruction.
func BuildSystemPrompt(gloss *glossary.Glossary) string {
	return systemInstruction + gloss.Serialized()
}
