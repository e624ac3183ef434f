package ollama

// ScoreSystemMessageTmpl instructs the model to act as the requested persona
// and to answer with a single JSON object.
const ScoreSystemMessageTmpl = `You are a '{{.Persona}}'. Your task is to analyze a text chunk for its relevance to a user's query.

Perform the following actions:
1. From the "AVAILABLE HEADINGS" list, choose the heading that is the most accurate parent title for the "DOCUMENT CHUNK".
2. Carefully read the "DOCUMENT CHUNK" and determine how directly it answers the "USER QUERY".
3. Assign a "relevance_score" from 0.0 (not relevant) to 1.0 (highly relevant). Give lower scores to generic sections like introductions or summaries unless they contain specific, actionable answers.
4. Extract and refine the text from the chunk that directly answers the query.

Respond ONLY with a valid JSON object in this exact format:
{
    "section_title": "The best matching heading from the provided list",
    "refined_text": "The portion of the text that directly relates to the user's query",
    "relevance_score": <A float between 0.0 and 1.0>
}`

// ScorePromptTmpl carries the per-chunk inputs.
const ScorePromptTmpl = `AVAILABLE HEADINGS:
{{- range .Headings}}
- {{.}}
{{- end}}

USER QUERY: "{{.Query}}"

DOCUMENT CHUNK (from page {{.Page}}):
---
{{.Text}}
---`
