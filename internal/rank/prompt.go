// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
)

// scorePromptTmpl is the prompt sent to the model for each paper. It
// asks for three independent 1-10 ratings and a minified JSON object.
// The model's own arithmetic is never used: any "total" field in the
// response is ignored and the mean is recomputed by the ranker.
var scorePromptTmpl = template.Must(template.New("score").Parse(`Analyze the following paper abstract and rate it on each criterion from 1 to 10.

Paper title: {{.Title}}
Abstract: {{.Abstract}}

Criteria:
1. Novelty: how new and innovative is this work?
2. Impact: how much could this work influence the field?
3. Clarity: how clearly is the abstract written?

Respond with only a minified JSON object in exactly this form:
{"novelty": <1-10>, "impact": <1-10>, "clarity": <1-10>, "reasoning": "<one or two short sentences>"}
`))

// scoreSystemPrompt primes the model for consistent JSON answers.
const scoreSystemPrompt = "You are an expert researcher who evaluates academic papers. Always respond in valid JSON format."

// renderScorePrompt executes the scoring template for one paper.
func renderScorePrompt(title, abstract string) (string, error) {
	var buf bytes.Buffer
	err := scorePromptTmpl.Execute(&buf, struct{ Title, Abstract string }{Title: title, Abstract: abstract})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// scoreFields is the parsed model response. Pointers distinguish a
// missing field from an explicit value; missing fields default to the
// 5.0 midpoint rather than failing the parse.
type scoreFields struct {
	Novelty   *float64 `json:"novelty"`
	Impact    *float64 `json:"impact"`
	Clarity   *float64 `json:"clarity"`
	Reasoning string   `json:"reasoning"`
}

// parseScoreResponse extracts the three sub-scores and reasoning from
// the raw model output. Fenced code blocks around the JSON are stripped
// first. Missing numeric fields default to 5.0; out-of-range values are
// clamped into [1, 10].
func parseScoreResponse(raw string) (novelty, impact, clarity float64, reasoning string, err error) {
	cleaned := stripFences(raw)

	var fields scoreFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return 0, 0, 0, "", fmt.Errorf("parsing score JSON: %w", err)
	}

	return fieldOrMidpoint(fields.Novelty),
		fieldOrMidpoint(fields.Impact),
		fieldOrMidpoint(fields.Clarity),
		fields.Reasoning, nil
}

// fieldOrMidpoint applies the missing-field default and range clamp.
func fieldOrMidpoint(v *float64) float64 {
	if v == nil {
		return midpointScore
	}
	switch {
	case *v < 1.0:
		return 1.0
	case *v > 10.0:
		return 10.0
	}
	return *v
}

// stripFences removes a Markdown code fence wrapping the response, if
// present. Models sometimes wrap the JSON in "```json ... ```" or a
// bare "``` ... ```" pair despite instructions.
func stripFences(s string) string {
	if idx := strings.Index(s, "```json"); idx >= 0 {
		rest := s[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(s)
}
