// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Reply decoding errors. Both send the orchestrator to the fallback evaluation.
var (
	ErrEmptyResponse   = errors.New("model returned an empty response")
	ErrInvalidResponse = errors.New("model response does not match the evaluation schema")
)

// replySchema is the shape the prompt asks the model to return. Extra
// properties are tolerated; missing or mistyped ones are not.
const replySchema = `{
  "type": "object",
  "required": ["overallScore", "criteria", "detailedAnalysis"],
  "properties": {
    "overallScore": {"$ref": "#/definitions/score"},
    "criteria": {
      "type": "object",
      "required": ["innovationPotential", "feasibility", "marketReadiness", "scalability", "riskLevel"],
      "properties": {
        "innovationPotential": {"$ref": "#/definitions/score"},
        "feasibility": {"$ref": "#/definitions/score"},
        "marketReadiness": {"$ref": "#/definitions/score"},
        "scalability": {"$ref": "#/definitions/score"},
        "riskLevel": {"$ref": "#/definitions/score"}
      }
    },
    "detailedAnalysis": {
      "type": "object",
      "required": ["strengths", "weaknesses", "opportunities", "threats", "recommendations"],
      "properties": {
        "strengths": {"$ref": "#/definitions/texts"},
        "weaknesses": {"$ref": "#/definitions/texts"},
        "opportunities": {"$ref": "#/definitions/texts"},
        "threats": {"$ref": "#/definitions/texts"},
        "recommendations": {"$ref": "#/definitions/texts"}
      }
    }
  },
  "definitions": {
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "texts": {"type": "array", "items": {"type": "string"}}
  }
}`

var compiledReplySchema = mustSchema(replySchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("evaluate: invalid reply schema: %v", err))
	}
	return s
}

// Reply is the decoded model answer.
type Reply struct {
	OverallScore     float64                  `json:"overallScore"`
	Criteria         types.EvaluationCriteria `json:"criteria"`
	DetailedAnalysis types.DetailedAnalysis   `json:"detailedAnalysis"`
}

// DecodeReply extracts the JSON object from the model text, validates it
// against the evaluation schema and decodes it. Models often wrap JSON in
// a Markdown fence or a sentence of preamble, so the outermost brace span
// is used.
func DecodeReply(text string) (Reply, error) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, ErrEmptyResponse
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return Reply{}, fmt.Errorf("%w: no JSON object found", ErrInvalidResponse)
	}
	doc := text[start : end+1]

	result, err := compiledReplySchema.Validate(gojsonschema.NewStringLoader(doc))
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return Reply{}, fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(msgs, "; "))
	}

	var r Reply
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return r, nil
}
