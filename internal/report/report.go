// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders an evaluation as a standalone HTML document.
// Every intelligence list is rendered, with "None identified." standing in
// for an empty one, and all text is escaped by html/template.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

//go:embed report.html.tmpl
var reportSource string

var reportTmpl = template.Must(template.New("report").Funcs(template.FuncMap{
	"score":               formatScore,
	"scoreDescription":    scoreDescription,
	"recommendationText":  recommendationText,
	"riskText":            riskText,
	"finalRecommendation": finalRecommendation,
	"join":                strings.Join,
	"section": func(title string, items []string) listSection {
		return listSection{Title: title, Items: items}
	},
	"companySection": func(title string, cs []types.Company) companySection {
		return companySection{Title: title, Companies: cs}
	},
}).Parse(reportSource))

type listSection struct {
	Title string
	Items []string
}

type companySection struct {
	Title     string
	Companies []types.Company
}

// ContentType is the media type of a rendered report.
const ContentType = "text/html; charset=utf-8"

// Render writes the HTML report for result to w. now stamps the analysis date.
func Render(w io.Writer, idea types.InnovationIdea, result types.EvaluationResult, now time.Time) error {
	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, struct {
		Idea   types.InnovationIdea
		Result types.EvaluationResult
		Date   string
	}{idea, result, now.Format("January 2, 2006")})
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

var unsafeFileChars = regexp.MustCompile(`[^a-z0-9]+`)

// Filename returns a download name such as
// "innovation-report-ai-mental-health-coach.html".
func Filename(idea types.InnovationIdea) string {
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(strings.ToLower(idea.Title), "-"), "-")
	if slug == "" {
		slug = "idea"
	}
	return "innovation-report-" + slug + ".html"
}

func formatScore(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func scoreDescription(score float64) string {
	switch {
	case score >= 80:
		return "excellent potential for market success and innovation impact"
	case score >= 60:
		return "strong potential with some areas requiring attention"
	case score >= 40:
		return "moderate potential requiring significant development"
	default:
		return "limited potential requiring substantial re-evaluation"
	}
}

func recommendationText(score float64) string {
	switch {
	case score >= 80:
		return "strong potential for immediate development and market entry"
	case score >= 60:
		return "promising potential with recommended further research and validation"
	case score >= 40:
		return "moderate potential requiring careful planning and risk mitigation"
	default:
		return "limited potential requiring significant re-evaluation of the concept"
	}
}

// riskText describes a risk score, where lower means lower risk.
func riskText(score float64) string {
	switch {
	case score <= 30:
		return "low risk with manageable challenges"
	case score <= 50:
		return "moderate risk requiring careful planning"
	case score <= 70:
		return "elevated risk requiring significant mitigation strategies"
	default:
		return "high risk requiring comprehensive risk management approach"
	}
}

func finalRecommendation(score float64) string {
	switch {
	case score >= 80:
		return "proceeding with full-scale development and market entry strategy"
	case score >= 60:
		return "moving forward with pilot development and market validation"
	case score >= 40:
		return "conducting additional research and concept refinement before proceeding"
	default:
		return "re-evaluating the concept and exploring alternative approaches"
	}
}
