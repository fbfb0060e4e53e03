// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package planner turns an innovation idea into the search queries issued for
// each intelligence domain. All keyword-bucket decisions (query templates,
// recommended tech stacks and known-brand patterns) come from one declarative
// profile table so that planning and extraction never drift apart.
package planner

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/innovation-engine/pkg/types"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Query counts per domain.
const (
	MarketQueries      = 4
	TechQueries        = 4
	ResearchQueries    = 4
	CompetitiveQueries = 4
	PatentQueries      = 3
)

// Plan lists the queries issued for one idea, per domain.
type Plan struct {
	Market      []string `json:"marketQueries" yaml:"market"`
	Tech        []string `json:"techQueries" yaml:"tech"`
	Research    []string `json:"researchQueries" yaml:"research"`
	Competitive []string `json:"competitiveQueries" yaml:"competitive"`
	Patent      []string `json:"patentQueries" yaml:"patent"`
}

// Brand is a known company pattern matched against search text.
type Brand struct {
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description"`

	// Category is the name of the profile the brand belongs to.
	Category string `yaml:"-"`

	re *regexp.Regexp
}

// Find returns the first occurrence of the brand in text, or "".
func (b Brand) Find(text string) string {
	return b.re.FindString(text)
}

// QuerySection holds the query templates of one profile for one stage.
type QuerySection struct {
	Keywords []string `yaml:"keywords"`
	Queries  []string `yaml:"queries"`

	tmpl []*template.Template
}

type StackSection struct {
	Keywords     []string `yaml:"keywords"`
	Technologies []string `yaml:"technologies"`
}

// Profile is one keyword bucket. A nil section means the profile does not
// take part in that stage.
type Profile struct {
	Name        string        `yaml:"name"`
	Keywords    []string      `yaml:"keywords"`
	Categories  []string      `yaml:"categories"`
	Market      *QuerySection `yaml:"market"`
	Research    *QuerySection `yaml:"research"`
	Competitive *QuerySection `yaml:"competitive"`
	Stack       *StackSection `yaml:"stack"`
	Brands      []Brand       `yaml:"brands"`
}

type Defaults struct {
	Market      []string `yaml:"market"`
	Research    []string `yaml:"research"`
	Competitive []string `yaml:"competitive"`
	Stack       []string `yaml:"stack"`

	market, research, competitive []*template.Template
}

// Table is a parsed, validated profile table. It is immutable once built and
// safe for concurrent use.
type Table struct {
	Profiles []Profile `yaml:"profiles"`
	Default  Defaults  `yaml:"default"`
	Tech     []string  `yaml:"tech"`
	Patent   []string  `yaml:"patent"`

	tech, patent []*template.Template
	brands       []Brand
}

// Default returns the built-in profile table.
func Default() *Table {
	t, err := Parse(defaultProfiles)
	if err != nil {
		panic(fmt.Sprintf("planner: built-in profiles: %v", err))
	}
	return t
}

// Load reads a profile table from a YAML file.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profiles %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profiles %s: %w", path, err)
	}
	return t, nil
}

// LoadOrDefault loads path when set and falls back to the built-in table
// when path is empty.
func LoadOrDefault(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Parse decodes and validates a profile table.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing profiles: %w", err)
	}
	if err := t.compile(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) compile() error {
	var err error
	for i := range t.Profiles {
		p := &t.Profiles[i]
		if p.Name == "" {
			return fmt.Errorf("profile %d has no name", i)
		}
		for _, s := range []struct {
			name string
			sec  *QuerySection
			n    int
		}{
			{"market", p.Market, MarketQueries},
			{"research", p.Research, ResearchQueries},
			{"competitive", p.Competitive, CompetitiveQueries},
		} {
			if s.sec == nil {
				continue
			}
			if s.sec.tmpl, err = compileQueries(p.Name+"."+s.name, s.sec.Queries, s.n); err != nil {
				return err
			}
		}
		for j := range p.Brands {
			b := &p.Brands[j]
			if b.re, err = regexp.Compile(`(?i)\b(?:` + b.Pattern + `)\b`); err != nil {
				return fmt.Errorf("profile %s: brand %q: %w", p.Name, b.Pattern, err)
			}
			b.Category = p.Name
			t.brands = append(t.brands, *b)
		}
	}

	if t.Default.market, err = compileQueries("default.market", t.Default.Market, MarketQueries); err != nil {
		return err
	}
	if t.Default.research, err = compileQueries("default.research", t.Default.Research, ResearchQueries); err != nil {
		return err
	}
	if t.Default.competitive, err = compileQueries("default.competitive", t.Default.Competitive, CompetitiveQueries); err != nil {
		return err
	}
	if len(t.Default.Stack) == 0 {
		return fmt.Errorf("default.stack is empty")
	}
	if t.tech, err = compileQueries("tech", t.Tech, TechQueries); err != nil {
		return err
	}
	if t.patent, err = compileQueries("patent", t.Patent, PatentQueries); err != nil {
		return err
	}
	return nil
}

func compileQueries(name string, queries []string, want int) ([]*template.Template, error) {
	if len(queries) != want {
		return nil, fmt.Errorf("%s: want %d queries, got %d", name, want, len(queries))
	}
	out := make([]*template.Template, len(queries))
	for i, q := range queries {
		tmpl, err := template.New(fmt.Sprintf("%s[%d]", name, i)).Parse(q)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", name, i, err)
		}
		out[i] = tmpl
	}
	return out, nil
}

type queryData struct {
	Title        string
	Category     string
	CategoryName string
}

// Plan builds the queries for idea. It is a pure function of the idea and
// the table.
func (t *Table) Plan(idea types.InnovationIdea) (Plan, error) {
	data := queryData{
		Title:        idea.Title,
		Category:     strings.ToLower(idea.Category),
		CategoryName: idea.Category,
	}
	title := strings.ToLower(idea.Title)
	category := data.Category

	market := t.Default.market
	if p := t.match(title, category, func(p *Profile) []string { return sectionKeywords(p, p.Market) }); p != nil {
		market = p.Market.tmpl
	}
	research := t.Default.research
	if p := t.match(title, category, func(p *Profile) []string { return sectionKeywords(p, p.Research) }); p != nil {
		research = p.Research.tmpl
	}
	competitive := t.Default.competitive
	if p := t.match(title, category, func(p *Profile) []string { return sectionKeywords(p, p.Competitive) }); p != nil {
		competitive = p.Competitive.tmpl
	}

	var plan Plan
	var err error
	if plan.Market, err = render(market, data); err != nil {
		return Plan{}, err
	}
	if plan.Tech, err = render(t.tech, data); err != nil {
		return Plan{}, err
	}
	if plan.Research, err = render(research, data); err != nil {
		return Plan{}, err
	}
	if plan.Competitive, err = render(competitive, data); err != nil {
		return Plan{}, err
	}
	if plan.Patent, err = render(t.patent, data); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// RecommendedStack returns the canned technology list for the first profile
// whose stack keywords match the idea, or the default stack. The returned
// slice is a fresh copy.
func (t *Table) RecommendedStack(idea types.InnovationIdea) []string {
	title := strings.ToLower(idea.Title)
	category := strings.ToLower(idea.Category)
	stack := t.Default.Stack
	p := t.match(title, category, func(p *Profile) []string {
		if p.Stack == nil {
			return nil
		}
		if len(p.Stack.Keywords) > 0 {
			return p.Stack.Keywords
		}
		return p.Keywords
	})
	if p != nil {
		stack = p.Stack.Technologies
	}
	return append([]string(nil), stack...)
}

// Brands returns every brand pattern in table order.
func (t *Table) Brands() []Brand {
	return t.brands
}

// match returns the first profile that has a section for the stage (keywords
// returns non-nil) and whose keywords occur in title or whose categories
// equal category.
func (t *Table) match(title, category string, keywords func(*Profile) []string) *Profile {
	for i := range t.Profiles {
		p := &t.Profiles[i]
		kw := keywords(p)
		if kw == nil {
			continue
		}
		for _, k := range kw {
			if strings.Contains(title, strings.ToLower(k)) {
				return p
			}
		}
		for _, c := range p.Categories {
			if category == strings.ToLower(c) {
				return p
			}
		}
	}
	return nil
}

func sectionKeywords(p *Profile, s *QuerySection) []string {
	if s == nil {
		return nil
	}
	if len(s.Keywords) > 0 {
		return s.Keywords
	}
	if p.Keywords == nil {
		return []string{}
	}
	return p.Keywords
}

func render(tmpls []*template.Template, data queryData) ([]string, error) {
	out := make([]string, len(tmpls))
	for i, tmpl := range tmpls {
		var b strings.Builder
		if err := tmpl.Execute(&b, data); err != nil {
			return nil, fmt.Errorf("rendering query %s: %w", tmpl.Name(), err)
		}
		out[i] = b.String()
	}
	return out, nil
}
