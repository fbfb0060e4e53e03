// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package intel

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/innovation-engine/internal/planner"
	"github.com/pdiddy/innovation-engine/pkg/types"
)

// Caps applied to extracted lists.
const (
	maxListItems    = 5
	maxStackItems   = 10
	snippetCapLimit = 200
)

// DefaultMarketSize is reported when no currency amount appears in any result.
const DefaultMarketSize = "$5.6B"

var (
	amountRe  = regexp.MustCompile(`\$[\d.]+[BbMmKk]?`)
	properRe  = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)
	knownFWs  = set("react", "vue", "angular", "django", "flask", "express", "spring", "laravel")
	knownTool = set("docker", "kubernetes", "aws", "azure", "gcp", "jenkins", "gitlab", "github")
)

// PlaceholderCompetitors is returned when no known brand appears in the results.
func PlaceholderCompetitors() []types.Company {
	return []types.Company{
		{Name: "Market Leader", Description: "Established industry leader with significant market share and proven track record."},
		{Name: "Innovation Pioneer", Description: "Early mover in the space with innovative solutions and growing market presence."},
		{Name: "Emerging Competitor", Description: "Fast-growing startup with disruptive technology and strong investor backing."},
	}
}

// MarketGaps is the fixed list of gap categories reported for every idea.
func MarketGaps() []string {
	return []string{
		"Underserved market segments",
		"Technology gaps in current solutions",
		"User experience improvements needed",
		"Integration opportunities",
		"Pricing model innovations",
	}
}

// IPRisks is the fixed list of intellectual-property risks.
func IPRisks() []string {
	return []string{
		"Patent infringement risks",
		"Trademark conflicts",
		"Trade secret protection needed",
		"Licensing requirements",
	}
}

// PatentOpportunities is the fixed list of patent opportunities.
func PatentOpportunities() []string {
	return []string{
		"Novel technology patent opportunities",
		"Process improvement patents",
		"Design patent possibilities",
		"Defensive patent strategy",
	}
}

func itemText(it types.WebResult) string {
	return it.Title + " " + it.Snippet
}

// MarketSize returns the first currency amount found in result titles and
// snippets, in page then item order, or DefaultMarketSize.
func MarketSize(pages []types.WebPage) string {
	for _, p := range pages {
		for _, it := range p.Items {
			if m := amountRe.FindString(itemText(it)); m != "" {
				return m
			}
		}
	}
	return DefaultMarketSize
}

// Competitors matches the brand patterns against every result. Names are
// deduplicated case-insensitively and the list is capped at five. When no
// brand matches, the three placeholder competitors are returned, so the list
// is never empty.
func Competitors(pages []types.WebPage, brands []planner.Brand) []types.Company {
	seen := map[string]bool{}
	var out []types.Company
	for _, p := range pages {
		for _, it := range p.Items {
			text := itemText(it)
			for _, b := range brands {
				name := b.Find(text)
				if name == "" || seen[strings.ToLower(name)] {
					continue
				}
				seen[strings.ToLower(name)] = true
				out = append(out, types.Company{Name: name, Description: b.Description, Website: it.Link})
			}
		}
	}
	if len(out) == 0 {
		return PlaceholderCompetitors()
	}
	return capList(out, maxListItems)
}

// SnippetsMentioning captures the first 200 characters of every snippet that
// contains any of the keywords, capped at five.
func SnippetsMentioning(pages []types.WebPage, keywords ...string) []string {
	out := []string{}
	for _, p := range pages {
		for _, it := range p.Items {
			if containsAny(strings.ToLower(it.Snippet), keywords) {
				out = append(out, truncate(it.Snippet, snippetCapLimit))
			}
		}
	}
	return capList(out, maxListItems)
}

// Trends captures snippets about trends or growth.
func Trends(pages []types.WebPage) []string { return SnippetsMentioning(pages, "trend", "growth") }

// Opportunities captures snippets about opportunity or potential.
func Opportunities(pages []types.WebPage) []string {
	return SnippetsMentioning(pages, "opportunity", "potential")
}

// Risks captures snippets about risks or challenges.
func Risks(pages []types.WebPage) []string { return SnippetsMentioning(pages, "risk", "challenge") }

// Languages ranks repository languages by frequency, ties in encounter order.
func Languages(repos []types.RepoResult) []string {
	var langs []string
	for _, r := range repos {
		if r.Language != "" {
			langs = append(langs, r.Language)
		}
	}
	return capList(rankByFrequency(langs), maxStackItems)
}

// Frameworks lists repository topics that name a known framework.
func Frameworks(repos []types.RepoResult) []string { return topicsIn(repos, knownFWs) }

// Tools lists repository topics that name a known development tool.
func Tools(repos []types.RepoResult) []string { return topicsIn(repos, knownTool) }

func topicsIn(repos []types.RepoResult, allow map[string]bool) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, r := range repos {
		for _, t := range r.Topics {
			if allow[strings.ToLower(t)] && !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return capList(out, maxStackItems)
}

// SimilarProjects keeps repositories whose name occurs in the idea title, or
// whose name or description contains the first title word. Capped at five.
func SimilarProjects(repos []types.RepoResult, idea types.InnovationIdea) []types.RepoResult {
	title := strings.ToLower(idea.Title)
	first := idea.FirstTitleWord()
	out := []types.RepoResult{}
	for _, r := range repos {
		name := strings.ToLower(r.Name)
		desc := strings.ToLower(r.Description)
		if (name != "" && strings.Contains(title, name)) ||
			(first != "" && (strings.Contains(name, first) || strings.Contains(desc, first))) {
			out = append(out, r)
		}
	}
	return capList(out, maxListItems)
}

// SimilarTechStacks summarizes the stack of the first five repositories.
func SimilarTechStacks(repos []types.RepoResult) []types.TechStack {
	out := []types.TechStack{}
	for _, r := range capList(repos, maxListItems) {
		stack := []string{}
		if r.Language != "" {
			stack = append(stack, r.Language)
		}
		for _, t := range r.Topics {
			if t != "" {
				stack = append(stack, t)
			}
		}
		out = append(out, types.TechStack{Name: r.Name, TechStack: stack, Stars: r.Stars, Description: r.Description})
	}
	return out
}

// RecommendStack appends the two most frequent observed languages and the
// first two frameworks to the profile stack, deduplicates, and caps at ten.
func RecommendStack(base, languages, frameworks []string) []string {
	all := append([]string(nil), base...)
	all = append(all, capList(languages, 2)...)
	all = append(all, capList(frameworks, 2)...)
	return capList(dedupe(all), maxStackItems)
}

// RelevantPapers keeps papers whose title or summary contains the first title
// word, or whose title contains the category. Capped at five.
func RelevantPapers(papers []types.PaperResult, idea types.InnovationIdea) []types.PaperResult {
	first := idea.FirstTitleWord()
	category := strings.ToLower(idea.Category)
	out := []types.PaperResult{}
	for _, p := range papers {
		title := strings.ToLower(p.Title)
		summary := strings.ToLower(p.Summary)
		if (first != "" && (strings.Contains(title, first) || strings.Contains(summary, first))) ||
			(category != "" && strings.Contains(title, category)) {
			out = append(out, p)
		}
	}
	return capList(out, maxListItems)
}

// RecentPapers keeps papers published within the year before now. Papers
// with an unparseable date are not recent.
func RecentPapers(papers []types.PaperResult, now time.Time) []types.PaperResult {
	cutoff := now.AddDate(-1, 0, 0)
	out := []types.PaperResult{}
	for _, p := range papers {
		t, err := time.Parse(time.RFC3339, p.Published)
		if err == nil && t.After(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

// ResearchTrends returns the five most frequent title words longer than four
// characters.
func ResearchTrends(papers []types.PaperResult) []string {
	var words []string
	for _, p := range papers {
		for _, w := range strings.Split(strings.ToLower(p.Title), " ") {
			if len([]rune(w)) > 4 {
				words = append(words, w)
			}
		}
	}
	return capList(rankByFrequency(words), maxListItems)
}

// KeyResearchers returns the five most frequent authors.
func KeyResearchers(papers []types.PaperResult) []string {
	var authors []string
	for _, p := range papers {
		authors = append(authors, p.Authors...)
	}
	return capList(rankByFrequency(authors), maxListItems)
}

// ProperNamesNear collects capitalized phrases from results whose text
// mentions any of the keywords. Phrases of 4 to 49 characters are kept in
// first-seen order, capped at five.
func ProperNamesNear(pages []types.WebPage, keywords ...string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range pages {
		for _, it := range p.Items {
			text := itemText(it)
			if !containsAny(strings.ToLower(text), keywords) {
				continue
			}
			for _, m := range properRe.FindAllString(text, -1) {
				if len(m) > 3 && len(m) < 50 && !seen[m] {
					seen[m] = true
					out = append(out, m)
				}
			}
		}
	}
	return capList(out, maxListItems)
}

// Startups names companies from results about startups or foundings.
func Startups(pages []types.WebPage) []string { return ProperNamesNear(pages, "startup", "founded") }

// MarketLeaders names companies from results about companies or corporations.
func MarketLeaders(pages []types.WebPage) []string {
	return ProperNamesNear(pages, "company", "corporation")
}

// Funding captures results that mention funding or investment together with
// a currency amount. Capped at five.
func Funding(pages []types.WebPage) []types.FundingRound {
	out := []types.FundingRound{}
	for _, p := range pages {
		for _, it := range p.Items {
			text := itemText(it)
			if !containsAny(strings.ToLower(text), []string{"funding", "investment"}) {
				continue
			}
			if amount := amountRe.FindString(text); amount != "" {
				out = append(out, types.FundingRound{
					Amount:      amount,
					Description: truncate(text, snippetCapLimit),
					Investors:   []string{},
				})
			}
		}
	}
	return capList(out, maxListItems)
}

// Patents captures results that mention patents or intellectual property.
// Capped at five.
func Patents(pages []types.WebPage) []types.Patent {
	out := []types.Patent{}
	for _, p := range pages {
		for _, it := range p.Items {
			if containsAny(strings.ToLower(itemText(it)), []string{"patent", "intellectual property"}) {
				out = append(out, types.Patent{Title: it.Title, Description: it.Snippet, URL: it.Link})
			}
		}
	}
	return capList(out, maxListItems)
}

// Landscape derives risk and opportunity levels from the patent count alone:
// more than three patents is high risk, fewer than two is high opportunity.
func Landscape(n int) types.PatentLandscape {
	l := types.PatentLandscape{TotalPatents: n, RiskLevel: types.ComplexityLow, Opportunities: types.ComplexityLow}
	if n > 3 {
		l.RiskLevel = types.ComplexityHigh
	}
	if n < 2 {
		l.Opportunities = types.ComplexityHigh
	}
	return l
}

// rankByFrequency orders distinct values by count descending, ties broken by
// first occurrence.
func rankByFrequency(values []string) []string {
	counts := map[string]int{}
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if order == nil {
		return []string{}
	}
	return order
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func dedupe(values []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// capList returns at most n leading elements, never nil.
func capList[T any](s []T, n int) []T {
	if s == nil {
		return []T{}
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
