// Package ats computes a deterministic applicant tracking system compatibility score.
package ats

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/resumify/resumify-api/internal/model"
)

const (
	baseScore = 50.0
	maxScore  = 100.0

	namePoints         = 5.0
	contactPoints      = 5.0
	experiencePerEntry = 5.0
	experienceCap      = 15.0
	educationPoints    = 10.0
	skillPerEntry      = 2.0
	skillCap           = 15.0
	keywordPerMatch    = 1.5
	keywordCap         = 15.0
	verbPerMatch       = 1.0
	verbCap            = 10.0
	projectPoints      = 10.0
)

const (
	IssueNoExperience = "Add work experience to improve ATS score"
	IssueNoEducation  = "Add education details"
	IssueFewSkills    = "Add at least 5 skills"
)

type Breakdown struct {
	PersonalInfo float64 `json:"personal_info"`
	Experience   float64 `json:"experience"`
	Education    float64 `json:"education"`
	Skills       float64 `json:"skills"`
	Keywords     float64 `json:"keywords"`
	ActionVerbs  float64 `json:"action_verbs"`
	Projects     float64 `json:"projects"`
}

type Result struct {
	Score           int       `json:"score"`
	Issues          []string  `json:"issues"`
	Breakdown       Breakdown `json:"breakdown"`
	MatchedKeywords []string  `json:"matched_keywords"`
	MatchedVerbs    []string  `json:"matched_verbs"`
}

type Scorer struct {
	keywords []string
	verbs    []string
}

func NewScorer(dict Dictionary) *Scorer {
	return &Scorer{
		keywords: normalize(dict.Keywords),
		verbs:    normalize(dict.ActionVerbs),
	}
}

// Score rates content from scratch. It never mutates its input and is defined for empty content.
func (s *Scorer) Score(content model.ResumeContent) Result {
	res := Result{Issues: []string{}}
	b := &res.Breakdown

	if present(content.PersonalInfo.FullName) {
		b.PersonalInfo += namePoints
	}
	if present(content.PersonalInfo.Email) && present(content.PersonalInfo.Phone) {
		b.PersonalInfo += contactPoints
	}

	if n := len(content.Experience); n > 0 {
		b.Experience = math.Min(experiencePerEntry*float64(n), experienceCap)
	} else {
		res.Issues = append(res.Issues, IssueNoExperience)
	}

	if len(content.Education) > 0 {
		b.Education = educationPoints
	} else {
		res.Issues = append(res.Issues, IssueNoEducation)
	}

	if n := len(content.Skills); n > 0 {
		b.Skills = math.Min(skillPerEntry*float64(n), skillCap)
	} else {
		res.Issues = append(res.Issues, IssueFewSkills)
	}

	text := Text(content)
	res.MatchedKeywords = matchTerms(text, s.keywords)
	res.MatchedVerbs = matchTerms(text, s.verbs)
	b.Keywords = math.Min(keywordPerMatch*float64(len(res.MatchedKeywords)), keywordCap)
	b.ActionVerbs = math.Min(verbPerMatch*float64(len(res.MatchedVerbs)), verbCap)

	if len(content.Projects) > 0 {
		b.Projects = projectPoints
	}

	total := baseScore + b.PersonalInfo + b.Experience + b.Education + b.Skills + b.Keywords + b.ActionVerbs + b.Projects
	res.Score = int(math.Round(math.Min(total, maxScore)))
	return res
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

// Text flattens every text field of content into one lowercase document.
func Text(c model.ResumeContent) string {
	var sb strings.Builder
	add := func(parts ...string) {
		for _, p := range parts {
			if p == "" {
				continue
			}
			sb.WriteString(p)
			sb.WriteByte('\n')
		}
	}

	pi := c.PersonalInfo
	add(pi.FullName, pi.Email, pi.Phone, pi.Location, pi.LinkedIn, pi.Website, pi.Summary)
	for _, e := range c.Experience {
		add(e.Title, e.Company, e.Location, e.StartDate, e.EndDate, e.Description)
		add(e.Highlights...)
	}
	for _, e := range c.Education {
		add(e.Institution, e.Degree, e.Field, e.StartDate, e.EndDate, e.GPA)
	}
	for _, sk := range c.Skills {
		add(sk.Name, sk.Level)
	}
	for _, p := range c.Projects {
		add(p.Name, p.Description, p.URL)
		add(p.Technologies...)
	}
	return strings.ToLower(sb.String())
}

// matchTerms returns the terms found in text, each counted once.
func matchTerms(text string, terms []string) []string {
	matched := []string{}
	for _, term := range terms {
		if containsTerm(text, term) {
			matched = append(matched, term)
		}
	}
	return matched
}

// containsTerm reports whether term occurs in text without being glued to a
// neighbouring letter or digit, so "go" does not match "google".
func containsTerm(text, term string) bool {
	first, _ := utf8.DecodeRuneInString(term)
	last, _ := utf8.DecodeLastRuneInString(term)
	for from := 0; from < len(text); {
		i := strings.Index(text[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)

		okLeft := true
		if isWordRune(first) && start > 0 {
			prev, _ := utf8.DecodeLastRuneInString(text[:start])
			okLeft = !isWordRune(prev)
		}
		okRight := true
		if isWordRune(last) && end < len(text) {
			next, _ := utf8.DecodeRuneInString(text[end:])
			okRight = !isWordRune(next)
		}
		if okLeft && okRight {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
