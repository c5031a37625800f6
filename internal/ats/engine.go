// Package ats scores resume text against a keyword/structure rubric that
// approximates how applicant tracking systems screen documents. Scoring is
// a pure function of the input text and the lexicon: no randomness, no
// failure modes. Text with no recognizable signal simply scores zero.
package ats

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Category caps and signal weights.
const (
	contactCap    = 15
	summaryCap    = 10
	experienceCap = 25
	skillsCap     = 20
	educationCap  = 15
	actionVerbCap = 10
	structureCap  = 5

	emailWeight      = 5
	phoneWeight      = 3
	networkWeight    = 4
	addressWeight    = 3
	summaryLineValue = 3
	sectionPresence  = 5
	dateTokenCap     = 8
	jobTitleCap      = 6
	quantifiedCap    = 6
	techSkillCap     = 8
	softSkillCap     = 4
	certWeight       = 3
	degreeCap        = 6
	honorsWeight     = 4

	minLength          = 200
	maxLength          = 5000
	shortPenalty       = 10
	longPenalty        = 5
	fillerPenalty      = 5
	fillerAllowance    = 3
	summaryLookahead   = 4
	summaryMinLineSize = 20
)

// Date evidence: bare years, mm/yyyy, and month-name abbreviations. Each
// pattern contributes at most one point regardless of how often it matches.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}`),
	regexp.MustCompile(`\d{1,2}/\d{4}`),
	regexp.MustCompile(`jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec`),
}

// Quantified achievement evidence: percentages, dollar amounts, "N+", and
// change verbs.
var quantifiedPattern = regexp.MustCompile(`\d+%|\$\d+|\d+\+|increased|decreased|improved|reduced`)

// Breakdown reports the capped per-category contributions and the penalty
// applied after summation. Total is the final clamped score.
type Breakdown struct {
	Contact     int `json:"contact"`
	Summary     int `json:"summary"`
	Experience  int `json:"experience"`
	Skills      int `json:"skills"`
	Education   int `json:"education"`
	ActionVerbs int `json:"actionVerbs"`
	Structure   int `json:"structure"`
	Penalty     int `json:"penalty"`
	Total       int `json:"total"`
}

// Engine computes rubric scores for resume text. The lexicon can be swapped
// at runtime, so an Engine is safe for concurrent use.
type Engine struct {
	mu  sync.RWMutex
	lex Lexicon
}

// NewEngine creates a scoring engine using the given lexicon.
func NewEngine(lex Lexicon) *Engine {
	return &Engine{lex: lex}
}

// SetLexicon replaces the engine's lexicon. Used by the lexicon file watcher
// to apply hot reloads without rebuilding the pipeline.
func (e *Engine) SetLexicon(lex Lexicon) {
	e.mu.Lock()
	e.lex = lex
	e.mu.Unlock()
}

// Score returns the rubric score for text, clamped to [0, 100].
func (e *Engine) Score(text string) int {
	return e.Breakdown(text).Total
}

// Breakdown computes every category sub-score, the penalty sum, and the
// clamped total.
func (e *Engine) Breakdown(text string) Breakdown {
	e.mu.RLock()
	defer e.mu.RUnlock()

	lower := strings.ToLower(text)

	b := Breakdown{
		Contact:     e.contactScore(lower),
		Summary:     e.summaryScore(text, lower),
		Experience:  e.experienceScore(lower),
		Skills:      e.skillsScore(lower),
		Education:   e.educationScore(lower),
		ActionVerbs: e.actionVerbScore(lower),
		Structure:   e.structureScore(lower),
		Penalty:     e.penalty(text, lower),
	}

	total := b.Contact + b.Summary + b.Experience + b.Skills +
		b.Education + b.ActionVerbs + b.Structure - b.Penalty
	b.Total = clamp(total, 0, 100)

	return b
}

// contactScore checks for email, phone, professional-network, and address
// evidence. Phone evidence deliberately includes "+", "(" and ")", which
// matches far more than phone numbers; the leniency is kept as-is.
func (e *Engine) contactScore(lower string) int {
	score := 0
	if containsAny(lower, e.lex.EmailMarkers) {
		score += emailWeight
	}
	if containsAny(lower, e.lex.PhoneMarkers) {
		score += phoneWeight
	}
	if containsAny(lower, e.lex.NetworkMarkers) {
		score += networkWeight
	}
	if containsAny(lower, e.lex.AddressMarkers) {
		score += addressWeight
	}
	return min(score, contactCap)
}

// summaryScore requires a summary/objective header and rewards substantial
// content (lines longer than 20 characters) in the few lines that follow it.
func (e *Engine) summaryScore(text, lower string) int {
	if !containsAny(lower, e.lex.SummaryKeywords) {
		return 0
	}

	lines := strings.Split(text, "\n")
	content := 0
	for i, line := range lines {
		if !containsAny(strings.ToLower(line), e.lex.SummaryKeywords) {
			continue
		}
		for j := i + 1; j < len(lines) && j <= i+summaryLookahead; j++ {
			if trimmed := strings.TrimSpace(lines[j]); len(trimmed) > summaryMinLineSize {
				content++
			}
		}
	}

	return min(content*summaryLineValue, summaryCap)
}

// experienceScore gates everything on an experience-section keyword, then
// rewards date evidence, job-title keywords, and quantified achievements.
func (e *Engine) experienceScore(lower string) int {
	if !containsAny(lower, e.lex.ExperienceKeywords) {
		return 0
	}

	score := sectionPresence

	dates := 0
	for _, re := range datePatterns {
		if re.MatchString(lower) {
			dates++
		}
	}
	score += min(dates, dateTokenCap)

	score += min(countMatches(lower, e.lex.JobTitles)*2, jobTitleCap)
	score += min(len(quantifiedPattern.FindAllString(lower, -1)), quantifiedCap)

	return min(score, experienceCap)
}

// skillsScore gates on a skills-section keyword, then rewards recognized
// technical skills, soft skills, and certification evidence.
func (e *Engine) skillsScore(lower string) int {
	if !containsAny(lower, e.lex.SkillsKeywords) {
		return 0
	}

	score := sectionPresence
	score += min(countMatches(lower, e.lex.TechSkills), techSkillCap)
	score += min(countMatches(lower, e.lex.SoftSkills), softSkillCap)
	if containsAny(lower, e.lex.CertKeywords) {
		score += certWeight
	}

	return min(score, skillsCap)
}

// educationScore gates on an education keyword, then rewards degree types
// and honors/GPA evidence.
func (e *Engine) educationScore(lower string) int {
	if !containsAny(lower, e.lex.EducationKeywords) {
		return 0
	}

	score := sectionPresence
	score += min(countMatches(lower, e.lex.DegreeKeywords)*3, degreeCap)
	if containsAny(lower, e.lex.HonorsMarkers) {
		score += honorsWeight
	}

	return min(score, educationCap)
}

func (e *Engine) actionVerbScore(lower string) int {
	return min(countMatches(lower, e.lex.ActionVerbs), actionVerbCap)
}

func (e *Engine) structureScore(lower string) int {
	return min(countMatches(lower, e.lex.SectionKeywords), structureCap)
}

// penalty returns the sum of length and filler-phrase penalties; always >= 0.
// Lengths are measured in characters, not bytes, so accented text is not
// over-counted.
func (e *Engine) penalty(text, lower string) int {
	penalty := 0
	length := utf8.RuneCountInString(text)
	if length < minLength {
		penalty += shortPenalty
	}
	if length > maxLength {
		penalty += longPenalty
	}
	if countMatches(lower, e.lex.FillerPhrases) > fillerAllowance {
		penalty += fillerPenalty
	}
	return penalty
}

// containsAny reports whether lower contains any of the terms.
func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// countMatches counts how many terms appear in lower, one point per term
// regardless of repetition.
func countMatches(lower string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
