package ats

// Lexicon holds the keyword tables the scoring engine matches against.
// The tables are injected into the Engine so deployments can tune them
// (or tests can substitute them) without touching the scoring logic.
// All matching is case-insensitive substring matching.
type Lexicon struct {
	EmailMarkers       []string `mapstructure:"emailMarkers" yaml:"emailMarkers"`
	PhoneMarkers       []string `mapstructure:"phoneMarkers" yaml:"phoneMarkers"`
	NetworkMarkers     []string `mapstructure:"networkMarkers" yaml:"networkMarkers"`
	AddressMarkers     []string `mapstructure:"addressMarkers" yaml:"addressMarkers"`
	SummaryKeywords    []string `mapstructure:"summaryKeywords" yaml:"summaryKeywords"`
	ExperienceKeywords []string `mapstructure:"experienceKeywords" yaml:"experienceKeywords"`
	JobTitles          []string `mapstructure:"jobTitles" yaml:"jobTitles"`
	SkillsKeywords     []string `mapstructure:"skillsKeywords" yaml:"skillsKeywords"`
	TechSkills         []string `mapstructure:"techSkills" yaml:"techSkills"`
	SoftSkills         []string `mapstructure:"softSkills" yaml:"softSkills"`
	CertKeywords       []string `mapstructure:"certKeywords" yaml:"certKeywords"`
	EducationKeywords  []string `mapstructure:"educationKeywords" yaml:"educationKeywords"`
	DegreeKeywords     []string `mapstructure:"degreeKeywords" yaml:"degreeKeywords"`
	HonorsMarkers      []string `mapstructure:"honorsMarkers" yaml:"honorsMarkers"`
	ActionVerbs        []string `mapstructure:"actionVerbs" yaml:"actionVerbs"`
	SectionKeywords    []string `mapstructure:"sectionKeywords" yaml:"sectionKeywords"`
	FillerPhrases      []string `mapstructure:"fillerPhrases" yaml:"fillerPhrases"`
}

// DefaultLexicon returns the built-in keyword tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		EmailMarkers:   []string{"@", "email"},
		PhoneMarkers:   []string{"phone", "tel", "mobile", "+", "(", ")"},
		NetworkMarkers: []string{"linkedin"},
		AddressMarkers: []string{"address", "city", "state", "zip"},

		SummaryKeywords: []string{"summary", "objective", "profile", "about"},

		ExperienceKeywords: []string{"experience", "work history", "employment", "professional experience"},
		JobTitles: []string{
			"manager", "developer", "analyst", "engineer",
			"specialist", "coordinator", "director", "intern",
		},

		SkillsKeywords: []string{"skills", "technical skills", "competencies", "technologies", "tools"},
		TechSkills: []string{
			"python", "java", "javascript", "sql", "html", "css",
			"react", "node", "aws", "azure", "docker", "git",
		},
		SoftSkills: []string{
			"leadership", "communication", "teamwork",
			"problem solving", "analytical", "creative",
		},
		CertKeywords: []string{"certified", "certification", "license", "credential"},

		EducationKeywords: []string{
			"education", "degree", "university", "college",
			"bachelor", "master", "phd", "diploma",
		},
		DegreeKeywords: []string{
			"bachelor", "master", "phd", "doctorate",
			"associate", "diploma", "certificate",
		},
		HonorsMarkers: []string{"gpa", "honors", "magna cum laude", "summa cum laude", "dean"},

		ActionVerbs: []string{
			"achieved", "managed", "led", "developed", "created", "implemented",
			"improved", "increased", "decreased", "optimized", "streamlined",
			"coordinated", "supervised", "analyzed", "designed", "built",
			"established", "launched", "delivered",
		},

		SectionKeywords: []string{"contact", "summary", "experience", "skills", "education"},

		FillerPhrases: []string{"responsible for", "worked on", "helped with", "assisted in"},
	}
}

// Merge overlays any non-empty tables from other onto the receiver and
// returns the result. Empty tables in other leave the receiver's table
// unchanged, so a partial override file only replaces what it names.
func (l Lexicon) Merge(other Lexicon) Lexicon {
	overlay := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}

	overlay(&l.EmailMarkers, other.EmailMarkers)
	overlay(&l.PhoneMarkers, other.PhoneMarkers)
	overlay(&l.NetworkMarkers, other.NetworkMarkers)
	overlay(&l.AddressMarkers, other.AddressMarkers)
	overlay(&l.SummaryKeywords, other.SummaryKeywords)
	overlay(&l.ExperienceKeywords, other.ExperienceKeywords)
	overlay(&l.JobTitles, other.JobTitles)
	overlay(&l.SkillsKeywords, other.SkillsKeywords)
	overlay(&l.TechSkills, other.TechSkills)
	overlay(&l.SoftSkills, other.SoftSkills)
	overlay(&l.CertKeywords, other.CertKeywords)
	overlay(&l.EducationKeywords, other.EducationKeywords)
	overlay(&l.DegreeKeywords, other.DegreeKeywords)
	overlay(&l.HonorsMarkers, other.HonorsMarkers)
	overlay(&l.ActionVerbs, other.ActionVerbs)
	overlay(&l.SectionKeywords, other.SectionKeywords)
	overlay(&l.FillerPhrases, other.FillerPhrases)

	return l
}
