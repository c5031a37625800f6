package types

// CategoryScores breaks an ATS score down by scoring category
type CategoryScores struct {
	Contact     int `json:"contact"`
	Summary     int `json:"summary"`
	Experience  int `json:"experience"`
	Skills      int `json:"skills"`
	Education   int `json:"education"`
	ActionVerbs int `json:"actionVerbs"`
	Structure   int `json:"structure"`
}

// ScoreOutput represents the output of scoring a resume
type ScoreOutput struct {
	Score      int            `json:"score"`
	Categories CategoryScores `json:"categories"`
	Penalty    int            `json:"penalty"`
}

// EnhanceOutput represents the output of running the enhancement chain
type EnhanceOutput struct {
	OriginalScore int    `json:"originalScore"`
	EnhancedScore int    `json:"enhancedScore"`
	Strategy      string `json:"strategy"`
	EnhancedText  string `json:"enhancedText"`
}

// ProcessOutput represents the output of the full extract-enhance-render pipeline
type ProcessOutput struct {
	OriginalScore int    `json:"originalScore"`
	EnhancedScore int    `json:"enhancedScore"`
	Strategy      string `json:"strategy"`
	EnhancedText  string `json:"enhancedText"`
	OutputFile    string `json:"outputFile,omitempty"`
}
