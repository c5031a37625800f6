package config

import (
	"fmt"

	"resumelift/internal/ats"

	"github.com/spf13/viper"
)

// LoadLexicon reads a scoring lexicon file and merges it over the
// built-in defaults. Fields absent from the file keep their defaults.
func LoadLexicon(path string) (ats.Lexicon, error) {
	lex := ats.DefaultLexicon()
	if path == "" {
		return lex, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return ats.Lexicon{}, fmt.Errorf("failed to read lexicon file %s: %w", path, err)
	}

	var overrides ats.Lexicon
	if err := v.Unmarshal(&overrides); err != nil {
		return ats.Lexicon{}, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}

	return lex.Merge(overrides), nil
}
