package intent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type lexiconFile struct {
	Groups map[string][]string `yaml:"groups"`
}

// LoadLexicon reads a YAML keyword file and applies it over the defaults.
// Each listed group replaces the default keywords of the same name.
//
//	groups:
//	  holiday: ["holiday", "chutti", "vacation"]
func LoadLexicon(path string) (Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon applies YAML overrides to a copy of the default lexicon.
func ParseLexicon(data []byte) (Lexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse keyword file: %w", err)
	}

	lex := DefaultLexicon()
	for name, keywords := range file.Groups {
		key := Intent(name)
		if _, ok := defaultLexicon[key]; !ok {
			return nil, fmt.Errorf("unknown keyword group %q", name)
		}
		normalized := make([]string, 0, len(keywords))
		for _, keyword := range keywords {
			if k := Normalize(keyword); k != "" {
				normalized = append(normalized, k)
			}
		}
		lex[key] = normalized
	}
	return lex, nil
}
