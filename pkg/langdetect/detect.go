// Package langdetect identifies the .NET source language of a file and the
// line prefix its XML documentation comments use.
// It uses go-enry for extension and content based detection.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a source language that carries XML documentation comments.
type Language struct {
	// Name is the linguist name of the language, e.g. "C#".
	Name string

	// DocPrefix is the line comment prefix that introduces documentation.
	DocPrefix string
}

// Known languages.
var (
	CSharp      = Language{Name: "C#", DocPrefix: "///"}
	FSharp      = Language{Name: "F#", DocPrefix: "///"}
	VisualBasic = Language{Name: "Visual Basic .NET", DocPrefix: "'''"}
)

var byName = map[string]Language{
	CSharp.Name:      CSharp,
	FSharp.Name:      FSharp,
	VisualBasic.Name: VisualBasic,
}

// byExtension resolves extensions that enry reports as ambiguous (.fs is also
// claimed by Forth, GLSL and Filterscript).
var byExtension = map[string]Language{
	".cs":  CSharp,
	".csx": CSharp,
	".fs":  FSharp,
	".fsi": FSharp,
	".fsx": FSharp,
	".vb":  VisualBasic,
}

// Extensions returns the file extensions recognized as documentation sources.
func Extensions() []string {
	return []string{".cs", ".csx", ".fs", ".fsi", ".fsx", ".vb"}
}

// Lookup returns the language with the given linguist name.
func Lookup(name string) (Language, bool) {
	lang, ok := byName[name]
	return lang, ok
}

// Detect returns the language of the file at path with the given content.
// Returns CSharp if detection fails.
func Detect(path string, content []byte) Language {
	// Strategy 1: an unambiguous extension.
	if name, safe := enry.GetLanguageByExtension(path); safe {
		if lang, ok := byName[name]; ok {
			return lang
		}
	}

	// Strategy 2: extensions enry cannot decide on its own.
	if lang, ok := byExtension[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}

	// Strategy 3: content patterns.
	if lang, ok := detectByPattern(content); ok {
		return lang
	}

	// Strategy 4: classifier restricted to the supported languages.
	candidates := []string{CSharp.Name, FSharp.Name, VisualBasic.Name}
	if name, safe := enry.GetLanguageByClassifier(content, candidates); safe {
		if lang, ok := byName[name]; ok {
			return lang
		}
	}

	return CSharp
}

// detectByPattern looks at the first documentation line in content.
func detectByPattern(content []byte) (Language, bool) {
	for line := range bytes.Lines(content) {
		trimmed := bytes.TrimLeft(line, " \t")
		switch {
		case bytes.HasPrefix(trimmed, []byte("'''")):
			return VisualBasic, true
		case bytes.HasPrefix(trimmed, []byte("///")):
			if bytes.Contains(content, []byte("\nlet ")) || bytes.Contains(content, []byte("\nmodule ")) {
				return FSharp, true
			}
			return CSharp, true
		}
	}
	return Language{}, false
}
