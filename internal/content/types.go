package content

import "fmt"

// Version identifies one tracked framework release line.
type Version string

const (
	JUnit4 Version = "JUnit 4"
	JUnit5 Version = "JUnit 5"
	JUnit6 Version = "JUnit 6"
)

// Versions returns every version in canonical (release) order.
func Versions() []Version {
	return []Version{JUnit4, JUnit5, JUnit6}
}

// Rank returns the canonical position of v, or -1 if v is unknown.
func (v Version) Rank() int {
	switch v {
	case JUnit4:
		return 0
	case JUnit5:
		return 1
	case JUnit6:
		return 2
	default:
		return -1
	}
}

// Valid reports whether v is one of the tracked versions.
func (v Version) Valid() bool {
	return v.Rank() >= 0
}

// Slug returns the URL and HTML id safe token for v ("junit5").
func (v Version) Slug() string {
	switch v {
	case JUnit4:
		return "junit4"
	case JUnit5:
		return "junit5"
	case JUnit6:
		return "junit6"
	default:
		return ""
	}
}

// ParseVersion accepts either the display name ("JUnit 5") or the slug ("junit5").
func ParseVersion(s string) (Version, error) {
	for _, v := range Versions() {
		if s == string(v) || s == v.Slug() {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown version %q", s)
}

// Format selects one of the two build-tool syntaxes of a dependency declaration.
type Format string

const (
	Maven  Format = "maven"
	Gradle Format = "gradle"
)

// DefaultFormat is the format shown until the user picks another one.
const DefaultFormat = Maven

// Formats returns both formats in display order.
func Formats() []Format {
	return []Format{Maven, Gradle}
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f == Maven || f == Gradle
}

// Language returns the snippet language the format's text is written in.
func (f Format) Language() Language {
	if f == Gradle {
		return LangGroovy
	}
	return LangXML
}

// ParseFormat parses a format token.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown dependency format %q", s)
	}
	return f, nil
}

// Language tags the source language of a code snippet.
type Language string

const (
	LangXML    Language = "xml"
	LangGroovy Language = "groovy"
	LangJava   Language = "java"
)

// Valid reports whether l is a supported snippet language.
func (l Language) Valid() bool {
	switch l {
	case LangXML, LangGroovy, LangJava:
		return true
	default:
		return false
	}
}

// Dependency holds the declaration of a version in both build-tool syntaxes.
type Dependency struct {
	Maven  string `yaml:"maven"`
	Gradle string `yaml:"gradle"`
}

// For returns the declaration text for f. Unknown formats fall back to Maven.
func (d Dependency) For(f Format) string {
	if f == Gradle {
		return d.Gradle
	}
	return d.Maven
}

// Snippet is a labeled code sample.
type Snippet struct {
	Language Language `yaml:"language"`
	Label    string   `yaml:"label"`
	Code     string   `yaml:"code"`
}

// Feature is one documented capability of a version.
type Feature struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Snippets    []Snippet `yaml:"snippets,omitempty"`
	List        []string  `yaml:"list,omitempty"`
}

// VersionContent is the immutable reference content of one version.
type VersionContent struct {
	Version     Version    `yaml:"version"`
	Overview    string     `yaml:"overview"`
	Dependency  Dependency `yaml:"dependencies"`
	Assertions  []Feature  `yaml:"assertions"`
	Assumptions []Feature  `yaml:"assumptions"`
	Annotations []Feature  `yaml:"annotations"`
}

func (vc VersionContent) clone() VersionContent {
	out := vc
	out.Assertions = cloneFeatures(vc.Assertions)
	out.Assumptions = cloneFeatures(vc.Assumptions)
	out.Annotations = cloneFeatures(vc.Annotations)
	return out
}

func cloneFeatures(in []Feature) []Feature {
	if in == nil {
		return nil
	}
	out := make([]Feature, len(in))
	for i, f := range in {
		out[i] = f
		if f.Snippets != nil {
			out[i].Snippets = append([]Snippet(nil), f.Snippets...)
		}
		if f.List != nil {
			out[i].List = append([]string(nil), f.List...)
		}
	}
	return out
}
