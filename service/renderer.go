package service

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"text/template"
)

//go:embed skeletons/*.tmpl
var skeletonFS embed.FS

var fieldPattern = regexp.MustCompile(`\{\{\s*\.([a-z_]+)\s*\}\}`)

// Skeleton is a fixed prompt text with named fields
type Skeleton struct {
	name   string
	tmpl   *template.Template
	fields []string
}

// ParseSkeleton compiles a skeleton. Fields are written as {{.name}}.
func ParseSkeleton(name, text string) (*Skeleton, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse skeleton %s: %w", name, err)
	}

	seen := map[string]bool{}
	var fields []string
	for _, m := range fieldPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			fields = append(fields, m[1])
		}
	}
	sort.Strings(fields)

	return &Skeleton{name: name, tmpl: tmpl, fields: fields}, nil
}

// MustParseSkeleton is ParseSkeleton for embedded skeletons known at build time
func MustParseSkeleton(name, text string) *Skeleton {
	s, err := ParseSkeleton(name, text)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the skeleton's name
func (s *Skeleton) Name() string { return s.name }

// Fields lists the distinct field names the skeleton references
func (s *Skeleton) Fields() []string { return s.fields }

// Render fills every field in one pass. Values go in verbatim and are not
// rescanned; absent fields render empty.
func (s *Skeleton) Render(values map[string]string) string {
	if values == nil {
		values = map[string]string{}
	}
	var buf bytes.Buffer
	// Execution over a string map with missingkey=zero has no failure path.
	_ = s.tmpl.Execute(&buf, values)
	return buf.String()
}

func loadSkeleton(file string) *Skeleton {
	raw, err := skeletonFS.ReadFile("skeletons/" + file)
	if err != nil {
		panic(fmt.Sprintf("missing embedded skeleton %s: %v", file, err))
	}
	return MustParseSkeleton(strings.TrimSuffix(file, ".tmpl"), string(raw))
}
