// Package tags classifies post titles against a static tag taxonomy.
package tags

import (
	_ "embed"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// MaxTagsPerTitle caps the number of tags assigned to a single title.
const MaxTagsPerTitle = 5

//go:embed taxonomy.yaml
var taxonomyYAML []byte

// TagDef is a single taxonomy entry: a tag name and the lowercase keywords
// that assign it.
type TagDef struct {
	Name     string   `yaml:"name"`
	Priority bool     `yaml:"priority"`
	Keywords []string `yaml:"keywords"`

	patterns []*regexp.Regexp
}

type taxonomyFile struct {
	Tags []TagDef `yaml:"tags"`
}

// Taxonomy is the immutable tag -> keywords table. It is constructed once at
// process start and shared by the classifier, the search service, and the
// report renderer. Definition order is classification order.
type Taxonomy struct {
	defs   []TagDef
	byName map[string]int
}

// Parse builds a Taxonomy from YAML bytes.
func Parse(data []byte) (*Taxonomy, error) {
	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("tags: parse taxonomy: %w", err)
	}
	if len(f.Tags) == 0 {
		return nil, fmt.Errorf("tags: taxonomy has no tags")
	}
	t := &Taxonomy{defs: f.Tags, byName: make(map[string]int, len(f.Tags))}
	for i := range t.defs {
		d := &t.defs[i]
		if d.Name == "" {
			return nil, fmt.Errorf("tags: taxonomy entry %d has no name", i)
		}
		if _, dup := t.byName[d.Name]; dup {
			return nil, fmt.Errorf("tags: duplicate tag %q", d.Name)
		}
		t.byName[d.Name] = i
		d.patterns = make([]*regexp.Regexp, 0, len(d.Keywords))
		for _, kw := range d.Keywords {
			// Word boundaries keep "go " from matching inside "google".
			p, err := regexp.Compile(`\b` + regexp.QuoteMeta(strings.ToLower(kw)) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("tags: keyword %q for %q: %w", kw, d.Name, err)
			}
			d.patterns = append(d.patterns, p)
		}
	}
	return t, nil
}

var (
	defaultOnce sync.Once
	defaultTax  *Taxonomy
)

// Default returns the taxonomy embedded in the binary.
func Default() *Taxonomy {
	defaultOnce.Do(func() {
		t, err := Parse(taxonomyYAML)
		if err != nil {
			panic(err)
		}
		defaultTax = t
	})
	return defaultTax
}

// ExtractTags returns the tags whose keywords match the title, in taxonomy
// definition order, capped at MaxTagsPerTitle. Matching is case-insensitive
// and respects word boundaries. A tag is assigned at most once; scanning its
// keywords stops on the first hit.
func (t *Taxonomy) ExtractTags(title string) []string {
	if strings.TrimSpace(title) == "" {
		return nil
	}
	lower := strings.ToLower(title)
	var matched []string
	for i := range t.defs {
		for _, p := range t.defs[i].patterns {
			if p.MatchString(lower) {
				matched = append(matched, t.defs[i].Name)
				break
			}
		}
		if len(matched) >= MaxTagsPerTitle {
			break
		}
	}
	return matched
}

// AllTags returns every tag name sorted lexicographically.
func (t *Taxonomy) AllTags() []string {
	out := make([]string, 0, len(t.defs))
	for i := range t.defs {
		out = append(out, t.defs[i].Name)
	}
	sort.Strings(out)
	return out
}

// Has reports whether the tag exists in the taxonomy.
func (t *Taxonomy) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Keywords returns the keyword list for a tag, or nil if the tag is unknown.
func (t *Taxonomy) Keywords(name string) []string {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.defs[i].Keywords))
	copy(out, t.defs[i].Keywords)
	return out
}

// PriorityTags returns the names of the priority subset in definition order.
func (t *Taxonomy) PriorityTags() []string {
	var out []string
	for i := range t.defs {
		if t.defs[i].Priority {
			out = append(out, t.defs[i].Name)
		}
	}
	return out
}

// PriorityKeywords returns all keywords of priority tags, used for topic
// highlighting in results and reports.
func (t *Taxonomy) PriorityKeywords() []string {
	var out []string
	for i := range t.defs {
		if t.defs[i].Priority {
			out = append(out, t.defs[i].Keywords...)
		}
	}
	return out
}
