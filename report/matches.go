package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/selmatch/selmatch/match"
)

// MatchSet is the serialized form of canonicalized matches: one entry per
// element in traversal order, keyed by its stable element name, with the
// sorted selector texts that match it. Elements nothing matches carry an
// empty list, so two serialized sets line up element by element.
type MatchSet struct {
	Site     string       `json:"site" yaml:"site"`
	Strategy string       `json:"strategy" yaml:"strategy"`
	Elements []MatchEntry `json:"elements" yaml:"elements"`
}

// MatchEntry is one element of a MatchSet.
type MatchEntry struct {
	Element   string   `json:"element" yaml:"element"`
	Tag       string   `json:"tag" yaml:"tag"`
	Selectors []string `json:"selectors" yaml:"selectors"`
}

// Matches serializes canonical results for one site.
func Matches(site string, c *match.CanonicalMatches) MatchSet {
	set := MatchSet{
		Site:     site,
		Strategy: c.Strategy().String(),
		Elements: make([]MatchEntry, 0, len(c.Keys())),
	}
	for _, key := range c.Keys() {
		texts := c.SelectorTexts(key)
		if texts == nil {
			texts = []string{}
		}
		set.Elements = append(set.Elements, MatchEntry{
			Element:   key.String(),
			Tag:       c.StartTag(key),
			Selectors: texts,
		})
	}
	return set
}

// WriteMatchesYAML writes one canonical match set as a YAML document.
func WriteMatchesYAML(w io.Writer, set MatchSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encoding matches as YAML: %w", err)
	}
	return enc.Close()
}
