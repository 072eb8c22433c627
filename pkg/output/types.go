// Package output provides formatting and output generation for match results.
package output

import (
	"fmt"
	"time"

	"github.com/ccollicutt/capreport/pkg/result"
)

// Report is a result document together with what is needed to present it.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary

	// Capabilities lists the reported rules in report order.
	Capabilities []Capability

	// Metadata provides context about the run.
	Metadata Metadata

	// Document is the match data being reported.
	Document result.Document `json:"-"`

	// Selection decides which rules of Document are reported.
	Selection result.SelectOptions `json:"-"`
}

// Summary provides aggregate statistics.
type Summary struct {
	// RulesTotal is the number of rules in the document.
	RulesTotal int

	// CapabilitiesMatched is the number of rules that are reported.
	CapabilitiesMatched int

	// LocationsMatched counts successful matches across reported rules.
	LocationsMatched int
}

// Capability is the summary of one reported rule.
type Capability struct {
	Name      string
	Namespace string `json:",omitempty"`
	Scope     string

	// Locations holds hex addresses of the successful matches. Empty for
	// file scope rules.
	Locations []string `json:",omitempty"`
}

// Metadata provides context about the run.
type Metadata struct {
	// Source is the path of the result document.
	Source string

	// GeneratedAt is when the report was built.
	GeneratedAt time.Time
}

// NewReport creates a Report for doc.
func NewReport(doc result.Document, source string, sel result.SelectOptions) *Report {
	report := &Report{
		Document:  doc,
		Selection: sel,
		Metadata: Metadata{
			Source:      source,
			GeneratedAt: time.Now(),
		},
		Summary: Summary{
			RulesTotal: len(doc),
		},
	}

	for _, rule := range result.CapabilityRules(doc, sel) {
		c := Capability{
			Name:      rule.Meta.Name(),
			Namespace: rule.Meta.Namespace(),
			Scope:     string(rule.Meta.Scope()),
		}

		for _, lm := range rule.Matches {
			if lm.Match == nil || !lm.Match.Success {
				continue
			}
			report.Summary.LocationsMatched++
			if rule.Meta.Scope() != result.ScopeFile {
				c.Locations = append(c.Locations, fmt.Sprintf("0x%x", lm.Location))
			}
		}

		report.Capabilities = append(report.Capabilities, c)
	}
	report.Summary.CapabilitiesMatched = len(report.Capabilities)

	return report
}

// HasMatches returns true if any capability is reported.
func (r *Report) HasMatches() bool {
	return r.Summary.CapabilitiesMatched > 0
}
