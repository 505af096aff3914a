package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/selmatch/selmatch/maybe"
	"github.com/selmatch/selmatch/runner"
)

// StatsEntry is the serialized statistics of one (site, strategy) pair.
// Pointer fields are measurements the strategy may not perform; they encode
// as null, never as zero, when absent.
type StatsEntry struct {
	Site          string `json:"site" yaml:"site"`
	Strategy      string `json:"strategy" yaml:"strategy"`
	NumElements   int    `json:"num_elements" yaml:"num_elements"`
	NumSelectors  int    `json:"num_selectors" yaml:"num_selectors"`
	MatchingPairs int64  `json:"matching_pairs" yaml:"matching_pairs"`
	ElapsedNs     int64  `json:"elapsed_ns" yaml:"elapsed_ns"`

	SelectorMapHits  *int64 `json:"selector_map_hits" yaml:"selector_map_hits"`
	FastRejects      *int64 `json:"fast_rejects" yaml:"fast_rejects"`
	SlowRejects      *int64 `json:"slow_rejects" yaml:"slow_rejects"`
	SharingInstances *int64 `json:"sharing_instances" yaml:"sharing_instances"`

	BloomMaintenanceNs *int64 `json:"bloom_maintenance_ns" yaml:"bloom_maintenance_ns"`
	SharingCheckNs     *int64 `json:"sharing_check_ns" yaml:"sharing_check_ns"`
	RuleMapQueryNs     *int64 `json:"rule_map_query_ns" yaml:"rule_map_query_ns"`
	SlowRejectingNs    *int64 `json:"time_spent_slow_rejecting_ns" yaml:"time_spent_slow_rejecting_ns"`
}

// Entry flattens one evaluation result into its serialized form.
func Entry(r runner.Result) StatsEntry {
	return StatsEntry{
		Site:          r.Site,
		Strategy:      r.Strategy.String(),
		NumElements:   r.Matches.Document().NumElements(),
		NumSelectors:  r.NumSelectors,
		MatchingPairs: r.Canonical.MatchingPairs(),
		ElapsedNs:     r.Elapsed.Nanoseconds(),

		SelectorMapHits:  maybe.Ptr(r.Stats.SelectorMapHits),
		FastRejects:      maybe.Ptr(r.Stats.FastRejects),
		SlowRejects:      maybe.Ptr(r.Stats.SlowRejects),
		SharingInstances: maybe.Ptr(r.Stats.SharingInstances),

		BloomMaintenanceNs: nanosPtr(r.Stats.BloomMaintenance),
		SharingCheckNs:     nanosPtr(r.Stats.SharingCheck),
		RuleMapQueryNs:     nanosPtr(r.Stats.RuleMapQuery),
		SlowRejectingNs:    nanosPtr(r.Stats.SlowRejecting),
	}
}

// Entries flattens a whole run, preserving result order.
func Entries(results []runner.Result) []StatsEntry {
	entries := make([]StatsEntry, len(results))
	for i, r := range results {
		entries[i] = Entry(r)
	}
	return entries
}

func nanosPtr(m maybe.Maybe[time.Duration]) *int64 {
	return maybe.Ptr(maybe.Map(time.Duration.Nanoseconds, m))
}

// WriteYAML writes the statistics report as a YAML document.
func WriteYAML(w io.Writer, entries []StatsEntry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding statistics as YAML: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes the statistics report as indented JSON.
func WriteJSON(w io.Writer, entries []StatsEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding statistics as JSON: %w", err)
	}
	return nil
}
