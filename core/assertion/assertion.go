// Package assertion streams and filters ConceptNet assertion records.
//
// An assertions dump is a tab-separated file with five fields per line:
// assertion URI, relation URI, start concept URI, end concept URI, and a JSON
// metadata blob. Corpora run to tens of millions of records, so the filter
// applies its checks in cost-ascending order: field count, relation
// allow-list, URI decoding, language, part-of-speech, and only then the JSON
// metadata parse for the weight threshold. Rejections are counted per stage
// rather than surfaced as errors.
package assertion

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/lexigame/wordmine/core/concept"
)

// Record is one raw assertion line split into its five fields.
type Record struct {
	URI      string
	Relation string
	Start    string
	End      string
	Meta     string
}

// ParseLine splits a tab-separated assertion line. The boolean result is
// false when the line has fewer than five fields. Any tabs inside the
// metadata blob stay part of the fifth field.
func ParseLine(line string) (Record, bool) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) < 5 {
		return Record{}, false
	}
	return Record{
		URI:      fields[0],
		Relation: fields[1],
		Start:    fields[2],
		End:      fields[3],
		Meta:     fields[4],
	}, true
}

// maxLineBytes bounds a single assertion line. Metadata blobs carry full
// source lists and can run to megabytes.
const maxLineBytes = 16 << 20

// Scanner yields assertion records from a (decompressed) dump stream.
// Lines with fewer than five fields are skipped and counted, not returned.
type Scanner struct {
	s       *bufio.Scanner
	scanned int64
	short   int64
}

// NewScanner wraps r, which must yield the decompressed tab-separated dump.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64<<10), maxLineBytes)
	return &Scanner{s: s}
}

// Next returns the next complete record. It returns io.EOF at end of stream
// and any underlying read error otherwise.
func (s *Scanner) Next() (Record, error) {
	for s.s.Scan() {
		s.scanned++
		rec, ok := ParseLine(s.s.Text())
		if !ok {
			s.short++
			continue
		}
		return rec, nil
	}
	if err := s.s.Err(); err != nil {
		return Record{}, err
	}
	return Record{}, io.EOF
}

// Scanned returns the number of lines consumed so far.
func (s *Scanner) Scanned() int64 { return s.scanned }

// Short returns the number of skipped lines with fewer than five fields.
func (s *Scanner) Short() int64 { return s.short }

// Stats counts filter outcomes per rejection stage. The stage names mirror
// the check order.
type Stats struct {
	Considered       int64 `json:"considered"`
	RelationRejected int64 `json:"relation_rejected"`
	URIRejected      int64 `json:"uri_rejected"`
	LanguageRejected int64 `json:"language_rejected"`
	POSRejected      int64 `json:"pos_rejected"`
	MetaRejected     int64 `json:"meta_rejected"`
	WeightRejected   int64 `json:"weight_rejected"`
	Accepted         int64 `json:"accepted"`
}

// Config selects which assertions a Filter accepts.
type Config struct {
	// Relations is the allow-list of relation URIs (e.g. "/r/IsA").
	Relations []string
	// SourceLang is the required language for hierarchy and translation
	// pipelines.
	SourceLang string
	// TargetLangs is the language set for relation and translation
	// pipelines.
	TargetLangs []string
	// POS, when non-empty, requires matching part-of-speech tags.
	POS string
	// RequirePOS drops concepts carrying no POS tag at all. When false an
	// untagged concept passes the POS check.
	RequirePOS bool
	// MinWeight is the inclusive minimum metadata weight. A record whose
	// metadata lacks a weight field counts as weight 0.
	MinWeight float64
}

// Filter applies a Config to records, decoding concept URIs on the way.
// It is stateless per record apart from the stage counters.
type Filter struct {
	cfg         Config
	relations   map[string]struct{}
	targetLangs map[string]struct{}
	stats       Stats
}

// NewFilter builds a Filter from cfg.
func NewFilter(cfg Config) *Filter {
	f := &Filter{
		cfg:         cfg,
		relations:   make(map[string]struct{}, len(cfg.Relations)),
		targetLangs: make(map[string]struct{}, len(cfg.TargetLangs)),
	}
	for _, r := range cfg.Relations {
		f.relations[r] = struct{}{}
	}
	for _, l := range cfg.TargetLangs {
		f.targetLangs[l] = struct{}{}
	}
	return f
}

// Stats returns a copy of the accumulated stage counters.
func (f *Filter) Stats() Stats { return f.stats }

// HierarchyEdge is an accepted child-is-a-parent pair in the source language.
type HierarchyEdge struct {
	Child  string
	Parent string
}

// Hierarchy checks rec against the hierarchy pipeline rules: relation in the
// allow-list, both endpoints decodable concepts in SourceLang, POS filter on
// both endpoints, weight at or above MinWeight.
func (f *Filter) Hierarchy(rec Record) (HierarchyEdge, bool) {
	f.stats.Considered++
	if _, ok := f.relations[rec.Relation]; !ok {
		f.stats.RelationRejected++
		return HierarchyEdge{}, false
	}

	start, okS := concept.Parse(rec.Start)
	end, okE := concept.Parse(rec.End)
	if !okS || !okE {
		f.stats.URIRejected++
		return HierarchyEdge{}, false
	}

	if start.Lang != f.cfg.SourceLang || end.Lang != f.cfg.SourceLang {
		f.stats.LanguageRejected++
		return HierarchyEdge{}, false
	}

	if !f.posAllowed(start.POS) || !f.posAllowed(end.POS) {
		f.stats.POSRejected++
		return HierarchyEdge{}, false
	}

	if !f.weightAllowed(rec.Meta) {
		return HierarchyEdge{}, false
	}

	f.stats.Accepted++
	return HierarchyEdge{Child: start.Text, Parent: end.Text}, true
}

// RelationEdge is an accepted same-language relation between two surface
// texts. Relation carries the normalized snake_case label.
type RelationEdge struct {
	Lang     string
	Relation string
	Start    string
	End      string
	Weight   float64
}

// Relation checks rec against the relation pipeline rules: relation in the
// allow-list, both endpoints in the same language, that language in
// TargetLangs, and parseable metadata. The weight itself is returned rather
// than thresholded when MinWeight is zero.
func (f *Filter) Relation(rec Record) (RelationEdge, bool) {
	f.stats.Considered++
	if _, ok := f.relations[rec.Relation]; !ok {
		f.stats.RelationRejected++
		return RelationEdge{}, false
	}

	start, okS := concept.Parse(rec.Start)
	end, okE := concept.Parse(rec.End)
	if !okS || !okE {
		f.stats.URIRejected++
		return RelationEdge{}, false
	}

	if start.Lang != end.Lang {
		f.stats.LanguageRejected++
		return RelationEdge{}, false
	}
	if _, ok := f.targetLangs[start.Lang]; !ok {
		f.stats.LanguageRejected++
		return RelationEdge{}, false
	}

	if !f.posAllowed(start.POS) || !f.posAllowed(end.POS) {
		f.stats.POSRejected++
		return RelationEdge{}, false
	}

	weight, ok := f.parseWeight(rec.Meta)
	if !ok {
		return RelationEdge{}, false
	}
	if weight < f.cfg.MinWeight {
		f.stats.WeightRejected++
		return RelationEdge{}, false
	}

	f.stats.Accepted++
	return RelationEdge{
		Lang:     start.Lang,
		Relation: concept.RelationLabel(rec.Relation),
		Start:    start.Text,
		End:      end.Text,
		Weight:   weight,
	}, true
}

// TranslationPair is an accepted cross-language synonym pair. Source is the
// SourceLang surface text, Target the TargetLang one; the pair is valid in
// either record direction since synonymy is symmetric.
type TranslationPair struct {
	Source     string
	Target     string
	TargetLang string
	Weight     float64
}

// Translation checks rec against the translation rules: relation in the
// allow-list, one endpoint in SourceLang and the other in TargetLangs, POS
// filter on the source-side concept only, weight at or above MinWeight.
func (f *Filter) Translation(rec Record) (TranslationPair, bool) {
	f.stats.Considered++
	if _, ok := f.relations[rec.Relation]; !ok {
		f.stats.RelationRejected++
		return TranslationPair{}, false
	}

	start, okS := concept.Parse(rec.Start)
	end, okE := concept.Parse(rec.End)
	if !okS || !okE {
		f.stats.URIRejected++
		return TranslationPair{}, false
	}

	var src, dst concept.Concept
	switch {
	case start.Lang == f.cfg.SourceLang && f.isTarget(end.Lang):
		src, dst = start, end
	case end.Lang == f.cfg.SourceLang && f.isTarget(start.Lang):
		src, dst = end, start
	default:
		f.stats.LanguageRejected++
		return TranslationPair{}, false
	}

	if !f.posAllowed(src.POS) {
		f.stats.POSRejected++
		return TranslationPair{}, false
	}

	weight, ok := f.parseWeight(rec.Meta)
	if !ok {
		return TranslationPair{}, false
	}
	if weight < f.cfg.MinWeight {
		f.stats.WeightRejected++
		return TranslationPair{}, false
	}

	f.stats.Accepted++
	return TranslationPair{
		Source:     src.Text,
		Target:     dst.Text,
		TargetLang: dst.Lang,
		Weight:     weight,
	}, true
}

func (f *Filter) isTarget(lang string) bool {
	_, ok := f.targetLangs[lang]
	return ok
}

func (f *Filter) posAllowed(pos string) bool {
	if f.cfg.POS == "" {
		return true
	}
	if pos == "" {
		return !f.cfg.RequirePOS
	}
	return pos == f.cfg.POS
}

type recordMeta struct {
	Weight float64 `json:"weight"`
}

func (f *Filter) parseWeight(meta string) (float64, bool) {
	var m recordMeta
	if err := json.Unmarshal([]byte(meta), &m); err != nil {
		f.stats.MetaRejected++
		return 0, false
	}
	return m.Weight, true
}

// weightAllowed parses metadata and applies the inclusive MinWeight bound,
// updating counters. Used by pipelines that do not need the weight value.
func (f *Filter) weightAllowed(meta string) bool {
	weight, ok := f.parseWeight(meta)
	if !ok {
		return false
	}
	if weight < f.cfg.MinWeight {
		f.stats.WeightRejected++
		return false
	}
	return true
}
