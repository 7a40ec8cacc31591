// Command wordmine is the CLI for the wordmine extraction pipelines.
// It mines ConceptNet dumps, Universal Dependencies treebanks and Wikipedia
// exports for the word lists and relation data used by word guessing games.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/lexigame/wordmine/core/assertion"
	"github.com/lexigame/wordmine/core/errors"
	"github.com/lexigame/wordmine/core/hierarchy"
	"github.com/lexigame/wordmine/core/relations"
	"github.com/lexigame/wordmine/core/taboo"
	"github.com/lexigame/wordmine/internal/conllu"
	"github.com/lexigame/wordmine/internal/corpus"
	"github.com/lexigame/wordmine/internal/export"
	"github.com/lexigame/wordmine/internal/export/sqlitedb"
	"github.com/lexigame/wordmine/internal/langpolicy"
	"github.com/lexigame/wordmine/internal/logging"
	"github.com/lexigame/wordmine/internal/nounfreq"
	"github.com/lexigame/wordmine/internal/wikiwords"
)

const version = "0.2.0"

// Relation allow-lists per pipeline.
var (
	hierarchyRelations = []string{"/r/IsA", "/r/InstanceOf"}

	tabooRelations = []string{
		"/r/Synonym", "/r/RelatedTo", "/r/IsA", "/r/HasA", "/r/PartOf",
		"/r/UsedFor", "/r/CapableOf", "/r/Antonym", "/r/DerivedFrom",
		"/r/SimilarTo", "/r/MadeOf",
	}

	translationRelations = []string{"/r/Synonym", "/r/TranslationOf"}
)

// CLI defines the command-line interface for wordmine.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`
	Policies  string `name:"policies" type:"path" help:"JSON file overriding per-language extraction policies"`

	// Command groups (noun-first organization)
	Hierarchy HierarchyGroup `cmd:"" help:"Category hierarchy extraction from ConceptNet"`
	Nouns     NounsGroup     `cmd:"" help:"Noun frequency lists from UD treebanks"`
	Relations RelationsGroup `cmd:"" help:"Word relation extraction, scoring and translation"`
	Taboo     TabooGroup     `cmd:"" help:"Taboo word list sampling and building"`
	Wiki      WikiGroup      `cmd:"" help:"Word frequencies from Wikipedia dumps"`
	Version   VersionCmd     `cmd:"" help:"Print version information"`
}

// HierarchyGroup contains hierarchy commands.
type HierarchyGroup struct {
	Extract HierarchyExtractCmd `cmd:"" help:"Extract the category hierarchy and its analyses"`
	Tree    HierarchyTreeCmd    `cmd:"" help:"Print the subtree rooted at a concept"`
}

// NounsGroup contains noun list commands.
type NounsGroup struct {
	Extract NounsExtractCmd `cmd:"" help:"Extract noun frequencies from a UD treebank release"`
	Merge   NounsMergeCmd   `cmd:"" help:"Merge noun frequency CSVs into one list"`
}

// RelationsGroup contains relation commands.
type RelationsGroup struct {
	Extract   RelationsExtractCmd   `cmd:"" help:"Extract related words for target nouns"`
	Score     RelationsScoreCmd     `cmd:"" help:"Attach similarity scores to extracted relations"`
	Translate RelationsTranslateCmd `cmd:"" help:"Extract translations for a word list"`
}

// TabooGroup contains taboo list commands.
type TabooGroup struct {
	Sample TabooSampleCmd `cmd:"" help:"Sample three-word taboo sets from scored relations"`
	Build  TabooBuildCmd  `cmd:"" help:"Build taboo lists directly from a dump, ordered by noun frequency"`
}

// WikiGroup contains Wikipedia commands.
type WikiGroup struct {
	Words WikiWordsCmd `cmd:"" help:"Count word frequencies in a Wikipedia XML dump"`
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("wordmine version %s\n", version)
	return nil
}

// ---------------------------------------------------------------------------
// hierarchy

// HierarchyExtractCmd scans a ConceptNet dump for is-a edges and writes the
// hierarchy exports.
type HierarchyExtractCmd struct {
	Dump          string  `arg:"" type:"path" help:"ConceptNet assertions dump (.csv or .csv.gz)"`
	Out           string  `name:"out" short:"o" default:"resources/hierarchy" type:"path" help:"Output directory"`
	Lang          string  `name:"lang" default:"en" help:"Source language"`
	POS           string  `name:"pos" default:"n" help:"Part-of-speech filter (empty disables)"`
	MinWeight     float64 `name:"min-weight" default:"1.0" help:"Minimum assertion weight"`
	TopCategories int     `name:"top-categories" default:"20" help:"Category count for the flat export"`
	DB            string  `name:"db" type:"path" help:"Also persist edges to this SQLite database"`
}

func (c *HierarchyExtractCmd) Run(ctx context.Context) error {
	start := time.Now()
	writer, err := export.NewWriter(c.Out, "hierarchy")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	logging.PipelineStart(ctx, "hierarchy", c.Lang, "dump", c.Dump)

	filter := newHierarchyFilter(c.Lang, c.POS, c.MinWeight)
	graph := hierarchy.NewGraph()

	scan, interrupted, err := scanDump(ctx, c.Dump, func(rec assertion.Record) {
		if edge, ok := filter.Hierarchy(rec); ok {
			graph.AddEdge(edge.Child, edge.Parent)
		}
	})
	if err != nil {
		return err
	}
	if interrupted {
		logging.WarnContext(ctx, "scan interrupted, writing partial results",
			"concepts", graph.ConceptCount(), "edges", graph.EdgeCount())
	}

	if err := writer.WriteJSON("category_hierarchy.json", graph.ExportHierarchy()); err != nil {
		return err
	}
	if err := writer.WriteJSON("category_flat.json", graph.ExportFlatCategories(c.TopCategories)); err != nil {
		return err
	}
	if err := writer.WriteJSON("category_stats.json", graph.ExportStats()); err != nil {
		return err
	}
	if err := writer.WriteJSON("filter_stats.json", dumpStats{Scan: scan, Filter: filter.Stats()}); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	if c.DB != "" {
		if err := persistHierarchy(c.DB, graph); err != nil {
			return err
		}
	}

	logging.PipelineDone(ctx, "hierarchy", c.Lang, time.Since(start),
		"concepts", graph.ConceptCount(),
		"edges", graph.EdgeCount())
	if interrupted {
		return errors.ErrInterrupted
	}
	return nil
}

// newHierarchyFilter builds the is-a filter for one language. A non-empty
// POS is strict: concepts carrying no POS tag at all are rejected, matching
// the shipped hierarchy data.
func newHierarchyFilter(lang, pos string, minWeight float64) *assertion.Filter {
	return assertion.NewFilter(assertion.Config{
		Relations:  hierarchyRelations,
		SourceLang: lang,
		POS:        pos,
		RequirePOS: pos != "",
		MinWeight:  minWeight,
	})
}

func persistHierarchy(path string, graph *hierarchy.Graph) error {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	exported := graph.ExportHierarchy()
	var edges []sqlitedb.HierarchyEdge
	for child, parents := range exported.ChildToParents {
		for _, parent := range parents {
			edges = append(edges, sqlitedb.HierarchyEdge{Child: child, Parent: parent})
		}
	}
	return sqlitedb.InsertHierarchyEdges(db, edges)
}

// HierarchyTreeCmd prints the nested subtree below one concept.
type HierarchyTreeCmd struct {
	Dump      string  `arg:"" type:"path" help:"ConceptNet assertions dump"`
	Root      string  `arg:"" help:"Concept to use as the tree root"`
	Lang      string  `name:"lang" default:"en" help:"Source language"`
	POS       string  `name:"pos" default:"n" help:"Part-of-speech filter (empty disables)"`
	MinWeight float64 `name:"min-weight" default:"1.0" help:"Minimum assertion weight"`
	MaxDepth  int     `name:"max-depth" default:"5" help:"Depth bound for the tree"`
}

func (c *HierarchyTreeCmd) Run(ctx context.Context) error {
	filter := newHierarchyFilter(c.Lang, c.POS, c.MinWeight)
	graph := hierarchy.NewGraph()

	_, interrupted, err := scanDump(ctx, c.Dump, func(rec assertion.Record) {
		if edge, ok := filter.Hierarchy(rec); ok {
			graph.AddEdge(edge.Child, edge.Parent)
		}
	})
	if err != nil {
		return err
	}
	if interrupted {
		return errors.Wrap(errors.ErrInterrupted, "dump scan")
	}

	rendered, err := renderTree(graph.BuildTree(c.Root, c.MaxDepth))
	if err != nil {
		return err
	}
	fmt.Println(rendered)
	return nil
}

// renderTree serializes a tree for printing. BuildTree already keys the
// result by its root, so the tree marshals as-is.
func renderTree(tree hierarchy.Tree) (string, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal tree")
	}
	return string(data), nil
}

// ---------------------------------------------------------------------------
// nouns

// NounsExtractCmd extracts noun frequencies from a UD treebank tarball for
// one or more languages.
type NounsExtractCmd struct {
	Treebanks    string   `arg:"" type:"path" help:"UD release tarball (.tgz)"`
	Langs        []string `name:"langs" help:"Languages to process (default: all supported)"`
	Out          string   `name:"out" short:"o" default:"resources/nouns" type:"path" help:"Output directory"`
	TargetLength int      `name:"target-length" default:"0" help:"Keep only lemmas of exactly this rune count (0 uses the language policy bounds)"`
	EasyCount    int      `name:"easy-count" default:"100" help:"Word count for the easy list split"`
}

func (c *NounsExtractCmd) Run(ctx context.Context) error {
	policies, err := loadPolicies()
	if err != nil {
		return err
	}
	langs := c.Langs
	if len(langs) == 0 {
		langs = langpolicy.Languages
	}

	writer, err := export.NewWriter(c.Out, "nouns")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())

	var failed int
	for _, lang := range langs {
		if err := ctx.Err(); err != nil {
			logging.WarnContext(ctx, "interrupted, stopping language loop", "lang", lang)
			break
		}

		prefix, ok := conllu.TreebankPrefix[lang]
		if !ok {
			logging.LanguageError(ctx, "nouns", lang, errors.NewUnsupported("language", lang))
			failed++
			continue
		}

		start := time.Now()
		logging.PipelineStart(ctx, "nouns", lang)
		policy := policies.Get(lang)
		opts := conllu.Options{
			Lang:         lang,
			Lowercase:    policy.Lowercase,
			TargetLength: c.TargetLength,
		}
		if c.TargetLength == 0 {
			opts.MinLen = policy.MinLen
			opts.MaxLen = policy.MaxLen
		}

		extractor := conllu.NewExtractor(opts)
		if err := extractor.ExtractFromTarball(c.Treebanks, prefix); err != nil {
			logging.LanguageError(ctx, "nouns", lang, err)
			failed++
			continue
		}

		ranked := extractor.Ranked()
		entries := make([]nounfreq.Entry, 0, len(ranked))
		for _, rn := range ranked {
			entries = append(entries, nounfreq.Entry{Word: rn.Word, Count: rn.Count})
		}
		if err := writer.WriteCSV(lang+"_nouns.csv", entries); err != nil {
			logging.LanguageError(ctx, "nouns", lang, err)
			failed++
			continue
		}

		easy, medium := conllu.SplitByRank(ranked, c.EasyCount)
		if err := writer.WriteLines(lang+"_easy_words.txt", easy); err != nil {
			return err
		}
		if err := writer.WriteLines(lang+"_medium_words.txt", medium); err != nil {
			return err
		}

		logging.PipelineDone(ctx, "nouns", lang, time.Since(start), "unique", len(ranked))
	}

	if err := writer.Finalize(); err != nil {
		return err
	}
	if failed == len(langs) {
		return errors.Wrap(errors.ErrInvalidInput, "every language failed")
	}
	return nil
}

// NounsMergeCmd merges word,count CSVs into one frequency list.
type NounsMergeCmd struct {
	Files []string `arg:"" type:"path" help:"Frequency CSVs to merge"`
	Lang  string   `name:"lang" default:"en" help:"Language policy to filter with"`
	Out   string   `name:"out" short:"o" default:"resources/nouns" type:"path" help:"Output directory"`
	Name  string   `name:"name" default:"merged_nouns.csv" help:"Output file name"`
}

func (c *NounsMergeCmd) Run(ctx context.Context) error {
	policies, err := loadPolicies()
	if err != nil {
		return err
	}
	policy := policies.Get(c.Lang)

	lists := make([][]nounfreq.Entry, 0, len(c.Files))
	for _, path := range c.Files {
		entries, err := nounfreq.ReadFile(path)
		if err != nil {
			return err
		}
		lists = append(lists, nounfreq.Filter(entries, policy))
	}

	merged := nounfreq.Merge(lists...)
	writer, err := export.NewWriter(c.Out, "nouns-merge")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	if err := writer.WriteCSV(c.Name, merged); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logging.InfoContext(ctx, "merged noun lists", "inputs", len(c.Files), "words", len(merged))
	return nil
}

// ---------------------------------------------------------------------------
// relations

// RelationsExtractCmd scans a ConceptNet dump for the related words of the
// target nouns, split into high and low frequency categories.
type RelationsExtractCmd struct {
	Dump      string `arg:"" type:"path" help:"ConceptNet assertions dump"`
	Nouns     string `name:"nouns" required:"" type:"path" help:"Noun frequency CSV naming the target words"`
	Lang      string `name:"lang" default:"en" help:"Language to extract"`
	Out       string `name:"out" short:"o" default:"resources/relations" type:"path" help:"Output directory"`
	HighCount int    `name:"high-count" default:"50" help:"Top noun count forming the high frequency category"`
}

func (c *RelationsExtractCmd) Run(ctx context.Context) error {
	start := time.Now()
	writer, err := export.NewWriter(c.Out, "relations")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	logging.PipelineStart(ctx, "relations", c.Lang, "dump", c.Dump)

	policies, err := loadPolicies()
	if err != nil {
		return err
	}
	policy := policies.Get(c.Lang)

	targets, err := nounfreq.ReadFile(c.Nouns)
	if err != nil {
		return err
	}
	targets = nounfreq.Filter(targets, policy)
	if len(targets) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "no usable target nouns")
	}

	high, low := splitTargets(targets, c.HighCount)
	agg := relations.NewAggregator(relations.Options{
		Lang:             c.Lang,
		Lowercase:        policy.Lowercase,
		SingleWordCheck:  policy.SingleWordCheck,
		CapitalizedMatch: !policy.Lowercase,
	})
	agg.AddTargets("high", high)
	agg.AddTargets("low", low)

	filter := assertion.NewFilter(assertion.Config{
		Relations:   tabooRelations,
		TargetLangs: []string{c.Lang},
	})

	scan, interrupted, err := scanDump(ctx, c.Dump, func(rec assertion.Record) {
		if edge, ok := filter.Relation(rec); ok {
			agg.Observe(edge)
		}
	})
	if err != nil {
		return err
	}
	if interrupted {
		logging.WarnContext(ctx, "scan interrupted, writing partial results")
	}

	if err := writer.WriteJSON(c.Lang+"_word_relations.json", agg.Finalize()); err != nil {
		return err
	}
	if err := writer.WriteJSON(c.Lang+"_filter_stats.json", dumpStats{Scan: scan, Filter: filter.Stats()}); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logging.PipelineDone(ctx, "relations", c.Lang, time.Since(start),
		"targets", agg.TargetCount())
	if interrupted {
		return errors.ErrInterrupted
	}
	return nil
}

func splitTargets(entries []nounfreq.Entry, highCount int) (high, low []string) {
	if highCount > len(entries) {
		highCount = len(entries)
	}
	for _, e := range entries[:highCount] {
		high = append(high, e.Word)
	}
	for _, e := range entries[highCount:] {
		low = append(low, e.Word)
	}
	return high, low
}

// RelationsScoreCmd attaches similarity scores to an extracted relations
// file.
type RelationsScoreCmd struct {
	Relations  string `arg:"" type:"path" help:"Extracted relations JSON"`
	Embeddings string `name:"embeddings" type:"path" help:"JSON map of precomputed embedding similarities"`
	Out        string `name:"out" short:"o" default:"resources/relations" type:"path" help:"Output directory"`
	Name       string `name:"name" default:"" help:"Output file name (default: input name with _with_similarity)"`
}

func (c *RelationsScoreCmd) Run(ctx context.Context) error {
	byCategory, err := loadRelations(c.Relations)
	if err != nil {
		return err
	}

	var embedder taboo.Embedder
	if c.Embeddings != "" {
		static, err := loadEmbeddings(c.Embeddings)
		if err != nil {
			return err
		}
		embedder = static
	}

	var all []*relations.Entry
	for _, entries := range byCategory {
		all = append(all, entries...)
	}
	taboo.Score(all, embedder, nil)

	name := c.Name
	if name == "" {
		name = scoredName(c.Relations)
	}
	writer, err := export.NewWriter(c.Out, "relations-score")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	if err := writer.WriteJSON(name, byCategory); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logging.InfoContext(ctx, "scored relations", "entries", len(all), "output", name)
	return nil
}

func scoredName(path string) string {
	base := path
	if idx := strings.LastIndexByte(base, '/'); idx >= 0 {
		base = base[idx+1:]
	}
	return strings.TrimSuffix(base, ".json") + "_with_similarity.json"
}

// RelationsTranslateCmd extracts cross-language translations for a word
// list.
type RelationsTranslateCmd struct {
	Dump       string   `arg:"" type:"path" help:"ConceptNet assertions dump"`
	Words      string   `name:"words" required:"" type:"path" help:"Word list, one word per line"`
	SourceLang string   `name:"source-lang" default:"en" help:"Language of the word list"`
	Langs      []string `name:"langs" help:"Target languages (default: all supported)"`
	POS        string   `name:"pos" default:"" help:"Part-of-speech filter on the source concept"`
	MinWeight  float64  `name:"min-weight" default:"1.0" help:"Minimum assertion weight"`
	Out        string   `name:"out" short:"o" default:"resources/translations" type:"path" help:"Output directory"`
}

func (c *RelationsTranslateCmd) Run(ctx context.Context) error {
	start := time.Now()
	writer, err := export.NewWriter(c.Out, "translate")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	logging.PipelineStart(ctx, "translate", c.SourceLang, "dump", c.Dump)

	words, err := readLines(c.Words)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "empty word list")
	}

	langs := c.Langs
	if len(langs) == 0 {
		langs = targetsExcept(c.SourceLang)
	}

	table := relations.NewTranslationTable(words)
	filter := assertion.NewFilter(assertion.Config{
		Relations:   translationRelations,
		SourceLang:  c.SourceLang,
		TargetLangs: langs,
		POS:         c.POS,
		MinWeight:   c.MinWeight,
	})

	_, interrupted, err := scanDump(ctx, c.Dump, func(rec assertion.Record) {
		if pair, ok := filter.Translation(rec); ok {
			table.Observe(pair)
		}
	})
	if err != nil {
		return err
	}
	if interrupted {
		logging.WarnContext(ctx, "scan interrupted, writing partial results", "matches", table.Matches())
	}

	if err := writer.WriteJSON("word_translations.json", table.Export()); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logging.PipelineDone(ctx, "translate", c.SourceLang, time.Since(start),
		"matches", table.Matches())
	if interrupted {
		return errors.ErrInterrupted
	}
	return nil
}

func targetsExcept(source string) []string {
	var langs []string
	for _, lang := range langpolicy.Languages {
		if lang != source {
			langs = append(langs, lang)
		}
	}
	return langs
}

// ---------------------------------------------------------------------------
// taboo

// TabooSampleCmd samples three-word taboo sets from a scored relations
// file.
type TabooSampleCmd struct {
	Relations      string `arg:"" type:"path" help:"Scored relations JSON"`
	Lang           string `name:"lang" default:"en" help:"Language, for the single-word policy"`
	MinPerCategory int    `name:"min-per-category" default:"50" help:"Quota that triggers the fallback pass"`
	Out            string `name:"out" short:"o" default:"resources/taboo" type:"path" help:"Output directory"`
	DB             string `name:"db" type:"path" help:"Also persist word sets to this SQLite database"`
}

func (c *TabooSampleCmd) Run(ctx context.Context) error {
	policies, err := loadPolicies()
	if err != nil {
		return err
	}
	policy := policies.Get(c.Lang)

	byCategory, err := loadRelations(c.Relations)
	if err != nil {
		return err
	}

	cfg := taboo.SelectorConfig{
		MinPerCategory:    c.MinPerCategory,
		RequireSingleWord: policy.SingleWordCheck,
	}
	high := taboo.Select(byCategory, []string{"high"}, cfg)
	low := taboo.Select(byCategory, []string{"low", "medium"}, cfg)

	writer, err := export.NewWriter(c.Out, "taboo-sample")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	if err := writer.WriteJSON("high_frequency_taboo_words.json", high); err != nil {
		return err
	}
	if err := writer.WriteJSON("low_frequency_taboo_words.json", low); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	if c.DB != "" {
		if err := persistWordSets(c.DB, c.Lang, high, low); err != nil {
			return err
		}
	}

	logging.InfoContext(ctx, "sampled taboo words",
		"lang", c.Lang, "high", len(high), "low", len(low))
	return nil
}

func persistWordSets(path, lang string, high, low []taboo.WordSet) error {
	db, err := sqlitedb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlitedb.InsertWordSets(db, lang, "high", high); err != nil {
		return err
	}
	return sqlitedb.InsertWordSets(db, lang, "low", low)
}

// TabooBuildCmd builds taboo lists straight from a dump: targets come from
// a noun frequency CSV and related words are diversified across relation
// types in frequency order.
type TabooBuildCmd struct {
	Dump      string `arg:"" type:"path" help:"ConceptNet assertions dump"`
	Nouns     string `name:"nouns" required:"" type:"path" help:"Noun frequency CSV naming the target words"`
	Lang      string `name:"lang" default:"en" help:"Language to extract"`
	Out       string `name:"out" short:"o" default:"resources/taboo" type:"path" help:"Output directory"`
	HighCount int    `name:"high-count" default:"50" help:"Complete entries forming the high frequency list"`
}

func (c *TabooBuildCmd) Run(ctx context.Context) error {
	start := time.Now()
	writer, err := export.NewWriter(c.Out, "taboo-build")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	logging.PipelineStart(ctx, "taboo-build", c.Lang, "dump", c.Dump)

	policies, err := loadPolicies()
	if err != nil {
		return err
	}
	policy := policies.Get(c.Lang)

	entries, err := nounfreq.ReadFile(c.Nouns)
	if err != nil {
		return err
	}
	entries = nounfreq.Filter(entries, policy)
	if len(entries) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "no usable target nouns")
	}

	words := make([]string, 0, len(entries))
	ranked := make([]taboo.RankedTarget, 0, len(entries))
	for _, e := range entries {
		words = append(words, e.Word)
		ranked = append(ranked, taboo.RankedTarget{Word: e.Word, Count: e.Count})
	}

	agg := relations.NewAggregator(relations.Options{
		Lang:             c.Lang,
		Lowercase:        policy.Lowercase,
		SingleWordCheck:  policy.SingleWordCheck,
		CapitalizedMatch: !policy.Lowercase,
	})
	agg.AddTargets("all", words)

	filter := assertion.NewFilter(assertion.Config{
		Relations:   tabooRelations,
		TargetLangs: []string{c.Lang},
	})

	_, interrupted, err := scanDump(ctx, c.Dump, func(rec assertion.Record) {
		if edge, ok := filter.Relation(rec); ok {
			agg.Observe(edge)
		}
	})
	if err != nil {
		return err
	}
	if interrupted {
		logging.WarnContext(ctx, "scan interrupted, building from partial relations")
	}

	edgesByTarget := make(map[string][]relations.Edge)
	for _, entry := range agg.Finalize()["all"] {
		edgesByTarget[entry.TargetWord] = entry.WordRelations
	}

	high, low := taboo.BuildByFrequency(ranked, edgesByTarget, taboo.BuilderConfig{
		HighFrequencyCount: c.HighCount,
	})

	if err := writer.WriteJSON("high_frequency_taboo_words.json", high); err != nil {
		return err
	}
	if err := writer.WriteJSON("low_frequency_taboo_words.json", low); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logging.PipelineDone(ctx, "taboo-build", c.Lang, time.Since(start),
		"high", len(high), "low", len(low))
	if interrupted {
		return errors.ErrInterrupted
	}
	return nil
}

// ---------------------------------------------------------------------------
// wiki

// WikiWordsCmd counts word frequencies in a Wikipedia pages-articles dump.
type WikiWordsCmd struct {
	Dump         string `arg:"" type:"path" help:"Wikipedia pages-articles XML dump (.xml or .xml.bz2)"`
	Lang         string `name:"lang" default:"en" help:"Language of the dump"`
	Length       int    `name:"length" default:"5" help:"Word length to keep (0 keeps all)"`
	MinFrequency int    `name:"min-frequency" default:"10" help:"Minimum occurrences to keep a word"`
	Out          string `name:"out" short:"o" default:"resources/wiki" type:"path" help:"Output directory"`
}

func (c *WikiWordsCmd) Run(ctx context.Context) error {
	start := time.Now()
	writer, err := export.NewWriter(c.Out, "wiki")
	if err != nil {
		return err
	}
	ctx = logging.WithRunID(ctx, writer.RunID())
	logging.PipelineStart(ctx, "wiki", c.Lang, "dump", c.Dump)

	stream, err := corpus.Open(c.Dump)
	if err != nil {
		return err
	}
	defer stream.Close()

	counter := wikiwords.NewCounter(wikiwords.Options{
		Lang:         c.Lang,
		TargetLength: c.Length,
		MinFrequency: c.MinFrequency,
	})

	var interrupted bool
	if err := counter.AddDump(ctx, stream); err != nil {
		if !errors.Is(err, errors.ErrInterrupted) {
			return err
		}
		interrupted = true
		logging.WarnContext(ctx, "scan interrupted, writing partial results")
	}

	length := "all"
	if c.Length > 0 {
		length = fmt.Sprintf("%d", c.Length)
	}
	name := fmt.Sprintf("%s_%s_letter_words.csv", c.Lang, length)

	words := counter.Words()
	if err := writer.WriteCSV(name, words); err != nil {
		return err
	}
	if err := writer.Finalize(); err != nil {
		return err
	}

	logging.PipelineDone(ctx, "wiki", c.Lang, time.Since(start),
		"words", len(words))
	if interrupted {
		return errors.ErrInterrupted
	}
	return nil
}

// ---------------------------------------------------------------------------
// helpers

// scanReport carries the raw line counts of one dump scan, written next to
// the filter stage counters so skipped malformed lines stay visible.
type scanReport struct {
	ScannedLines int64 `json:"scanned_lines"`
	ShortLines   int64 `json:"short_lines"`
}

// dumpStats is the filter-stats artifact: line counts plus stage counters.
type dumpStats struct {
	Scan   scanReport      `json:"scan"`
	Filter assertion.Stats `json:"filter"`
}

// scanDump streams a dump through fn. A context cancellation stops the scan
// and reports interrupted=true; everything fed to fn so far stays valid.
func scanDump(ctx context.Context, path string, fn func(assertion.Record)) (report scanReport, interrupted bool, err error) {
	stream, err := corpus.Open(path)
	if err != nil {
		return scanReport{}, false, err
	}
	defer stream.Close()

	scanner := assertion.NewScanner(stream)
	counts := func() scanReport {
		return scanReport{ScannedLines: scanner.Scanned(), ShortLines: scanner.Short()}
	}
	for {
		if scanner.Scanned()%100000 == 0 {
			if ctx.Err() != nil {
				return counts(), true, nil
			}
			if scanner.Scanned() > 0 && scanner.Scanned()%1000000 == 0 {
				logging.ScanProgress(ctx, path, scanner.Scanned())
			}
		}
		rec, err := scanner.Next()
		if err == io.EOF {
			return counts(), false, nil
		}
		if err != nil {
			return counts(), false, errors.NewIO("read", path, err)
		}
		fn(rec)
	}
}

func loadPolicies() (langpolicy.Table, error) {
	if CLI.Policies == "" {
		return langpolicy.Table{}, nil
	}
	return langpolicy.Load(CLI.Policies)
}

func loadRelations(path string) (map[string][]*relations.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("relations file", path)
		}
		return nil, errors.NewIO("read", path, err)
	}

	var byCategory map[string][]*relations.Entry
	if err := json.Unmarshal(data, &byCategory); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}
	return byCategory, nil
}

func loadEmbeddings(path string) (taboo.StaticEmbedder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("embeddings file", path)
		}
		return nil, errors.NewIO("read", path, err)
	}

	var embedder taboo.StaticEmbedder
	if err := json.Unmarshal(data, &embedder); err != nil {
		return nil, errors.NewParse("JSON", path, err.Error())
	}
	return embedder, nil
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("word list", path)
		}
		return nil, errors.NewIO("read", path, err)
	}

	var words []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	sort.Strings(words)
	return words, nil
}

func main() {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx := kong.Parse(&CLI,
		kong.Name("wordmine"),
		kong.Description("Lexical data extraction for word guessing games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.BindTo(runCtx, (*context.Context)(nil)),
	)

	logging.InitLogger(logging.ParseLevel(CLI.LogLevel), logging.ParseFormat(CLI.LogFormat))

	err := ctx.Run()
	if errors.Is(err, errors.ErrInterrupted) {
		logging.Warn("run interrupted, outputs are partial")
		os.Exit(130)
	}
	ctx.FatalIfErrorf(err)
}
