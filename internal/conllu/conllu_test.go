package conllu

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleBlock = `# sent_id = weblog-blogspot.com_1
# text = Two dogs chased the cat.
1	Two	two	NUM	CD	_	2	nummod	_	_
2	dogs	dog	NOUN	NNS	_	3	nsubj	_	_
3	chased	chase	VERB	VBD	_	0	root	_	_
4	the	the	DET	DT	_	5	det	_	_
5	cat	cat	NOUN	NN	_	3	obj	_	_
`

func TestAddLine(t *testing.T) {
	e := NewExtractor(Options{Lang: "en", Lowercase: true})
	for _, line := range strings.Split(sampleBlock, "\n") {
		e.AddLine(line)
	}

	want := map[string]int{"dog": 1, "cat": 1}
	if !reflect.DeepEqual(e.Counts(), want) {
		t.Errorf("Counts = %v, want %v", e.Counts(), want)
	}
}

func TestAddLineSkipsRangesAndEmptyNodes(t *testing.T) {
	e := NewExtractor(Options{Lang: "en"})
	e.AddLine("1-2\tdogs\tdog\tNOUN\t_\t_\t_\t_\t_\t_")
	e.AddLine("2.1\tdogs\tdog\tNOUN\t_\t_\t_\t_\t_\t_")
	if len(e.Counts()) != 0 {
		t.Errorf("Counts = %v, want empty for range and empty-node IDs", e.Counts())
	}
}

func TestAddLineMissingLemmaUsesForm(t *testing.T) {
	e := NewExtractor(Options{Lang: "en", Lowercase: true})
	e.AddLine("1\tDogs\t_\tNOUN\t_\t_\t_\t_\t_\t_")
	if e.Counts()["dogs"] != 1 {
		t.Errorf("Counts = %v, want form counted when lemma is underscore", e.Counts())
	}
}

func TestAddLineDropsUnknownPlaceholder(t *testing.T) {
	de := NewExtractor(Options{Lang: "de"})
	de.AddLine("1\tunknown\tunknown\tNOUN\t_\t_\t_\t_\t_\t_")
	if len(de.Counts()) != 0 {
		t.Errorf("de Counts = %v, want the unknown placeholder dropped", de.Counts())
	}

	en := NewExtractor(Options{Lang: "en"})
	en.AddLine("1\tunknown\tunknown\tNOUN\t_\t_\t_\t_\t_\t_")
	if en.Counts()["unknown"] != 1 {
		t.Errorf("en Counts = %v, want a real English word kept", en.Counts())
	}
}

func TestAddLineLengthFilters(t *testing.T) {
	exact := NewExtractor(Options{Lang: "en", Lowercase: true, TargetLength: 5})
	exact.AddLine("1\thouse\thouse\tNOUN\t_\t_\t_\t_\t_\t_")
	exact.AddLine("1\tcat\tcat\tNOUN\t_\t_\t_\t_\t_\t_")
	if _, ok := exact.Counts()["cat"]; ok {
		t.Error("TargetLength 5 kept a three-letter word")
	}
	if _, ok := exact.Counts()["house"]; !ok {
		t.Error("TargetLength 5 dropped a five-letter word")
	}

	ranged := NewExtractor(Options{Lang: "en", Lowercase: true, MinLen: 3, MaxLen: 4})
	ranged.AddLine("1\tcat\tcat\tNOUN\t_\t_\t_\t_\t_\t_")
	ranged.AddLine("1\thouse\thouse\tNOUN\t_\t_\t_\t_\t_\t_")
	if _, ok := ranged.Counts()["house"]; ok {
		t.Error("range filter kept a word above MaxLen")
	}
	if _, ok := ranged.Counts()["cat"]; !ok {
		t.Error("range filter dropped a word inside the bounds")
	}
}

func TestCleanNoun(t *testing.T) {
	tests := []struct {
		in   string
		want string
		keep bool
	}{
		{"dog", "dog", true},
		{"-dog.", "dog", true},
		{"mother-in-law", "mother-in-law", true},
		{"o'clock", "o'clock", true},
		{"1234", "", false},
		{"...", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, keep := CleanNoun(tt.in)
		if got != tt.want || keep != tt.keep {
			t.Errorf("CleanNoun(%q) = %q, %v, want %q, %v", tt.in, got, keep, tt.want, tt.keep)
		}
	}
}

func TestRankedAndSplit(t *testing.T) {
	e := NewExtractor(Options{Lang: "en", Lowercase: true})
	lines := []string{
		"2\tdogs\tdog\tNOUN\t_\t_\t_\t_\t_\t_",
		"5\tcat\tcat\tNOUN\t_\t_\t_\t_\t_\t_",
		"2\tdog\tdog\tNOUN\t_\t_\t_\t_\t_\t_",
		"2\tbird\tbird\tNOUN\t_\t_\t_\t_\t_\t_",
	}
	for _, l := range lines {
		e.AddLine(l)
	}

	ranked := e.Ranked()
	want := []RankedNoun{{Word: "dog", Count: 2}, {Word: "bird", Count: 1}, {Word: "cat", Count: 1}}
	if !reflect.DeepEqual(ranked, want) {
		t.Errorf("Ranked = %v, want %v", ranked, want)
	}

	easy, medium := SplitByRank(ranked, 1)
	if !reflect.DeepEqual(easy, []string{"dog"}) {
		t.Errorf("easy = %v", easy)
	}
	if !reflect.DeepEqual(medium, []string{"bird", "cat"}) {
		t.Errorf("medium = %v", medium)
	}
}

func TestExtractFromTarball(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ud-treebanks.tgz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	files := map[string]string{
		"ud-treebanks-v2.17/UD_English-EWT/en_ewt-ud-train.conllu": sampleBlock,
		"ud-treebanks-v2.17/UD_French-GSD/fr_gsd-ud-train.conllu":  "1\tchien\tchien\tNOUN\t_\t_\t_\t_\t_\t_\n",
		"ud-treebanks-v2.17/UD_English-EWT/README.md":              "not a treebank",
	}
	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name: name, Typeflag: tar.TypeReg, Mode: 0o644, Size: int64(len(content)),
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor(Options{Lang: "en", Lowercase: true})
	if err := e.ExtractFromTarball(path, TreebankPrefix["en"]); err != nil {
		t.Fatalf("ExtractFromTarball: %v", err)
	}

	want := map[string]int{"dog": 1, "cat": 1}
	if !reflect.DeepEqual(e.Counts(), want) {
		t.Errorf("Counts = %v, want %v (no French, no README)", e.Counts(), want)
	}
}
