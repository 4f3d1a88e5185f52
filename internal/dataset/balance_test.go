package dataset

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

// poolDataset builds a consolidated-label dataset directly: one
// single-token example per entry, labels already in the master space.
func poolDataset(lang Language, labels ...int) *Dataset {
	ds := &Dataset{Metadata: Metadata{Language: lang, Label2Idx: map[string]int{}}}
	for i, label := range labels {
		ds.Primary = append(ds.Primary, []string{fmt.Sprintf("%s-tok-%d", lang, i)})
		ds.Secondary.ExampleIDs = append(ds.Secondary.ExampleIDs, fmt.Sprintf("%s-%d", lang, i))
		ds.Secondary.Labels = append(ds.Secondary.Labels, label)
		ds.Secondary.Langs = append(ds.Secondary.Langs, lang)
	}
	return ds
}

func repeat(label int, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = label
	}
	return out
}

func labelCounts(sel Selection) map[int]int {
	counts := make(map[int]int)
	for _, label := range sel.Labels {
		counts[label]++
	}
	return counts
}

func TestBalance_ExactCountPerClass(t *testing.T) {
	t.Parallel()

	// Class 0 has 12 examples, class 1 has 9, class 2 only 5.
	labels := append(repeat(0, 12), append(repeat(1, 9), repeat(2, 5)...)...)
	ds := poolDataset(LangPython, labels...)

	sel, report, err := Balance([]*Dataset{ds}, BalanceConfig{FilesPerAuthor: 9}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	counts := labelCounts(sel)
	want := map[int]int{0: 9, 1: 9}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("label counts = %v, want %v", counts, want)
	}
	if report.EligibleClasses != 2 {
		t.Errorf("eligible classes = %d, want 2", report.EligibleClasses)
	}
	if sel.Len() != 18 {
		t.Errorf("selection size = %d, want 18", sel.Len())
	}
}

func TestBalance_ExactMode(t *testing.T) {
	t.Parallel()

	// 8, 9, and 10 raw examples: only the exactly-9 class survives.
	labels := append(repeat(0, 8), append(repeat(1, 9), repeat(2, 10)...)...)
	ds := poolDataset(LangC, labels...)

	sel, report, err := Balance(
		[]*Dataset{ds},
		BalanceConfig{FilesPerAuthor: 9, Exact: true},
		rand.New(rand.NewSource(7)),
	)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	counts := labelCounts(sel)
	want := map[int]int{1: 9}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("label counts = %v, want %v", counts, want)
	}
	if report.EligibleClasses != 1 {
		t.Errorf("eligible classes = %d, want 1", report.EligibleClasses)
	}
}

func TestBalance_MultilangGating(t *testing.T) {
	t.Parallel()

	// Class 0 exists only in python; class 1 spans python and c.
	py := poolDataset(LangPython, append(repeat(0, 9), repeat(1, 5)...)...)
	c := poolDataset(LangC, repeat(1, 5)...)

	sel, report, err := Balance(
		[]*Dataset{py, c},
		BalanceConfig{FilesPerAuthor: 9, Multilang: true},
		rand.New(rand.NewSource(3)),
	)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	counts := labelCounts(sel)
	if _, ok := counts[0]; ok {
		t.Errorf("single-language class 0 selected: %v", counts)
	}
	if counts[1] != 9 {
		t.Errorf("class 1 count = %d, want 9", counts[1])
	}
	if report.EligibleClasses != 1 {
		t.Errorf("eligible classes = %d, want 1", report.EligibleClasses)
	}
}

func TestBalance_MaxClassesTruncation(t *testing.T) {
	t.Parallel()

	labels := make([]int, 0, 45)
	for class := 0; class < 5; class++ {
		labels = append(labels, repeat(class, 9)...)
	}
	ds := poolDataset(LangCPP, labels...)

	sel, report, err := Balance(
		[]*Dataset{ds},
		BalanceConfig{FilesPerAuthor: 9, MaxClasses: 3},
		rand.New(rand.NewSource(11)),
	)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if sel.Len() != 27 {
		t.Errorf("selection size = %d, want 27", sel.Len())
	}
	counts := labelCounts(sel)
	if len(counts) != 3 {
		t.Errorf("distinct labels = %d, want 3", len(counts))
	}
	for label, count := range counts {
		if count != 9 {
			t.Errorf("class %d count = %d, want 9", label, count)
		}
	}
	if report.EligibleClasses != 5 {
		t.Errorf("eligible classes = %d, want 5", report.EligibleClasses)
	}
	if report.KeptClasses != 3 {
		t.Errorf("kept classes = %d, want 3", report.KeptClasses)
	}
	tuples := 0
	for _, n := range report.LanguageDistribution {
		tuples += n
	}
	if tuples != 3 {
		t.Errorf("distribution covers %d classes, want 3", tuples)
	}
}

func TestBalance_MaxClassesBeyondEligibleIsNoOp(t *testing.T) {
	t.Parallel()

	labels := append(repeat(0, 9), repeat(1, 9)...)
	ds := poolDataset(LangPython, labels...)

	sel, report, err := Balance(
		[]*Dataset{ds},
		BalanceConfig{FilesPerAuthor: 9, MaxClasses: 50},
		rand.New(rand.NewSource(5)),
	)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if sel.Len() != 18 {
		t.Errorf("selection size = %d, want 18", sel.Len())
	}
	if report.KeptClasses != 2 {
		t.Errorf("kept classes = %d, want 2", report.KeptClasses)
	}
}

func TestBalance_DeterministicUnderFixedSeed(t *testing.T) {
	t.Parallel()

	build := func() []*Dataset {
		labels := make([]int, 0, 60)
		for class := 0; class < 6; class++ {
			labels = append(labels, repeat(class, 10)...)
		}
		return []*Dataset{
			poolDataset(LangPython, labels[:30]...),
			poolDataset(LangC, labels[30:]...),
		}
	}
	cfg := BalanceConfig{FilesPerAuthor: 9, MaxClasses: 4}

	first, firstReport, err := Balance(build(), cfg, rand.New(rand.NewSource(62)))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	second, secondReport, err := Balance(build(), cfg, rand.New(rand.NewSource(62)))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("selections differ under identical seed")
	}
	if !reflect.DeepEqual(firstReport, secondReport) {
		t.Errorf("reports differ: %v vs %v", firstReport, secondReport)
	}
}

func TestBalance_DefaultFilesPerAuthor(t *testing.T) {
	t.Parallel()

	ds := poolDataset(LangPython, repeat(0, 20)...)
	sel, _, err := Balance([]*Dataset{ds}, BalanceConfig{}, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if sel.Len() != DefaultFilesPerAuthor {
		t.Errorf("selection size = %d, want %d", sel.Len(), DefaultFilesPerAuthor)
	}
}

func TestBalance_ThreeLanguageRoundTrip(t *testing.T) {
	t.Parallel()

	// alice (master index 0) has three examples in each of three
	// languages: nine total, multilingual, eligible with exact=false.
	datasets := []*Dataset{
		poolDataset(LangPython, repeat(0, 3)...),
		poolDataset(LangC, repeat(0, 3)...),
		poolDataset(LangCPP, repeat(0, 3)...),
	}

	sel, report, err := Balance(
		datasets,
		BalanceConfig{FilesPerAuthor: 9, Multilang: true},
		rand.New(rand.NewSource(13)),
	)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if sel.Len() != 9 {
		t.Fatalf("selection size = %d, want 9", sel.Len())
	}
	for i, label := range sel.Labels {
		if label != 0 {
			t.Errorf("selection[%d] label = %d, want 0", i, label)
		}
	}
	want := map[string]int{"c,cpp,python": 1}
	if !reflect.DeepEqual(report.LanguageDistribution, want) {
		t.Errorf("language distribution = %v, want %v", report.LanguageDistribution, want)
	}
}
