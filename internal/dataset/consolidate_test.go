package dataset

import (
	"reflect"
	"testing"
)

func datasetFor(t *testing.T, lang Language, usernames ...string) *Dataset {
	t.Helper()
	examples := make([]Example, len(usernames))
	for i, name := range usernames {
		examples[i] = exampleWith(name, name+"-"+string(lang), "tok")
	}
	ds, err := Builder{Language: lang}.Build(examples)
	if err != nil {
		t.Fatalf("Build %s: %v", lang, err)
	}
	return ds
}

func TestConsolidate_SharedUsernameSameIndex(t *testing.T) {
	t.Parallel()

	py := datasetFor(t, LangPython, "alice", "bob")
	c := datasetFor(t, LangC, "bob", "carol")

	master, err := Consolidate([]*Dataset{py, c})
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}

	bobIdx, ok := master["bob"]
	if !ok {
		t.Fatalf("master mapping missing bob: %v", master)
	}
	if got := py.Secondary.Labels[1]; got != bobIdx {
		t.Errorf("python bob label = %d, want %d", got, bobIdx)
	}
	if got := c.Secondary.Labels[0]; got != bobIdx {
		t.Errorf("c bob label = %d, want %d", got, bobIdx)
	}
}

func TestConsolidate_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	// Per-language label2idx is sorted-username order, so first-seen
	// master order is alice, bob (from python), then carol (new in c).
	py := datasetFor(t, LangPython, "bob", "alice")
	c := datasetFor(t, LangC, "carol", "bob")

	master, err := Consolidate([]*Dataset{py, c})
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}

	want := map[string]int{"alice": 0, "bob": 1, "carol": 2}
	if !reflect.DeepEqual(master, want) {
		t.Errorf("master = %v, want %v", master, want)
	}
	if got := MasterUsernames(master); !reflect.DeepEqual(got, []string{"alice", "bob", "carol"}) {
		t.Errorf("master order = %v", got)
	}
}

func TestConsolidate_OverwritesLabel2Idx(t *testing.T) {
	t.Parallel()

	py := datasetFor(t, LangPython, "alice")
	c := datasetFor(t, LangC, "bob")

	master, err := Consolidate([]*Dataset{py, c})
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}

	if !reflect.DeepEqual(py.Metadata.Label2Idx, master) {
		t.Errorf("python label2idx = %v, want master %v", py.Metadata.Label2Idx, master)
	}
	if !reflect.DeepEqual(c.Metadata.Label2Idx, master) {
		t.Errorf("c label2idx = %v, want master %v", c.Metadata.Label2Idx, master)
	}
}

func TestConsolidate_ReindexesAllLabels(t *testing.T) {
	t.Parallel()

	// In the c dataset alone, bob=0; after consolidation bob must take
	// the master index assigned when python introduced it.
	py := datasetFor(t, LangPython, "alice", "bob")
	c := datasetFor(t, LangC, "bob")

	master, err := Consolidate([]*Dataset{py, c})
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}
	if master["bob"] != 1 {
		t.Fatalf("bob master index = %d, want 1", master["bob"])
	}
	if got := c.Secondary.Labels[0]; got != 1 {
		t.Errorf("c bob label = %d, want 1", got)
	}
}

func TestConsolidate_CorruptMappingFails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ds   *Dataset
	}{
		{
			name: "duplicate old index",
			ds: &Dataset{
				Primary:   [][]string{{"a"}},
				Secondary: SecondaryData{ExampleIDs: []string{"1"}, Labels: []int{0}, Langs: []Language{LangC}},
				Metadata: Metadata{
					Label2Idx: map[string]int{"alice": 0, "bob": 0},
					Language:  LangC,
				},
			},
		},
		{
			name: "index out of range",
			ds: &Dataset{
				Primary:   [][]string{{"a"}},
				Secondary: SecondaryData{ExampleIDs: []string{"1"}, Labels: []int{0}, Langs: []Language{LangC}},
				Metadata: Metadata{
					Label2Idx: map[string]int{"alice": 5},
					Language:  LangC,
				},
			},
		},
		{
			name: "label outside vocabulary",
			ds: &Dataset{
				Primary:   [][]string{{"a"}},
				Secondary: SecondaryData{ExampleIDs: []string{"1"}, Labels: []int{3}, Langs: []Language{LangC}},
				Metadata: Metadata{
					Label2Idx: map[string]int{"alice": 0},
					Language:  LangC,
				},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Consolidate([]*Dataset{tt.ds}); err == nil {
				t.Error("expected consolidation error, got nil")
			}
		})
	}
}
