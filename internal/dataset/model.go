// Package dataset builds balanced, label-aligned token datasets for the
// authorship-attribution baseline. Per-language datasets are built from
// pre-tokenized JSONL records, consolidated into one label space, and
// subsampled to a fixed number of files per author.
package dataset

import "fmt"

// Language tags a per-language dataset.
type Language string

// Supported source languages.
const (
	LangPython Language = "python"
	LangC      Language = "c"
	LangCPP    Language = "cpp"
)

// AllLanguages returns the closed language set in build order.
func AllLanguages() []Language {
	return []Language{LangPython, LangC, LangCPP}
}

// Token is one lexical token with its textual value and syntactic
// category. Tokens are immutable once read.
type Token struct {
	Val  string `json:"val"`
	Type string `json:"type"`
}

// Example is one source file's worth of tokens.
type Example struct {
	Username  string  `json:"username"`
	ExampleID string  `json:"example_id"`
	Tokens    []Token `json:"tokens"`
}

// SecondaryData holds per-example fields parallel to Dataset.Primary.
type SecondaryData struct {
	ExampleIDs []string
	Labels     []int
	Langs      []Language
	SeqTypes   [][]string
}

// Metadata describes a per-language dataset.
type Metadata struct {
	Label2Idx map[string]int
	Language  Language
}

// Dataset is one per-language dataset: filtered lowercased token value
// sequences plus parallel per-example metadata.
type Dataset struct {
	Primary   [][]string
	Secondary SecondaryData
	Metadata  Metadata
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return len(d.Primary)
}

// Validate checks that every secondary field is parallel to Primary.
func (d *Dataset) Validate() error {
	n := len(d.Primary)
	if len(d.Secondary.ExampleIDs) != n {
		return fmt.Errorf("dataset %s: %d example ids for %d examples", d.Metadata.Language, len(d.Secondary.ExampleIDs), n)
	}
	if len(d.Secondary.Labels) != n {
		return fmt.Errorf("dataset %s: %d labels for %d examples", d.Metadata.Language, len(d.Secondary.Labels), n)
	}
	if len(d.Secondary.Langs) != n {
		return fmt.Errorf("dataset %s: %d language tags for %d examples", d.Metadata.Language, len(d.Secondary.Langs), n)
	}
	if d.Secondary.SeqTypes != nil && len(d.Secondary.SeqTypes) != n {
		return fmt.Errorf("dataset %s: %d type sequences for %d examples", d.Metadata.Language, len(d.Secondary.SeqTypes), n)
	}
	return nil
}
