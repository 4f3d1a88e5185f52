package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// Builder converts filtered token records into one per-language
// dataset. The language tag is configuration, not a subtype.
type Builder struct {
	Language Language
	Filter   FilterConfig
	// EmitTypes additionally records per-example token type sequences.
	EmitTypes bool
	// Reserved is the language's reserved-word/builtin set, consulted
	// only by the reserved/nonreserved filters.
	Reserved map[string]struct{}
	// Usage is the precomputed author-usage table. When nil and the
	// min-author-usage filter is enabled, it is computed from the
	// record batch itself.
	Usage AuthorUsage
}

// Build produces a Dataset from a batch of examples. Callers reject
// empty-token examples at ingestion; Build assumes every example has
// at least one raw token.
func (b Builder) Build(examples []Example) (*Dataset, error) {
	usage := b.Usage
	if usage == nil && b.Filter.MinAuthorUsage > 0 {
		usage = BuildAuthorUsage(examples)
	}

	primary := make([][]string, 0, len(examples))
	usernames := make([]string, 0, len(examples))
	exampleIDs := make([]string, 0, len(examples))
	var seqTypes [][]string
	if b.EmitTypes {
		seqTypes = make([][]string, 0, len(examples))
	}

	for _, ex := range examples {
		tokens := b.Filter.Apply(ex.Tokens, b.Reserved, usage)

		// Case is ignored.
		vals := make([]string, len(tokens))
		for i, tok := range tokens {
			vals[i] = strings.ToLower(tok.Val)
		}
		primary = append(primary, vals)
		usernames = append(usernames, ex.Username)
		exampleIDs = append(exampleIDs, ex.ExampleID)

		if b.EmitTypes {
			types := make([]string, len(tokens))
			for i, tok := range tokens {
				types[i] = tok.Type
			}
			seqTypes = append(seqTypes, types)
		}
	}

	labels, label2idx := buildLabelVocab(usernames)

	langs := make([]Language, len(exampleIDs))
	for i := range langs {
		langs[i] = b.Language
	}

	ds := &Dataset{
		Primary: primary,
		Secondary: SecondaryData{
			ExampleIDs: exampleIDs,
			Labels:     labels,
			Langs:      langs,
			SeqTypes:   seqTypes,
		},
		Metadata: Metadata{
			Label2Idx: label2idx,
			Language:  b.Language,
		},
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("build %s dataset: %w", b.Language, err)
	}
	return ds, nil
}

// buildLabelVocab assigns each distinct username a dense 0-based index
// in lexicographic order and encodes the username list with it.
func buildLabelVocab(usernames []string) ([]int, map[string]int) {
	seen := make(map[string]struct{}, len(usernames))
	vocab := make([]string, 0, len(usernames))
	for _, name := range usernames {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		vocab = append(vocab, name)
	}
	sort.Strings(vocab)

	label2idx := make(map[string]int, len(vocab))
	for i, name := range vocab {
		label2idx[name] = i
	}

	labels := make([]int, len(usernames))
	for i, name := range usernames {
		labels[i] = label2idx[name]
	}
	return labels, label2idx
}
