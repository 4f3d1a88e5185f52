package dataset

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// DefaultFilesPerAuthor is the number of examples retained per class.
const DefaultFilesPerAuthor = 9

// BalanceConfig controls class balancing of the consolidated pool.
type BalanceConfig struct {
	// FilesPerAuthor is the exact number of examples kept per retained
	// class. Zero means DefaultFilesPerAuthor.
	FilesPerAuthor int
	// Exact restricts eligibility to classes with exactly
	// FilesPerAuthor examples instead of at least that many.
	Exact bool
	// Multilang restricts eligibility to classes whose examples span
	// more than one language.
	Multilang bool
	// MaxClasses truncates the selection to the first MaxClasses
	// eligible classes. Zero keeps all of them.
	MaxClasses int
}

func (c BalanceConfig) filesPerAuthor() int {
	if c.FilesPerAuthor > 0 {
		return c.FilesPerAuthor
	}
	return DefaultFilesPerAuthor
}

// Selection is the balanced subset fed to vectorization and training.
// The three slices are parallel and in selection order.
type Selection struct {
	Texts  [][]string
	Labels []int
	Langs  []Language
}

// Len returns the number of selected examples.
func (s Selection) Len() int {
	return len(s.Labels)
}

// BalanceReport records balancing diagnostics.
type BalanceReport struct {
	PoolSize int `json:"pool_size"`
	// EligibleClasses counts classes that met the size and language
	// requirements, before any max-classes truncation.
	EligibleClasses int `json:"eligible_classes"`
	// KeptClasses counts classes surviving truncation.
	KeptClasses    int `json:"kept_classes"`
	FilesPerAuthor int `json:"files_per_author"`
	// LanguageDistribution counts retained classes by the sorted set
	// of languages among their kept examples, e.g. "c,python".
	LanguageDistribution map[string]int `json:"language_distribution"`
}

// Balance pools every dataset's examples, shuffles the pool, and keeps
// exactly files-per-author examples for each eligible class. The class
// processing order is itself shuffled, which decides which classes
// survive a max-classes truncation. The rng drives both shuffles, so a
// fixed seed reproduces the selection byte for byte.
func Balance(datasets []*Dataset, cfg BalanceConfig, rng *rand.Rand) (Selection, BalanceReport, error) {
	filesPerAuthor := cfg.filesPerAuthor()

	pool := concatPool(datasets)
	n := pool.Len()

	shufflePool(pool, rng)

	labelOrder := distinctLabels(pool.Labels)
	rng.Shuffle(len(labelOrder), func(i, j int) {
		labelOrder[i], labelOrder[j] = labelOrder[j], labelOrder[i]
	})

	positionsByLabel := make(map[int][]int, len(labelOrder))
	for i, label := range pool.Labels {
		positionsByLabel[label] = append(positionsByLabel[label], i)
	}

	keep := make([]int, 0, n)
	langTuples := make([]string, 0, len(labelOrder))
	found := 0

	for _, label := range labelOrder {
		positions := positionsByLabel[label]
		if cfg.Exact {
			if len(positions) != filesPerAuthor {
				continue
			}
		} else if len(positions) < filesPerAuthor {
			continue
		}
		if cfg.Multilang && countLanguages(pool.Langs, positions) < 2 {
			continue
		}

		take := positions[:filesPerAuthor]
		keep = append(keep, take...)
		found++
		langTuples = append(langTuples, languageTuple(pool.Langs, take))
	}

	// Internal consistency check. A mismatch is a balancing defect,
	// not a data condition.
	if len(keep) != filesPerAuthor*found {
		return Selection{}, BalanceReport{}, fmt.Errorf(
			"balance: kept %d indices for %d classes of %d files each", len(keep), found, filesPerAuthor)
	}

	kept := found
	if cfg.MaxClasses > 0 && cfg.MaxClasses < found {
		keep = keep[:cfg.MaxClasses*filesPerAuthor]
		langTuples = langTuples[:cfg.MaxClasses]
		kept = cfg.MaxClasses
	}

	selection := Selection{
		Texts:  make([][]string, 0, len(keep)),
		Labels: make([]int, 0, len(keep)),
		Langs:  make([]Language, 0, len(keep)),
	}
	for _, idx := range keep {
		selection.Texts = append(selection.Texts, pool.Texts[idx])
		selection.Labels = append(selection.Labels, pool.Labels[idx])
		selection.Langs = append(selection.Langs, pool.Langs[idx])
	}

	report := BalanceReport{
		PoolSize:             n,
		EligibleClasses:      found,
		KeptClasses:          kept,
		FilesPerAuthor:       filesPerAuthor,
		LanguageDistribution: countTuples(langTuples),
	}
	return selection, report, nil
}

type pool struct {
	Texts  [][]string
	Labels []int
	Langs  []Language
}

func (p *pool) Len() int {
	return len(p.Labels)
}

func concatPool(datasets []*Dataset) *pool {
	p := &pool{}
	for _, ds := range datasets {
		p.Texts = append(p.Texts, ds.Primary...)
		p.Labels = append(p.Labels, ds.Secondary.Labels...)
		p.Langs = append(p.Langs, ds.Secondary.Langs...)
	}
	return p
}

// shufflePool applies one permutation to all three parallel slices.
func shufflePool(p *pool, rng *rand.Rand) {
	rng.Shuffle(p.Len(), func(i, j int) {
		p.Texts[i], p.Texts[j] = p.Texts[j], p.Texts[i]
		p.Labels[i], p.Labels[j] = p.Labels[j], p.Labels[i]
		p.Langs[i], p.Langs[j] = p.Langs[j], p.Langs[i]
	})
}

// distinctLabels returns the distinct labels in a deterministic base
// order; callers shuffle it.
func distinctLabels(labels []int) []int {
	seen := make(map[int]struct{}, len(labels))
	out := make([]int, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Ints(out)
	return out
}

func countLanguages(langs []Language, positions []int) int {
	distinct := make(map[Language]struct{}, len(positions))
	for _, idx := range positions {
		distinct[langs[idx]] = struct{}{}
	}
	return len(distinct)
}

// languageTuple renders the sorted distinct languages among the kept
// positions, e.g. "c,python".
func languageTuple(langs []Language, positions []int) string {
	distinct := make(map[Language]struct{}, len(positions))
	for _, idx := range positions {
		distinct[langs[idx]] = struct{}{}
	}
	names := make([]string, 0, len(distinct))
	for lang := range distinct {
		names = append(names, string(lang))
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

func countTuples(tuples []string) map[string]int {
	counts := make(map[string]int, len(tuples))
	for _, tuple := range tuples {
		counts[tuple]++
	}
	return counts
}
