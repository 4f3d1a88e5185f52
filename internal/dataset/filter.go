package dataset

// FilterConfig selects which tokens of an example survive into the
// built dataset. Filters apply in declaration order and each narrows
// the token list produced by the previous one.
type FilterConfig struct {
	IncludeTypes    []string
	ExcludeTypes    []string
	ReservedOnly    bool
	NonreservedOnly bool
	MinAuthorUsage  int
}

// AuthorUsage maps a token value to the set of distinct usernames that
// used it. It is computed once per record batch and read-only after.
type AuthorUsage map[string]map[string]struct{}

// BuildAuthorUsage scans a record batch and records, for every token
// value, which authors used it.
func BuildAuthorUsage(examples []Example) AuthorUsage {
	usage := make(AuthorUsage)
	for _, ex := range examples {
		for _, tok := range ex.Tokens {
			authors, ok := usage[tok.Val]
			if !ok {
				authors = make(map[string]struct{})
				usage[tok.Val] = authors
			}
			authors[ex.Username] = struct{}{}
		}
	}
	return usage
}

// Count returns how many distinct authors used a token value.
func (u AuthorUsage) Count(val string) int {
	return len(u[val])
}

// Apply filters a token list. The reserved set and usage table are
// consulted only when the corresponding filter is enabled. The input
// slice is never mutated.
func (c FilterConfig) Apply(tokens []Token, reserved map[string]struct{}, usage AuthorUsage) []Token {
	out := make([]Token, len(tokens))
	copy(out, tokens)

	if len(c.ExcludeTypes) > 0 {
		exclude := makeSet(c.ExcludeTypes)
		out = keepTokens(out, func(t Token) bool {
			_, drop := exclude[t.Type]
			return !drop
		})
	} else if len(c.IncludeTypes) > 0 {
		include := makeSet(c.IncludeTypes)
		out = keepTokens(out, func(t Token) bool {
			_, keep := include[t.Type]
			return keep
		})
	}

	if c.ReservedOnly {
		out = keepTokens(out, func(t Token) bool {
			_, ok := reserved[t.Val]
			return ok
		})
	}
	if c.NonreservedOnly {
		out = keepTokens(out, func(t Token) bool {
			_, ok := reserved[t.Val]
			return !ok
		})
	}
	if c.MinAuthorUsage > 0 {
		out = keepTokens(out, func(t Token) bool {
			return usage.Count(t.Val) >= c.MinAuthorUsage
		})
	}
	return out
}

func keepTokens(tokens []Token, keep func(Token) bool) []Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if keep(tok) {
			out = append(out, tok)
		}
	}
	return out
}

func makeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
