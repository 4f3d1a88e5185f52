// Package reserved provides per-language reserved-word and builtin
// identifier sets. The filter treats them as opaque string sets.
package reserved

import "github.com/nayakneha/code-authorship/internal/dataset"

var pythonKeywords = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else",
	"except", "finally", "for", "from", "global", "if", "import",
	"in", "is", "lambda", "nonlocal", "not", "or", "pass", "raise",
	"return", "try", "while", "with", "yield",
}

var pythonBuiltins = []string{
	"abs", "all", "any", "ascii", "bin", "bool", "bytearray", "bytes",
	"callable", "chr", "classmethod", "compile", "complex", "delattr",
	"dict", "dir", "divmod", "enumerate", "eval", "exec", "filter",
	"float", "format", "frozenset", "getattr", "globals", "hasattr",
	"hash", "help", "hex", "id", "input", "int", "isinstance",
	"issubclass", "iter", "len", "list", "locals", "map", "max",
	"memoryview", "min", "next", "object", "oct", "open", "ord",
	"pow", "print", "property", "range", "repr", "reversed", "round",
	"set", "setattr", "slice", "sorted", "staticmethod", "str", "sum",
	"super", "tuple", "type", "vars", "zip",
	"ArithmeticError", "AssertionError", "AttributeError",
	"BaseException", "Exception", "IndexError", "KeyError",
	"KeyboardInterrupt", "NameError", "NotImplementedError",
	"OSError", "OverflowError", "RuntimeError", "StopIteration",
	"SyntaxError", "TypeError", "ValueError", "ZeroDivisionError",
	"__import__", "__name__",
}

var cKeywords = []string{
	"auto", "break", "case", "char", "const", "continue", "default",
	"do", "double", "else", "enum", "extern", "float", "for", "goto",
	"if", "inline", "int", "long", "register", "restrict", "return",
	"short", "signed", "sizeof", "static", "struct", "switch",
	"typedef", "union", "unsigned", "void", "volatile", "while",
	"_Bool", "_Complex", "_Imaginary",
}

var cBuiltins = []string{
	"NULL", "EOF", "stdin", "stdout", "stderr",
	"printf", "fprintf", "sprintf", "scanf", "fscanf", "sscanf",
	"getchar", "putchar", "gets", "puts", "fopen", "fclose", "fread",
	"fwrite", "fgets", "fputs", "malloc", "calloc", "realloc", "free",
	"memcpy", "memmove", "memset", "memcmp", "strlen", "strcmp",
	"strncmp", "strcpy", "strncpy", "strcat", "strchr", "strstr",
	"atoi", "atof", "abs", "exit", "qsort", "rand", "srand",
}

var cppKeywords = []string{
	"alignas", "alignof", "bool", "catch", "class", "constexpr",
	"const_cast", "decltype", "delete", "dynamic_cast", "explicit",
	"export", "false", "friend", "mutable", "namespace", "new",
	"noexcept", "nullptr", "operator", "private", "protected",
	"public", "reinterpret_cast", "static_assert", "static_cast",
	"template", "this", "thread_local", "throw", "true", "try",
	"typeid", "typename", "using", "virtual", "wchar_t",
}

var cppBuiltins = []string{
	"std", "cin", "cout", "cerr", "endl", "string", "vector", "map",
	"set", "pair", "make_pair", "push_back", "pop_back", "size",
	"begin", "end", "sort", "min", "max", "swap", "find", "insert",
	"erase", "count", "first", "second", "iterator",
}

var byLanguage = map[dataset.Language]map[string]struct{}{
	dataset.LangPython: makeSet(pythonKeywords, pythonBuiltins),
	dataset.LangC:      makeSet(cKeywords, cBuiltins),
	// C++ keeps every C keyword and libc name.
	dataset.LangCPP: makeSet(cKeywords, cBuiltins, cppKeywords, cppBuiltins),
}

// Words returns the reserved-word/builtin set for a language. The set
// is built once and must not be mutated by callers.
func Words(lang dataset.Language) map[string]struct{} {
	return byLanguage[lang]
}

func makeSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, word := range list {
			set[word] = struct{}{}
		}
	}
	return set
}
