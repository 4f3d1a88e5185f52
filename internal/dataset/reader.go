package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// maxLineBytes bounds one JSONL record. Token streams for large source
// files can run long, so the scanner buffer is generous.
const maxLineBytes = 16 * 1024 * 1024

// ReadExamples reads newline-delimited JSON token records from path.
// Lines that fail to parse and lines whose token array is empty are
// skipped silently; both are filtering policy, not errors. The
// optional progress callback receives the running count of kept
// examples.
func ReadExamples(path string, progress func(read int)) ([]Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open examples: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	examples := make([]Example, 0)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ex Example
		if err := json.Unmarshal(line, &ex); err != nil {
			continue
		}
		if len(ex.Tokens) == 0 {
			continue
		}
		examples = append(examples, ex)
		if progress != nil {
			progress(len(examples))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read examples %s: %w", path, err)
	}
	return examples, nil
}

// ReadExampleFiles reads and concatenates several JSONL files in order.
func ReadExampleFiles(paths []string, progress func(read int)) ([]Example, error) {
	all := make([]Example, 0)
	for _, path := range paths {
		examples, err := ReadExamples(path, progress)
		if err != nil {
			return nil, err
		}
		all = append(all, examples...)
	}
	return all, nil
}
