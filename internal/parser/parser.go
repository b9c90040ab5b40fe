package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const commentPrefix = "#"

// ParseFile reads an icon pool from the file at path.
func ParseFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads an icon pool, one icon per line. Blank lines and lines
// starting with "#" are skipped, and a trailing "# ..." comment is dropped.
// An icon may appear only once.
func Parse(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var icons []string
	seen := make(map[string]int)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if i := strings.Index(line, " "+commentPrefix); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if strings.ContainsAny(line, " \t") {
			return nil, fmt.Errorf("line %d: icon %q contains whitespace", lineNo, line)
		}
		if first, dup := seen[line]; dup {
			return nil, fmt.Errorf("line %d: icon %q already defined on line %d", lineNo, line, first)
		}
		seen[line] = lineNo
		icons = append(icons, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return icons, nil
}
