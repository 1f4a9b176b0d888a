package constants

import "strings"

// ParseSymbols turns a comma separated list into upper-case symbols, dropping
// blanks and duplicates while keeping the original order.
func ParseSymbols(raw string) []string {
	seen := make(map[string]struct{})
	symbols := make([]string, 0)
	for _, s := range strings.Split(raw, ",") {
		symbol := strings.ToUpper(strings.TrimSpace(s))
		if symbol == "" {
			continue
		}
		if _, found := seen[symbol]; found {
			continue
		}
		seen[symbol] = struct{}{}
		symbols = append(symbols, symbol)
	}
	return symbols
}
