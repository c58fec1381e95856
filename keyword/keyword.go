package keyword

import "slices"

// Helper to check a single token against a list of tokens
func TokenInSet(tok string, set []string) bool {
	return slices.Contains(set, tok)
}

// Returns true if any of the tokens is in the set
func AnyTokenInSet(tokens []string, set []string) bool {
	for _, tok := range tokens {
		if TokenInSet(tok, set) {
			return true
		}
	}
	return false
}
