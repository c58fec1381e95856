package setstore

import (
	"encoding/json"
	"io"
	"os"
	"strings"
)

// Named sets of lower-case strings, such as platform domains or community names.
//
// Lookups are safe from multiple goroutines once loading is finished; loading is not.
type MemSetStore struct {
	Sets map[string]map[string]bool
}

func NewMemSetStore() MemSetStore {
	return MemSetStore{
		Sets: make(map[string]map[string]bool),
	}
}

func (s MemSetStore) InSet(name, val string) bool {
	set, ok := s.Sets[name]
	if !ok {
		// NOTE: currently returns false when entire set isn't found
		return false
	}
	return set[strings.ToLower(val)]
}

// Checks a host name against a set of domains, also matching any parent domain. For example "m.youtube.com" is in a set containing "youtube.com".
func (s MemSetStore) InSetDomain(name, host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	for host != "" {
		if s.InSet(name, host) {
			return true
		}
		idx := strings.Index(host, ".")
		if idx < 0 {
			break
		}
		host = host[idx+1:]
	}
	return false
}

// Adds values to the named set, creating it if needed.
func (s *MemSetStore) Add(name string, vals ...string) {
	m, ok := s.Sets[name]
	if !ok {
		m = make(map[string]bool, len(vals))
		s.Sets[name] = m
	}
	for _, v := range vals {
		m[strings.ToLower(v)] = true
	}
}

// Returns the members of a set, in no particular order.
func (s MemSetStore) Members(name string) []string {
	set := s.Sets[name]
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	return out
}

func (s *MemSetStore) LoadFromFileJSON(p string) error {

	f, err := os.Open(p)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	return s.LoadJSON(f)
}

// Reads a JSON object of set name to list of values. Sets named in the input replace any existing set of the same name.
func (s *MemSetStore) LoadJSON(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var sets map[string][]string
	if err := json.Unmarshal(raw, &sets); err != nil {
		return err
	}

	for name, l := range sets {
		delete(s.Sets, name)
		s.Add(name, l...)
	}
	return nil
}
