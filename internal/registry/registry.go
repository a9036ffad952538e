package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// AddResult is the outcome of a membership insert.
type AddResult int

const (
	Added AddResult = iota
	AlreadyPresent
	Declined
)

// RemoveResult is the outcome of a membership delete.
type RemoveResult int

const (
	Removed RemoveResult = iota
	NotFound
)

// Registry is the ordered set of registered hosts, persisted as a single
// scalar record (SERVERS="a b c") in a config file. Every mutation
// rewrites the whole record; readers never observe a partial write.
type Registry struct {
	path  string
	hosts []string
}

// Load reads the registry record at path. A missing file yields an empty
// registry. An unparsable file is downgraded to an empty registry with a
// warning, never a fatal error.
func Load(path string) *Registry {
	r := &Registry{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logrus.Warnf("registry %s unreadable, starting empty: %v", path, err)
		}
		return r
	}

	hosts, err := parseRecord(string(data))
	if err != nil {
		logrus.Warnf("registry %s corrupt, starting empty: %v", path, err)
		return r
	}

	r.hosts = hosts
	return r
}

// parseRecord extracts the host list from a SERVERS record. The stored
// content is parsed structurally, never evaluated.
func parseRecord(data string) ([]string, error) {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		value, ok := strings.CutPrefix(line, "SERVERS=")
		if !ok {
			return nil, fmt.Errorf("unexpected line %q", line)
		}
		value = strings.Trim(value, `"'`)
		return strings.Fields(value), nil
	}
	return nil, nil
}

// Hosts returns the registered hosts in insertion order.
func (r *Registry) Hosts() []string {
	return append([]string(nil), r.hosts...)
}

// Contains reports membership. Identity is the exact string, case
// sensitive, no normalization.
func (r *Registry) Contains(host string) bool {
	for _, h := range r.hosts {
		if h == host {
			return true
		}
	}
	return false
}

// Append adds host to the end of the sequence and persists the full
// registry. The caller is responsible for duplicate and reachability
// checks; Append itself rejects duplicates as a safety net.
func (r *Registry) Append(host string) error {
	if r.Contains(host) {
		return fmt.Errorf("host %q already registered", host)
	}
	r.hosts = append(r.hosts, host)
	if err := r.save(); err != nil {
		r.hosts = r.hosts[:len(r.hosts)-1]
		return err
	}
	return nil
}

// Remove deletes host from the sequence and persists. The host's data
// store is deliberately left untouched.
func (r *Registry) Remove(host string) (RemoveResult, error) {
	for i, h := range r.hosts {
		if h != host {
			continue
		}
		kept := append(append([]string(nil), r.hosts[:i]...), r.hosts[i+1:]...)
		prev := r.hosts
		r.hosts = kept
		if err := r.save(); err != nil {
			r.hosts = prev
			return NotFound, err
		}
		return Removed, nil
	}
	return NotFound, nil
}

// save rewrites the backing record atomically: write to a temp file in
// the same directory, then rename over the old record.
func (r *Registry) save() error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	record := fmt.Sprintf("SERVERS=%q\n", strings.Join(r.hosts, " "))

	tmp, err := os.CreateTemp(dir, "servers-*.conf")
	if err != nil {
		return err
	}
	if _, err := tmp.WriteString(record); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), r.path)
}
