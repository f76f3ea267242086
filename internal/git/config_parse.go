package git

import "strings"

// ConfigMap maps fully-qualified dotted keys to values
type ConfigMap map[string]string

// ParseConfigList parses "config --list" output. Only the first "=" splits
// key from value. A key printed without "=" is a valueless boolean and maps
// to "". Later duplicates overwrite earlier ones.
func ParseConfigList(lines []string) ConfigMap {
	config := ConfigMap{}
	for _, line := range lines {
		if line == "" {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		config[key] = value
	}
	return config
}

// Section returns the entries whose key starts with "<prefix>.", with the
// prefix removed
func (c ConfigMap) Section(prefix string) ConfigMap {
	out := ConfigMap{}
	for key, value := range c {
		if rest, ok := strings.CutPrefix(key, prefix+"."); ok {
			out[rest] = value
		}
	}
	return out
}
