package validation

import (
	"fmt"
	"strings"
)

// MaxNameLength is the longest name the npm registry accepts.
const MaxNameLength = 214

var blacklistedNames = []string{"node_modules", "favicon.ico"}

// coreModules are Node.js built-in module names that packages may not shadow.
var coreModules = map[string]struct{}{
	"assert": {}, "async_hooks": {}, "buffer": {}, "child_process": {}, "cluster": {},
	"console": {}, "constants": {}, "crypto": {}, "dgram": {}, "diagnostics_channel": {},
	"dns": {}, "domain": {}, "events": {}, "fs": {}, "http": {}, "http2": {}, "https": {},
	"inspector": {}, "module": {}, "net": {}, "os": {}, "path": {}, "perf_hooks": {},
	"process": {}, "punycode": {}, "querystring": {}, "readline": {}, "repl": {},
	"stream": {}, "string_decoder": {}, "sys": {}, "timers": {}, "tls": {},
	"trace_events": {}, "tty": {}, "url": {}, "util": {}, "v8": {}, "vm": {},
	"wasi": {}, "worker_threads": {}, "zlib": {},
}

// NotEmpty rejects empty names.
type NotEmpty struct{}

func (NotEmpty) Validate(name string) error {
	if name == "" {
		return fmt.Errorf("name length must be greater than zero")
	}
	return nil
}

// NoLeadingChar rejects names starting with Char.
type NoLeadingChar struct {
	Char        byte
	Description string
}

func (r NoLeadingChar) Validate(name string) error {
	if name != "" && name[0] == r.Char {
		return fmt.Errorf("name cannot start with %s", r.Description)
	}
	return nil
}

// NoSurroundingSpaces rejects leading or trailing whitespace.
type NoSurroundingSpaces struct{}

func (NoSurroundingSpaces) Validate(name string) error {
	if strings.TrimSpace(name) != name {
		return fmt.Errorf("name cannot contain leading or trailing spaces")
	}
	return nil
}

// NotBlacklisted rejects reserved names.
type NotBlacklisted struct {
	Names []string
}

func (r NotBlacklisted) Validate(name string) error {
	for _, n := range r.Names {
		if strings.EqualFold(n, name) {
			return fmt.Errorf("%s is a blacklisted name", n)
		}
	}
	return nil
}

// NotCoreModule rejects Node.js built-in module names.
type NotCoreModule struct{}

func (NotCoreModule) Validate(name string) error {
	if _, ok := coreModules[strings.ToLower(name)]; ok {
		return fmt.Errorf("%s is a core module name", name)
	}
	return nil
}

// MaxLength rejects names longer than Max.
type MaxLength struct {
	Max int
}

func (r MaxLength) Validate(name string) error {
	if len(name) > r.Max {
		return fmt.Errorf("name can no longer contain more than %d characters", r.Max)
	}
	return nil
}

// Lowercase rejects capital letters.
type Lowercase struct{}

func (Lowercase) Validate(name string) error {
	if strings.ToLower(name) != name {
		return fmt.Errorf("name can no longer contain capital letters")
	}
	return nil
}

// NoSpecialCharacters rejects characters npm no longer allows in new names.
type NoSpecialCharacters struct{}

func (NoSpecialCharacters) Validate(name string) error {
	last := name
	if i := strings.LastIndex(name, "/"); i >= 0 {
		last = name[i+1:]
	}
	if strings.ContainsAny(last, "~'!()*") {
		return fmt.Errorf(`name can no longer contain special characters ("~'!()*")`)
	}
	return nil
}

// URLFriendly rejects names that would change under URI component encoding.
// Scoped names (@scope/pkg) are checked per part.
type URLFriendly struct{}

func (URLFriendly) Validate(name string) error {
	if name == "" {
		return nil
	}
	if strings.HasPrefix(name, "@") {
		scope, pkg, found := strings.Cut(name[1:], "/")
		if found && scope != "" && pkg != "" && isURLSafe(scope) && isURLSafe(pkg) {
			return nil
		}
	}
	if !isURLSafe(name) {
		return fmt.Errorf("name can only contain URL-friendly characters")
	}
	return nil
}

// isURLSafe reports whether s contains only characters left untouched by
// encodeURIComponent.
func isURLSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte("-_.!~*'()", c) >= 0:
		default:
			return false
		}
	}
	return true
}
