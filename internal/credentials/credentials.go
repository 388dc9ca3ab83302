// Package credentials implements per-request resolution of external
// provider API keys: a caller-supplied override shadows the server-side
// default, and an empty override falls through to the default rather than
// blanking it. Resolved values live only for the duration of one request
// and are never logged or echoed back.
package credentials

import "strings"

// Name identifies one external-service credential in the fixed registry.
type Name string

const (
	Tavily       Name = "tavily"
	OpenAI       Name = "openai"
	AlphaVantage Name = "alpha_vantage"
)

// Names returns the fixed credential registry in stable order.
func Names() []Name {
	return []Name{Tavily, OpenAI, AlphaVantage}
}

// Overrides holds per-request caller-supplied keys. A nil entry means the
// field was absent from the payload; a pointer to "" means it was sent
// blank. Both resolve the same way, but the distinction is preserved for
// the envelope layer.
type Overrides map[Name]*string

// Defaults holds server-configured keys, read once at process start.
// Empty values mean "no default".
type Defaults map[Name]string

// Resolved is the per-request credential set. Zero value is usable and
// reports every credential absent.
type Resolved struct {
	values map[Name]string
}

// Resolve applies the precedence rule for every name in the registry:
// non-empty override, else non-empty default, else absent. Pure function,
// no side effects.
func Resolve(overrides Overrides, defaults Defaults) Resolved {
	values := make(map[Name]string, len(Names()))
	for _, name := range Names() {
		if ov, ok := overrides[name]; ok && ov != nil && *ov != "" {
			values[name] = *ov
			continue
		}
		if def := defaults[name]; def != "" {
			values[name] = def
		}
	}
	return Resolved{values: values}
}

// Lookup returns the resolved secret for name and whether it is present.
func (r Resolved) Lookup(name Name) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether a usable credential exists for name. Consumers must
// treat absence as "capability unavailable" and degrade rather than fail.
func (r Resolved) Has(name Name) bool {
	_, ok := r.values[name]
	return ok
}

// String renders presence only, never values. Safe for logs.
func (r Resolved) String() string {
	parts := make([]string, 0, len(Names()))
	for _, name := range Names() {
		state := "absent"
		if r.Has(name) {
			state = "set"
		}
		parts = append(parts, string(name)+"="+state)
	}
	return strings.Join(parts, " ")
}
