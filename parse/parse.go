package parse

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// A TextFunc decodes a delimited text message. The header line is lines[0],
// payload is the header with its timestamp removed.
type TextFunc func(ts int64, payload string, lines []string) *Packet

// A JSONFunc decodes a single JSON object.
type JSONFunc func(obj Object) *Packet

// A Decoder recognizes one hardware message format by the Identifier token
// appearing in a text header payload or in a JSON object's model field.
// Several decoders may share a Name when one hardware family is announced
// under different identifiers.
type Decoder struct {
	Name       string
	Identifier string

	Text TextFunc
	JSON JSONFunc
}

// Registry holds decoders in match order: longest identifier first, ties
// broken by identifier and then by name.
type Registry struct {
	mu       sync.Mutex
	decoders []Decoder
	ordered  []Decoder
}

func NewRegistry(decoders ...Decoder) *Registry {
	r := new(Registry)
	for _, d := range decoders {
		r.Register(d)
	}
	return r
}

// Register adds a decoder. Registering an identifier twice, or a decoder with
// neither a text nor a JSON function, panics.
func (r *Registry) Register(d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Text == nil && d.JSON == nil {
		panic(fmt.Sprintf("parse: decoder has no parse functions (%s)", d.Name))
	}
	if d.Name == "" || d.Identifier == "" {
		panic(fmt.Sprintf("parse: decoder needs a name and an identifier (%q, %q)", d.Name, d.Identifier))
	}
	for _, existing := range r.decoders {
		if existing.Identifier == d.Identifier {
			panic(fmt.Sprintf("parse: identifier already registered (%s by %s)", d.Identifier, existing.Name))
		}
	}

	r.decoders = append(r.decoders, d)
	r.ordered = nil
}

// Decoders returns the registered decoders in match order.
func (r *Registry) Decoders() []Decoder {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ordered == nil {
		r.ordered = make([]Decoder, len(r.decoders))
		copy(r.ordered, r.decoders)
		sort.SliceStable(r.ordered, func(i, j int) bool {
			a, b := r.ordered[i], r.ordered[j]
			if len(a.Identifier) != len(b.Identifier) {
				return len(a.Identifier) > len(b.Identifier)
			}
			if a.Identifier != b.Identifier {
				return a.Identifier < b.Identifier
			}
			return a.Name < b.Name
		})
	}

	return r.ordered
}

// MatchText returns the first text decoder whose identifier appears in payload.
func (r *Registry) MatchText(payload string) (Decoder, bool) {
	for _, d := range r.Decoders() {
		if d.Text != nil && strings.Contains(payload, d.Identifier) {
			return d, true
		}
	}
	return Decoder{}, false
}

// MatchJSON returns the first JSON decoder whose identifier appears in model.
func (r *Registry) MatchJSON(model string) (Decoder, bool) {
	for _, d := range r.Decoders() {
		if d.JSON != nil && strings.Contains(model, d.Identifier) {
			return d, true
		}
	}
	return Decoder{}, false
}

// Names lists the distinct decoder names, sorted.
func (r *Registry) Names() (names []string) {
	seen := make(map[string]bool)
	for _, d := range r.Decoders() {
		if !seen[d.Name] {
			seen[d.Name] = true
			names = append(names, d.Name)
		}
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is populated by the decoder family packages from init.
// Link them in with a blank import:
//
// import _ "github.com/bemasher/rtlwx/sensors"
//
var DefaultRegistry = NewRegistry()

// Register adds decoders to the DefaultRegistry.
func Register(decoders ...Decoder) {
	for _, d := range decoders {
		DefaultRegistry.Register(d)
	}
}
