package invoke

import (
	"maps"
	"slices"
	"strings"

	"github.com/jpl-au/xmlkit/internal/validate"
)

// Params are stylesheet parameters passed to the transformer as name=value
// arguments. Empty values are not passed at all.
type Params map[string]string

// Args returns the parameters as command arguments, ordered by name.
func (p Params) Args() []Arg {
	args := make([]Arg, 0, len(p))
	for _, k := range slices.Sorted(maps.Keys(p)) {
		if p[k] == "" {
			continue
		}
		args = append(args, Param(k, p[k]))
	}
	return args
}

// Validate checks every name and value, in name order.
func (p Params) Validate() error {
	for _, k := range slices.Sorted(maps.Keys(p)) {
		if err := validate.Param(k, p[k]); err != nil {
			return err
		}
	}
	return nil
}

// Format renders the parameters as space-separated name=value tokens, quoting
// values that contain a space.
func (p Params) Format() string {
	args := p.Args()
	tokens := make([]string, len(args))
	for i, a := range args {
		tokens[i] = a.String()
	}
	return strings.Join(tokens, " ")
}

// ParseParams turns name=value strings (as given on the command line) into
// Params. Entries without "=" are returned in bad.
func ParseParams(pairs []string) (p Params, bad []string) {
	p = make(Params, len(pairs))
	for _, s := range pairs {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			bad = append(bad, s)
			continue
		}
		p[k] = v
	}
	return p, bad
}
