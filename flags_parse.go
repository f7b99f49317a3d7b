package argbind

import (
	"strings"

	"github.com/pkg/errors"
)

// match splits args into the tokens that belong to defined options
// and everything else.  The matching tokens are rewritten into the
// "--name=value" form and handed to pflag.  The rest is returned in
// the order it was found.
func (g *grammar) match(args []string) ([]string, error) {
	var remaining []string
	matched := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		f := args[i]
		if f == "--" {
			remaining = append(remaining, args[i+1:]...)
			debugf("found -- at %d, remaining tokens are not ours", i)
			break
		}
		name, value, hasValue, ok := g.lookup(f)
		if !ok {
			remaining = append(remaining, f)
			continue
		}
		opt := g.options[name]
		switch {
		case hasValue && !opt.TakesValue:
			debugf("at %d, %s does not take a value", i, f)
			remaining = append(remaining, f)
		case hasValue:
			matched = append(matched, "--"+name+"="+value)
		case !opt.TakesValue:
			matched = append(matched, "--"+name)
		case i+1 < len(args):
			i++
			matched = append(matched, "--"+name+"="+args[i])
		default:
			debugf("at %d, %s expects a value but none follows", i, f)
			remaining = append(remaining, f)
		}
	}
	debugf("matched %v, remaining %v", matched, remaining)
	err := g.flags.Parse(matched)
	if err != nil {
		return remaining, errors.Wrap(err, "parse")
	}
	return remaining, nil
}

// lookup recognizes -name, --name, -name=value, and --name=value for
// defined options.
func (g *grammar) lookup(f string) (name string, value string, hasValue bool, ok bool) {
	var noDash string
	switch {
	case strings.HasPrefix(f, "--"):
		noDash = f[2:]
	case strings.HasPrefix(f, "-"):
		noDash = f[1:]
	default:
		return "", "", false, false
	}
	name = noDash
	if i := strings.IndexByte(noDash, '='); i != -1 {
		name = noDash[:i]
		value = noDash[i+1:]
		hasValue = true
	}
	if _, found := g.options[name]; !found {
		return "", "", false, false
	}
	return name, value, hasValue, true
}
