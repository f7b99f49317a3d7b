package argbind

import (
	"io"
	"strings"

	"github.com/muir/commonerrors"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// PlaceholderAnnotation is the pflag annotation that holds the value
// placeholder of an argument option, eg "COUNT" for "-count COUNT".
const PlaceholderAnnotation = "placeholder"

// Option is one command line switch.  Argument options take exactly one
// value.  Command options take none: only their presence matters.
type Option struct {
	Name        string
	Description string
	Placeholder string // empty for commands
	TakesValue  bool
	value       *tokenValue
}

// Syntax describes how the option is used: "-count COUNT" or "-reset".
func (o *Option) Syntax() string {
	if o.TakesValue {
		return "-" + o.Name + " " + o.Placeholder
	}
	return "-" + o.Name
}

// Present reports if the option was found in the arguments.
func (o *Option) Present() bool {
	return o.value.count > 0
}

// Value is the raw token given for the option.  When an option is
// given more than once, the last one wins.
func (o *Option) Value() string {
	return o.value.raw
}

// tokenValue is the pflag.Value behind every Option.  It never fails:
// conversion happens later with a TypeReader.
type tokenValue struct {
	takesValue bool
	raw        string
	count      int
}

var _ pflag.Value = &tokenValue{}

func (v *tokenValue) String() string { return v.raw }
func (v *tokenValue) Set(s string) error {
	v.raw = s
	v.count++
	return nil
}

func (v *tokenValue) Type() string {
	if v.takesValue {
		return "string"
	}
	return "bool"
}

// grammar wraps the pflag.FlagSet built for a single Init.
type grammar struct {
	flags   *pflag.FlagSet
	options map[string]*Option
	order   []*Option
}

func newGrammar() *grammar {
	fs := pflag.NewFlagSet("argbind", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SortFlags = false
	return &grammar{
		flags:   fs,
		options: make(map[string]*Option),
	}
}

// buildGrammar defines one option per binding, arguments first, in
// discovery order.
func buildGrammar(arguments []*argumentBinding, commands []*commandBinding) (*grammar, error) {
	g := newGrammar()
	for _, a := range arguments {
		opt, err := g.define(a.name, a.description, true)
		if err != nil {
			return nil, errors.Wrap(err, a.source)
		}
		a.option = opt
	}
	for _, c := range commands {
		opt, err := g.define(c.name, c.description, false)
		if err != nil {
			return nil, errors.Wrap(err, c.source)
		}
		c.option = opt
	}
	return g, nil
}

func (g *grammar) define(name string, description string, takesValue bool) (*Option, error) {
	if existing, ok := g.options[name]; ok {
		return nil, commonerrors.ProgrammerError(errors.Wrapf(ErrDuplicateName,
			"%s is already defined as %s", name, existing.Syntax()))
	}
	opt := &Option{
		Name:        name,
		Description: description,
		TakesValue:  takesValue,
		value: &tokenValue{
			takesValue: takesValue,
		},
	}
	f := g.flags.VarPF(opt.value, name, "", description)
	if takesValue {
		opt.Placeholder = strings.ToUpper(name)
		err := g.flags.SetAnnotation(name, PlaceholderAnnotation, []string{opt.Placeholder})
		if err != nil {
			return nil, errors.Wrap(err, name)
		}
	} else {
		f.NoOptDefVal = "true"
	}
	debugf("defined option %s", opt.Syntax())
	g.options[name] = opt
	g.order = append(g.order, opt)
	return opt, nil
}

// validName rejects names that could not be matched on a command line.
func validName(name string) bool {
	if name == "" || strings.HasPrefix(name, "-") {
		return false
	}
	return !strings.ContainsAny(name, "= \t\n")
}
