package argbind

import (
	"os"
	"reflect"
	"sync"

	"github.com/muir/nject"
	"github.com/pkg/errors"
)

// Binder holds the declared arguments and commands and applies a
// command line to them with Init.
type Binder struct {
	lock       sync.Mutex
	readers    *Readers
	markers    []Marker
	containers []reflect.Value
	argTag     string
	cmdTag     string
	onStart    func(*Binder, []string) error
	delayedErr error
	options    []*Option
	remaining  []string
}

// BinderOptArg is a functional argument for NewBinder.
type BinderOptArg func(*Binder) error

// DefaultBinder is used by the package level functions Argument,
// Command, Scan, Init, and InitCommandLine.
var DefaultBinder = NewBinder()

// NewBinder creates a Binder that reads values with the process-wide
// Readers (see AddTypeReader) unless WithReaders is used.
func NewBinder(opts ...BinderOptArg) *Binder {
	b := &Binder{
		readers: processReaders,
		argTag:  "arg",
		cmdTag:  "cmd",
	}
	for _, f := range opts {
		err := f(b)
		if err != nil {
			b.delayedErr = err
			break
		}
	}
	return b
}

// WithReaders replaces the process-wide Readers for one Binder.
func WithReaders(readers *Readers) BinderOptArg {
	return func(b *Binder) error {
		if readers == nil {
			return InvalidArgument(errors.Wrap(ErrInvalidArgument, "WithReaders: nil readers"))
		}
		b.readers = readers
		return nil
	}
}

// WithArgumentTag changes the struct tag that marks argument fields
// in containers.  The default is "arg".
func WithArgumentTag(tag string) BinderOptArg {
	return func(b *Binder) error {
		b.argTag = tag
		return nil
	}
}

// WithCommandTag changes the struct tag that marks command fields
// in containers.  The default is "cmd".
func WithCommandTag(tag string) BinderOptArg {
	return func(b *Binder) error {
		b.cmdTag = tag
		return nil
	}
}

// OnStart is called after all arguments have been applied and all
// commands have been run.  The chain is bound with nject and can
// ask for the *Binder and for the remaining, unmatched, arguments
// as []string.
//
//	argbind.NewBinder(argbind.OnStart(func(remaining []string) {
//		...
//	}))
func OnStart(chain ...interface{}) BinderOptArg {
	return func(b *Binder) error {
		return nject.Sequence("default-error-responder",
			nject.Provide("default-error", func() nject.TerminalError {
				return nil
			})).Append("on-start", chain...).Bind(&b.onStart, nil)
	}
}

// Init discovers the declared arguments and commands, builds a
// grammar for them, matches args against it, sets the fields for the
// arguments present, and then runs the commands present.
//
// args should not include the program name.  Tokens that do not match
// a declared name are not errors: they are available from Remaining.
//
// The errors returned are for a nil args, options given to NewBinder
// that failed, two declarations with the same name, and errors from
// an OnStart chain.  Values that cannot be read and commands that
// panic are skipped.
func (b *Binder) Init(args []string) error {
	if args == nil {
		return InvalidArgument(errors.Wrap(ErrInvalidArgument, "Init: nil args"))
	}
	if b.delayedErr != nil {
		return b.delayedErr
	}
	d := b.snapshot()
	arguments := d.discoverArguments()
	commands := d.discoverCommands()
	debugf("discovered %d arguments and %d commands", len(arguments), len(commands))

	g, err := buildGrammar(arguments, commands)
	if err != nil {
		return err
	}

	remaining, err := g.match(args)
	if err != nil {
		debugf("ignoring parse error: %s", err)
	}
	if debugging {
		for _, o := range g.order {
			debug("option", o.Syntax(), "present:", o.Present())
		}
	}

	for _, a := range arguments {
		if !a.option.Present() {
			continue
		}
		set, err := fillArgument(b.readers, a)
		if !set {
			debugf("skipping -%s (%s): %s", a.name, a.source, err)
			continue
		}
		debugf("set %s from -%s %q", a.source, a.name, a.option.Value())
	}
	for _, c := range commands {
		if !c.option.Present() {
			continue
		}
		err := invoke(c)
		if err != nil {
			debugf("ignoring failed command: %s", err)
		}
	}

	b.lock.Lock()
	b.options = g.order
	b.remaining = remaining
	onStart := b.onStart
	b.lock.Unlock()

	if onStart != nil {
		return onStart(b, remaining)
	}
	return nil
}

// InitCommandLine calls Init with os.Args, minus the program name.
func (b *Binder) InitCommandLine() error {
	if len(os.Args) == 0 {
		return b.Init([]string{})
	}
	return b.Init(os.Args[1:])
}

// Remaining returns the arguments that were not consumed by the most
// recent Init.
func (b *Binder) Remaining() []string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.remaining
}

// Options returns the options built by the most recent Init, arguments
// first, in the order they were discovered.
func (b *Binder) Options() []*Option {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.options
}

func (b *Binder) snapshot() discovery {
	b.lock.Lock()
	defer b.lock.Unlock()
	return discovery{
		markers:    append([]Marker(nil), b.markers...),
		containers: append([]reflect.Value(nil), b.containers...),
		argTag:     b.argTag,
		cmdTag:     b.cmdTag,
	}
}

// Init applies args to DefaultBinder.
func Init(args []string) error {
	return DefaultBinder.Init(args)
}

// InitCommandLine applies os.Args to DefaultBinder.  It is meant to be
// called once, early in main.
func InitCommandLine() error {
	return DefaultBinder.InitCommandLine()
}
