// Obligatory // comment

/*
Package argbind binds command line arguments to package level variables
and command line switches to functions, once, at startup.

Declarations are made either explicitly:

	var count int

	func init() {
		argbind.Argument(&count, "count", "how many widgets to make")
		argbind.Command(resetWidgets, "reset", "forget all widgets")
	}

or with struct tags on a container that is registered with Scan:

	var settings struct {
		Count int        `arg:"count,desc=how many widgets to make"`
		Mode  WidgetMode `arg:"mode"`
		Reset func()     `cmd:"reset,desc=forget all widgets"`
	}

	func init() {
		argbind.Scan(&settings)
	}

Then, early in main:

	err := argbind.InitCommandLine()

Each argument becomes an option that takes one value, "-count 10" (or
"--count 10", "-count=10").  Each command becomes an option that takes
no value, "-reset".  Arguments are all set before any command is run, so
commands can look at argument values.

Values are converted with TypeReaders looked up by the exact type of the
field.  Readers for string, bool, and the integer and float types are
built in.  Add more with AddTypeReader or AddReader; the readers
sub-package has some.  Enum types, eg "type WidgetMode int32", are read
with the reader for their underlying integer type unless a reader for the
enum type itself has been added.  Pointer fields are read with the reader
for the type pointed to.

Init is forgiving on purpose: tokens it does not recognize are left for
Remaining(), values that cannot be read are skipped, and panics from
commands are recovered.  A failure in one does not stop the others.  The
errors Init returns are for mistakes made by the calling program: a nil
argument list or two declarations with the same name.

The tag syntax is tag:"name,desc=text".  An empty name means the lower-cased
field name.  The name "-" means skip the field.  The tag names can be changed
with WithArgumentTag() and WithCommandTag().

Build with "-tags debugArgbind" to log every decision Init makes.
*/
package argbind
