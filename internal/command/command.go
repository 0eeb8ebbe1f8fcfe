// Package command builds command lines as an ordered list of arguments and
// flag/value pairs, serializing to a single string only at the exec boundary.
package command

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Arg is one element of a command line. Flag is empty for positional
// arguments; Value is empty for switches.
type Arg struct {
	Flag  string
	Value string
}

// Line is a command line under construction.
type Line struct {
	program string
	args    []Arg
}

// New starts a command line for program.
func New(program string) *Line {
	return &Line{program: program}
}

// Program returns the executable name.
func (l *Line) Program() string {
	return l.program
}

// Arg appends positional arguments.
func (l *Line) Arg(values ...string) *Line {
	for _, v := range values {
		l.args = append(l.args, Arg{Value: v})
	}
	return l
}

// Flag appends a flag followed by its value.
func (l *Line) Flag(name, value string) *Line {
	l.args = append(l.args, Arg{Flag: name, Value: value})
	return l
}

// Switch appends a flag that takes no value.
func (l *Line) Switch(name string) *Line {
	l.args = append(l.args, Arg{Flag: name})
	return l
}

// List appends a flag whose value is values joined by commas. Nothing is
// appended when values is empty.
func (l *Line) List(name string, values []string) *Line {
	if len(values) == 0 {
		return l
	}
	return l.Flag(name, strings.Join(values, ","))
}

// Args returns a copy of the structured arguments.
func (l *Line) Args() []Arg {
	out := make([]Arg, len(l.args))
	copy(out, l.args)
	return out
}

// Has reports whether flag appears on the line.
func (l *Line) Has(flag string) bool {
	for _, a := range l.args {
		if a.Flag == flag {
			return true
		}
	}
	return false
}

// Values returns the values given to flag, in order.
func (l *Line) Values(flag string) []string {
	var out []string
	for _, a := range l.args {
		if a.Flag == flag {
			out = append(out, a.Value)
		}
	}
	return out
}

// Argv flattens the line into program and arguments.
func (l *Line) Argv() []string {
	argv := []string{l.program}
	for _, a := range l.args {
		if a.Flag != "" {
			argv = append(argv, a.Flag)
			if a.Value == "" {
				continue
			}
		}
		argv = append(argv, a.Value)
	}
	return argv
}

// String renders the line as a single shell-quoted command string.
func (l *Line) String() string {
	return shellquote.Join(l.Argv()...)
}

// Split parses a command string produced by String back into argv.
func Split(cmd string) ([]string, error) {
	return shellquote.Split(cmd)
}
