// Package command assembles the argument vector for one invocation of an external tool.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgumentStyle controls how named arguments are rendered.
type ArgumentStyle int

const (
	// ArgumentBare renders arguments as key=value.
	ArgumentBare ArgumentStyle = iota
	// ArgumentOption renders arguments as --key=value.
	ArgumentOption
)

// Syntax describes the command-line grammar of a tool.
type Syntax struct {
	Arguments ArgumentStyle
}

type tokenKind int

const (
	kindGlobalFlag tokenKind = iota
	kindSubCommand
	kindArgument
	kindFlag
	kindParam
)

type token struct {
	kind     tokenKind
	name     string
	value    string
	hasValue bool
}

// Builder accumulates flags, subcommands, arguments, and parameters for an executable.
// Tokens render grouped by class in this order: global flags, subcommands, arguments,
// flags, parameters. Within a class, insertion order is kept.
type Builder struct {
	executable string
	syntax     Syntax
	tokens     []token
}

// New returns an empty builder for executable.
func New(executable string, syntax Syntax) *Builder {
	return &Builder{executable: executable, syntax: syntax}
}

// Executable returns the executable name or path the builder was created with.
func (b *Builder) Executable() string {
	return b.executable
}

// AddGlobalFlag appends a flag that must precede any subcommand.
func (b *Builder) AddGlobalFlag(name string, value ...string) *Builder {
	b.tokens = append(b.tokens, flagToken(kindGlobalFlag, name, value))
	return b
}

// SetGlobalFlag replaces the value of an existing global flag, or appends it when absent.
func (b *Builder) SetGlobalFlag(name string, value ...string) *Builder {
	for i, tok := range b.tokens {
		if tok.kind == kindGlobalFlag && tok.name == name {
			b.tokens[i] = flagToken(kindGlobalFlag, name, value)
			return b
		}
	}
	return b.AddGlobalFlag(name, value...)
}

// AddFlag appends a subcommand flag. At most one value is used.
func (b *Builder) AddFlag(name string, value ...string) *Builder {
	b.tokens = append(b.tokens, flagToken(kindFlag, name, value))
	return b
}

// AddSubCommand appends a literal subcommand token.
func (b *Builder) AddSubCommand(name string) *Builder {
	b.tokens = append(b.tokens, token{kind: kindSubCommand, name: name})
	return b
}

// AddArgument appends a named argument. Bools render as true/false; other values use
// their default formatting.
func (b *Builder) AddArgument(key string, value any) *Builder {
	b.tokens = append(b.tokens, token{kind: kindArgument, name: key, value: formatValue(value), hasValue: true})
	return b
}

// AddParam appends a trailing positional parameter.
func (b *Builder) AddParam(value string) *Builder {
	b.tokens = append(b.tokens, token{kind: kindParam, value: value})
	return b
}

// Reset discards every accumulated token. The executable and syntax are kept.
func (b *Builder) Reset() *Builder {
	b.tokens = nil
	return b
}

// Empty reports whether no tokens have been added since construction or the last Reset.
func (b *Builder) Empty() bool {
	return len(b.tokens) == 0
}

// Args renders the argument vector, excluding the executable.
func (b *Builder) Args() []string {
	args := make([]string, 0, len(b.tokens)*2)
	for _, kind := range []tokenKind{kindGlobalFlag, kindSubCommand, kindArgument, kindFlag, kindParam} {
		for _, tok := range b.tokens {
			if tok.kind != kind {
				continue
			}
			args = append(args, b.render(tok)...)
		}
	}
	return args
}

// String renders the full command line with shell quoting, for display only.
func (b *Builder) String() string {
	parts := []string{quote(b.executable)}
	for _, arg := range b.Args() {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func (b *Builder) render(tok token) []string {
	switch tok.kind {
	case kindGlobalFlag, kindFlag:
		return renderFlag(tok)
	case kindSubCommand:
		return []string{tok.name}
	case kindArgument:
		if b.syntax.Arguments == ArgumentOption {
			return []string{"--" + tok.name + "=" + tok.value}
		}
		return []string{tok.name + "=" + tok.value}
	default:
		return []string{tok.value}
	}
}

// renderFlag uses POSIX short form for one-letter names and GNU long form otherwise.
func renderFlag(tok token) []string {
	if len(tok.name) == 1 {
		if !tok.hasValue {
			return []string{"-" + tok.name}
		}
		return []string{"-" + tok.name, tok.value}
	}
	if !tok.hasValue {
		return []string{"--" + tok.name}
	}
	return []string{"--" + tok.name + "=" + tok.value}
}

func flagToken(kind tokenKind, name string, value []string) token {
	tok := token{kind: kind, name: name}
	if len(value) > 0 {
		tok.value = value[0]
		tok.hasValue = true
	}
	return tok
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprint(v)
	}
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.ContainsAny(s, " \t\n'\"\\$`;&|<>()*?[]#~") {
		return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
	}
	return s
}
