/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

// Package environment holds the state that must survive across separate
// Compile/Interpret calls against the same program: the table of global
// bindings and the string interner. A REPL session creates one Environment
// and reuses it for every line typed, so a global declared on one line is
// visible (and, if final, still protected) on the next.
package environment

import (
	"github.com/dolthub/swiss"
	"gitlab.com/stackedboxes/lumi/pkg/bytecode"
)

// Environment is the mutable state shared between the compiler and the VM.
// The compiler uses its string interner for string literals and global
// names; the VM reads and writes the global bindings and interns
// runtime-built strings.
type Environment struct {
	// Globals maps a global name's FNV-1a hash to its current value and
	// final-ness.
	Globals *swiss.Map[uint32, bytecode.FinalValue]

	// Strings interns every string literal and runtime-built string so
	// that equal content always shares one object.
	Strings *bytecode.StringInterner
}

// New creates an empty Environment, ready for a fresh program or REPL
// session.
func New() *Environment {
	return &Environment{
		Globals: swiss.NewMap[uint32, bytecode.FinalValue](64),
		Strings: bytecode.NewStringInterner(),
	}
}

// DefineGlobal binds name to value. Used by the VM's OpDefineGlobal.
func (e *Environment) DefineGlobal(hash uint32, value bytecode.FinalValue) {
	e.Globals.Put(hash, value)
}

// GetGlobal looks up a global by its name hash.
func (e *Environment) GetGlobal(hash uint32) (bytecode.FinalValue, bool) {
	return e.Globals.Get(hash)
}

// SetGlobal overwrites an existing global's value, preserving its
// final-ness slot (the caller is responsible for rejecting the assignment
// before calling this if the existing binding is final). Returns false if
// no global with this hash exists yet.
func (e *Environment) SetGlobal(hash uint32, value bytecode.Value) bool {
	existing, ok := e.Globals.Get(hash)
	if !ok {
		return false
	}
	existing.Value = value
	e.Globals.Put(hash, existing)
	return true
}
