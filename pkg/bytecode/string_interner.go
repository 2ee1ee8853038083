/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package bytecode

import "github.com/dolthub/swiss"

// StringInterner deduplicates string objects by content, keyed by their
// FNV-1a hash. Both the compiler (for string literals) and the VM (for
// runtime-built strings, e.g. concatenation results) intern through the
// same table, so equal strings always end up as the same *StringObject.
type StringInterner struct {
	strings *swiss.Map[uint32, *StringObject]
}

// NewStringInterner creates an empty StringInterner.
func NewStringInterner() *StringInterner {
	return &StringInterner{
		strings: swiss.NewMap[uint32, *StringObject](64),
	}
}

// Intern returns a *StringObject with the same contents as s. If si already
// holds a string with that content (by hash and byte equality), the
// existing object is returned instead of allocating a new one.
func (si *StringInterner) Intern(s string) *StringObject {
	hash := HashBytes([]byte(s))
	if existing, ok := si.strings.Get(hash); ok && existing.String() == s {
		return existing
	}

	obj := NewStringObject(s)
	si.strings.Put(hash, obj)
	return obj
}
