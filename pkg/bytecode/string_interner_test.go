/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Tests that interning the same content twice returns the identical
// *StringObject, while different content yields different objects.
func TestStringInternerDedup(t *testing.T) {
	si := NewStringInterner()

	a := si.Intern("hello")
	b := si.Intern("hello")
	assert.Same(t, a, b)

	c := si.Intern("world")
	assert.NotSame(t, a, c)
	assert.Equal(t, "world", c.String())
}
