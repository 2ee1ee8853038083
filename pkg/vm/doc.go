/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

// Package vm implements the Lumi Virtual Machine: a stack-based
// interpreter that executes the bytecode.Chunk produced by the compiler
// package.
package vm
