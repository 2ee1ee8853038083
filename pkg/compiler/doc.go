/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

// Package compiler implements Lumi's single-pass compiler: a Pratt parser
// that emits bytecode directly as it recognizes each construct, with no
// intermediate AST. It gets tokens from the scanner and produces a
// bytecode.Chunk that is executed by the vm package.
package compiler
