/******************************************************************************\
* The Lumi Language                                                           *
* A single-pass bytecode compiler and stack-based virtual machine            *
\******************************************************************************/

// Package scanner implements the scanner (AKA lexical analyzer, or
// tokenizer) of the Lumi language. It reads UTF-8 source code and produces a
// sequence of Tokens, one at a time, on demand.
package scanner
