// Package script compiles declarative traversal documents into programs.
//
// A document lists named programs. Each program picks a start and a list of
// steps; a step is either a bare name or a map with one key, the step name,
// holding its argument:
//
//	programs:
//	  - name: age-band
//	    steps:
//	      - hasLabel: person
//	      - values: age
//	      - is: {between: [25, 35]}
//
// The same document may be written in CUE. Both formats are read into a
// format-neutral Node tree that keeps map keys in document order and
// normalizes text to NFC, then compiled through the traversal builder, so a
// document renders exactly what the equivalent fluent calls render.
//
// Control steps take branches, each a list of steps. A branch continues
// from the current position (it is built with CreateSubQuery) unless its
// first item is "__", which starts an anonymous traversal instead.
//
// Errors carry the document path of the offending node, for example
// programs[0].steps[2].is, and an error code.
package script
