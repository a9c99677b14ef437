// Package rules provides the built-in lint rules for doclint.
//
// # Rule Domains
//
// Block content:
//
//   - DOC100: place-text-in-paragraphs - Text in remarks and note must be in a block element
//   - DOC101: use-child-blocks-consistently - Do not mix block elements with bare inline content
//   - DOC102: use-child-blocks-consistently-across-elements - Use blocks consistently across same-named elements (opt-in)
//
// Text:
//
//   - DOC103: use-unicode-characters - Write HTML named entities as the characters they stand for
//
// References:
//
//   - DOC104: use-see-langword - Reference keywords with see langword instead of c
//   - DOC105: use-paramref - Reference parameters with paramref instead of c
//   - DOC106: use-typeparamref - Reference type parameters with typeparamref instead of c
//
// # Registration
//
// All rules are registered with [lint.DefaultRegistry] during package
// initialization. Import this package for its side effect:
//
//	import _ "github.com/yaklabco/doclint/pkg/lint/rules"
package rules
