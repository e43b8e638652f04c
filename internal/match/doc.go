// Package match ranks identifiers by edit distance so that diagnostics can
// offer "did you mean" suggestions for misspelled directives, directive
// arguments and naming patterns.
//
// Key functions:
//   - NormalizeIdent: folds case and separators before comparing
//   - Levenshtein: computes edit distance between strings
//   - Suggest: returns the closest known names to an unknown one
package match
