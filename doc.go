// Package sss recovers the secret hidden in shares of an integer polynomial
//
// # Modules
//
//   - `radix`: decode/encode arbitrary-precision integers written in base 2..36
//   - `crypto/threshold/shamir`: exact lagrange interpolation at x = 0
//   - `testcase`: read and write test case documents
//   - `solver`: recover secrets from test case files, in parallel
//   - `config`: settings from flags and yaml files
//   - `log`: enhanched zap logger
//   - `json`: json with comments
//   - `cmd`: command line `gsss`
package sss
