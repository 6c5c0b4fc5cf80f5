// Package threshold threshold schemes
//
// A secret is split into shares so that any k of them recover it,
// while fewer than k reveal nothing useful.
//
//   - `shamir`: recover the secret of an integer polynomial sharing
//     by lagrange interpolation at x = 0
//
//   - https://en.wikipedia.org/wiki/Shamir%27s_secret_sharing
//   - https://en.wikipedia.org/wiki/Lagrange_polynomial
package threshold
