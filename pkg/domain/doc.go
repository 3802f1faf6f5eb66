// Package domain contains the types shared by the candidate builder, the
// existence checkers and the prober: probe results and their outcomes, search
// strategies and the identifiers being searched for. It has no infrastructure
// dependencies.
package domain
