// Package conformance cross-checks every registered protocol implementation
// against every other: bytes written by one must decode identically with
// the rest, and equal values must encode to identical bytes.
package conformance
