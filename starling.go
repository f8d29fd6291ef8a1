// Package starling prepares MESA stellar-evolution models for a run.
package starling

// Version is the current starling release.
const Version = "0.1.0"
