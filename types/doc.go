// Package types contains the core data model and interfaces for the boardkit
// library.
//
// This package is imported by every other boardkit package and therefore
// depends on nothing but the standard library. The root boardkit package
// re-exports the common types via aliases so that most consumers only need a
// single import.
package types
