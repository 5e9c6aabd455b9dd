// Package types defines the configuration and run record types shared by the
// puzzler CLI and its run history store, together with their sentinel errors.
package types
