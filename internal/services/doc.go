// Package services defines the shared error taxonomy and context annotations
// used across the translation pipeline. Errors are classified by wrapping one
// of the exported sentinel errors so callers can branch with errors.Is without
// string matching.
package services
