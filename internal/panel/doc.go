// Package panel hosts a collection of terminal instances inside one
// container and keeps exactly one of them active.
//
// The active index is never stored here. It is asked from the Oracle each
// time it is needed, and only after any add or remove has completed, so a
// value captured before a removal is never used to index the collection.
//
// All methods must be called from the UI goroutine.
package panel
