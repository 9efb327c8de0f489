// Package types defines the organization chart entities, the row shapes
// returned by the store, input structs with their validation rules, the
// table allow-list used by generic deletes, and the typed errors shared by
// the store and the command-line layers.
package types
