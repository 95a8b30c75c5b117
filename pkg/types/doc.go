// Package types defines the entity types, store interfaces, configuration and
// error types for the littlelemon local data layer.
//
// Two stores share one embedded database: a UserStore holding at most one
// UserProfile, and a MenuStore holding a replaceable snapshot of MenuItems.
package types
