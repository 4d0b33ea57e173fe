// Package store declares user persistence: the UserStore contract backing
// Google sign-in, its error values, and the transaction helper shared by
// the Postgres implementation. Generated videos are not kept here; they live
// in the object store.
package store
