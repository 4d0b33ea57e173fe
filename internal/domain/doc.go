// Package domain contains the core business entities of the video generation
// pipeline: tasks and their status machine, stored artifacts and their object
// keys, and the users that own them. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
