// Package config loads named configuration documents and addresses their nodes by
// flattened dot-joined paths.
//
// The package uses an interface-based design with four extension points:
//   - Backend: fetches a named nested document (file directory, viper, in-memory)
//   - Parser: decodes raw bytes into a generic tree
//   - Validator: validates structured values after conversion
//   - Defaulter: applies default values to structured values before validation
//
// # Flattened Paths
//
// A Document maps every mapping and leaf to the path of keys leading to it:
//
//	db:                 "db"          -> {"timeout": 30, "hosts": [...]}
//	  timeout: 30       "db.timeout"  -> 30
//	  hosts: [a, b]     "db.hosts"    -> ["a", "b"]
//
// Sequence elements are not addressed individually.
//
// # Example
//
//	store := config.NewStore(file.NewBackend("/etc/app"))
//	doc := store.Load("values")
//	timeout, ok := doc.Lookup("db.timeout")
package config
