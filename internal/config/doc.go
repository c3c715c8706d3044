// Package config provides configuration loading, merging, and validation
// facilities for the atere research tool.
//
// Configuration is assembled from the following sources (later sources
// override earlier ones for the fields they set):
//  1. Defaults ([DefaultRootConfig])
//  2. JSON config file, only consulted when no environment override is set
//  3. Environment variables from the binding table
//  4. Command-line flags
//
// The entry point is [Manager.Load], which never fails: malformed input is
// logged and replaced by defaults. After loading, the manager opens the
// persistence backend through its [Connector] when a project id is set.
package config
