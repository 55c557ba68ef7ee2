// Package config provides configuration loading, merging, and validation
// facilities for the encrypted storage host.
//
// Configuration is assembled from multiple sources; for every field the first
// source that sets a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetClientConfig] for the validated CLI view.
package config
