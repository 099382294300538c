// Package config provides loading, merging, and validation of the resolver
// process's own settings (layer file list, project root, artifact cache and
// remote endpoint).
//
// Settings are assembled from multiple sources in the following priority
// order (later sources fill fields the earlier ones left empty):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON settings file
//
// The main entry point is [GetSettings].
//
// Note the distinction from the pipeline configuration itself: the layered
// pipeline configuration trees are loaded by the loader package and resolved
// by the resolve package; this package only configures the machinery that
// does so.
package config
