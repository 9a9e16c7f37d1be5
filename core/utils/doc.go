// Package utils provides common utility functions for the cost plugin.
// It includes helper functions for type conversion of loosely typed export
// data that doesn't fit into domain-specific packages.
package utils
