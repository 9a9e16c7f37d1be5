// Package source provides the two model element sources of the costmap
// feature: the MySQL model element table (primary) and the JSON export in
// object storage (fallback). Both return core/element values ready for
// indexing.
package source
