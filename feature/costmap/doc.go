// Package costmap exposes the cost mapping engine over HTTP.
//
// It wires the core packages (ebkp matching, element quantities, costtree
// mapping) to the element sources and the Fiber router:
//
//   - POST /costmap/apply    maps a submitted cost tree against the model
//   - POST /costmap/matches  resolves every element code (TTL cached)
//   - GET  /costmap/elements returns the current model elements
//
// Elements load from the MySQL table when a database connection exists and
// fall back to the JSON export in object storage otherwise.
package costmap
