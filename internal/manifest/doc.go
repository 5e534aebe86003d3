// Package manifest handles the JSON side of package metadata: parsing
// portico.json files into generic objects, reading typed fields out of those
// objects with aggregated missing/extra/type diagnostics, and validating raw
// manifests against the embedded JSON Schema.
package manifest
