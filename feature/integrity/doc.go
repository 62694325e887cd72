// Package integrity provides health checks of the pipeline's infrastructure.
//
// # Checks Provided
//
//   - Schema: Validates that the pipeline tables exist and match the GORM models (columns, types).
//   - Storage: Checks that the bucket exists and holds objects under the image prefixes (cards/, cards_cropped/).
//   - Images: Counts the cards still lacking an image URL, per variant.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check.
//   - GET /integrity/images : Counts pending images.
//
// The same checks back the `check` command.
package integrity
