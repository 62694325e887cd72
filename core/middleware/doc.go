// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key) protecting the job endpoints.
//   - rayid: generates or propagates a request id (X-Ray-ID), stored in the
//     "ray_id" local for logger.WithRayID.
package middleware
