// Package service contains the application use cases. It orchestrates
// domain objects, the stores defined in internal/store and the auth
// primitives in internal/service/auth to fulfill account and task features.
//
// Services receive their dependencies through constructor injection and
// report expected failures with sentinel errors that the API layer maps to
// HTTP status codes via errors.Is.
package service
