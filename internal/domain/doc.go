// Package domain contains the core business entities, value objects, and
// domain logic of the application: users, tasks and the task state machine.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
