// Package api exposes the account and task operations over HTTP. Handlers
// decode and validate requests, call the services, and translate service
// errors into {"detail": ...} responses.
package api
