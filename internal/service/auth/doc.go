// Package auth implements credential hashing and bearer-token handling:
// bcrypt password digests and HS256-signed JWTs carrying the user id and
// username, checked for signature, algorithm and expiry.
package auth
