// Package user serves /users: list and create against MongoDB, and GET /users/:id
// proxied to the remote user service through pkg/httpclient.
package user
