// Package client provides the remote API surface of the VR-Doctor client:
//
//   - Client, the interface the session layer authenticates through, with
//     HTTPClient as its JSON-over-HTTP implementation.
//   - AuthedClient, a request doer that attaches the session's bearer
//     header to every outbound call and signs the session out on a 401.
//   - InitDatabase, which opens the local sqlite database used for durable
//     session metadata and applies embedded goose migrations.
package client
