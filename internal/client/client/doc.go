// Package client contains the console's side of the WedLink REST API.
//
// # Overview
//
//  1. Client and AuthAPI describe the API surface: events, guests, bulk
//     upload and overview on one side, signup/login/refresh/logout on the other.
//  2. HTTPClient and AuthClient implement them with JSON over net/http.
//  3. AuthTransport is the wrapper every authenticated call goes through. It
//     attaches the bearer token and, on a 401, refreshes once and replays the
//     request once. The retry state lives on the request context.
//  4. LoggedTransport and RateLimitedTransport sit below it; Stack assembles
//     the chain. PersistentJar keeps the refresh cookie across restarts.
//  5. InitDatabase and RunMigrations open the local sqlite store.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable. Non-2xx responses are *APIError;
// errors.Is matches ErrUnauthorized (401), common.ErrorNotFound (404) and
// common.ErrConflict (409) through it. Message extracts the backend text.
package client
