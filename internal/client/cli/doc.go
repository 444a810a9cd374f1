// Package cli provides the interactive WedLink admin console.
//
// It wires configuration, the local sqlite store, the HTTP client stack,
// the session manager and the application services into a REPL. On start
// the console restores the session from the refresh cookie and lands on
// the dashboard or the login screen.
//
// Key features:
//   - Signup / Login / Logout / WhoAmI
//   - Events: list, show, add (with a debounced name check), edit, delete
//   - Guests: add, edit, delete, bulk import from a file, URL or S3 object
//   - Overview: admin panel totals and growth/decline chart
//
// Every screen goes through the route guard, so protected commands send an
// unauthenticated admin to the login screen. The REPL is started via
// App.Root(ctx), which blocks until the user exits.
package cli
