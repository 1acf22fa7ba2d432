// Package auth implements the fleetgrid authentication core.
//
// Five login strategies share one contract — resolve credentials to a user
// or fail with a structured error:
//
//   - local            — username/password against the directory
//   - azure-ad         — Azure AD redirect flow for API clients
//   - azure-ad-web     — Azure AD redirect flow for the web front end
//   - jwt              — bearer token from the Authorization header
//   - jwt-query-param  — bearer token from the access_token query parameter
//
// Route guards run the bearer strategies before protected handlers and
// store the resolved user in the request context. The session controller
// exposes the login, callback, and success endpoints and issues session
// tokens via auth/token.
//
// Subpackages:
//
//   - auth/password — bcrypt credential verification
//   - auth/token    — session token issuance and validation
//   - auth/azuread  — the Azure AD authorization-code flow and state cookie
package auth
