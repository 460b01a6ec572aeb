// Package auth implements phone-based authentication for the mobile client.
//
// There are no passwords. An account is identified by its phone number and
// logging in is a lookup by that number; the rate limiter is what stands
// between the login endpoint and number enumeration. Successful logins get a
// server-side session stored in SQLite via scs, referenced by an HttpOnly
// cookie.
//
// # Components
//
//   - Service: registration and login against the user store
//   - SessionManager: scs-backed sessions sharing the application database
//   - Middleware: resolves the session cookie to a user id on each request
//   - AuthController: the /api/auth/* JSON endpoints
//   - RateLimiter: sliding-window lockout per IP+phone
package auth
