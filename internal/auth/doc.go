// Package auth loads API credentials from the Granola desktop app's local
// session cache.
//
// The desktop app persists its Cognito session as a JSON file under the
// platform's application support directory. This package locates that file,
// decodes the string-encoded token document inside it, and exposes the result
// as an oauth2.TokenSource for the API client.
//
// There is no login flow: when the cache is missing or stale the only remedy
// is to open the desktop app and sign in again.
package auth
