// Package google handles OAuth2 authentication for the Google Calendar
// API: the installed-app authorization flow, token persistence in the
// user cache directory and construction of an authenticated HTTP client.
package google
