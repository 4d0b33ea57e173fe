// Package google implements the Google OAuth 2.0 authorization-code flow used
// for sign-in: building the consent URL, exchanging the returned code for
// tokens, and reading the account id and email from the userinfo endpoint.
package google
