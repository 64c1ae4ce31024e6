// Package cert handles the certificate material of the onboarding tool.
//
// It decodes trust anchors supplied as PEM or DER, issues identity and role
// certificates from a local authority, verifies device certificates against
// installed anchors, and keeps credentials in a MemoryStore or a FileStore
// rooted at the tool's credential directory.
package cert
