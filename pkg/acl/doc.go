// Package acl models access control entries (ACEs) and role identities.
//
// An ACE binds a subject to a list of resource matches and a permission set:
//
//	ace := acl.NewACE(acl.RoleSubject("admin", "org1"))
//	ace.AddResource(acl.HrefResource("/a/light"))
//	ace.SetPermissions(acl.PermRetrieve | acl.PermUpdate)
//	if err := ace.Validate(); err != nil {
//	    // not submitted
//	}
//
// ACEs may be incomplete while they are being built. Validate enforces the
// submission rules: at least one resource, a non-empty permission set and a
// well-formed subject.
//
// String fields are bounded. Role names and authorities are truncated to 64
// characters and hrefs to 63 characters when the value is constructed, never
// rejected.
package acl
