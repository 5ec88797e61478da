package acl

// Permission is an identifier of a named action on a resource,
// i.e. "view", "edit", "delete"
type Permission string

// All is the reserved wildcard permission; when present in an entry's
// permission set it matches any requested permission
// NOTE: the enumerator reports the wildcard under its own key
// instead of expanding it
const All Permission = "permission:*"
