// Package authz decides whether, and how much of, an order an authenticated
// identity may see. Identity resolution itself (sessions, tokens) happens
// upstream; this package only consumes the result.
package authz

// Identity is the canonical authenticated-caller shape. At most one of the
// identity kinds is authoritative per request; precedence when several are
// populated is admin, then user, then business.
type Identity struct {
	Admin      bool
	UserID     string
	UserEmail  string
	BusinessID string
}

// Anonymous reports whether no identity is present at all.
func (i Identity) Anonymous() bool {
	return !i.Admin && i.UserID == "" && i.UserEmail == "" && i.BusinessID == ""
}
