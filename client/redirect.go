package client

import "net/url"

// membershipIntent is the loginCallback value that routes a fresh login
// straight into the subscription flow.
const membershipIntent = "membership"

// Navigation is the outcome of evaluating the post-OAuth query parameters:
// where to go and whether to auto-open the subscription UI.
type Navigation struct {
	Path           string
	Query          url.Values
	OpenMembership bool
}

// ResolveRedirect evaluates the current query parameters against the
// session state and the one-shot store keys. It returns nil when no
// navigation is needed. One-shot keys are cleared as soon as they are
// consulted, so re-running after a resolution is a no-op.
//
// Precedence: a token parameter wins over an error parameter; the
// stored-intent branch only runs once the session has resolved.
func ResolveRedirect(params url.Values, sessionResolved, userPresent bool, store Store) *Navigation {
	if token := params.Get("token"); token != "" {
		store.Set(KeyToken, token)
		if intent, _ := store.ReadAndClear(KeyLoginCallback); intent == membershipIntent {
			return &Navigation{Path: "/membership", OpenMembership: true}
		}
		return &Navigation{Path: "/"}
	}

	if errParam := params.Get("error"); errParam != "" {
		return &Navigation{Path: "/", Query: url.Values{"error": []string{errParam}}}
	}

	if !sessionResolved {
		return nil
	}

	intent, _ := store.ReadAndClear(KeyLoginCallback)
	path, _ := store.ReadAndClear(KeyRedirectPath)

	// Auto-opening the subscription UI only makes sense for a signed-in
	// user; anonymous sessions fall through to the stored path.
	if intent == membershipIntent && userPresent {
		return &Navigation{Path: "/membership", OpenMembership: true}
	}
	if path != "" && path != "/" {
		return &Navigation{Path: path}
	}
	return nil
}
