// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package policy decides who sees which polls and who is passing one.

Administrators see every poll. Everyone else sees published polls only:

	filter := policy.VisiblePolls(policy.IsAdmin(ident))

ResolveParticipant picks the identity a submission or results lookup is
recorded under. An integer auid query parameter wins over the authenticated
caller:

	participant, ok := policy.ResolveParticipant(r.URL.Query(), ident)
	if !ok {
		// no participant specified
	}
*/
package policy
