// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollpass/auth"
	"github.com/danielhkuo/pollpass/models"
	"github.com/danielhkuo/pollpass/store"
)

// AUIDParam is the query parameter carrying an anonymous participant id
const AUIDParam = "auid"

// IsAdmin reports whether the caller is an authenticated administrator.
// A nil identity is an anonymous caller.
func IsAdmin(ident *auth.Identity) bool {
	return ident != nil && ident.IsAdmin
}

// VisiblePolls returns the listing filter for a caller
func VisiblePolls(isAdmin bool) store.PollFilter {
	return store.PollFilter{PublishedOnly: !isAdmin}
}

// CanViewPoll reports whether the caller may read the poll and its children
func CanViewPoll(p models.Poll, isAdmin bool) bool {
	return isAdmin || p.IsPublished
}

// ResolveParticipant returns the participant for a request. A parseable
// auid wins; negative values are normalized to their absolute value.
// Without one, an authenticated caller is the participant.
func ResolveParticipant(query url.Values, ident *auth.Identity) (models.Participant, bool) {
	if auid, ok := parseAUID(query); ok {
		return models.AnonymousParticipant(auid), true
	}
	if ident != nil {
		return models.UserParticipant(ident.UserID), true
	}
	return models.Participant{}, false
}

// parseAUID reads the last auid value, matching how repeated query
// parameters resolve elsewhere in the API.
func parseAUID(query url.Values) (int64, bool) {
	values := query[AUIDParam]
	if len(values) == 0 {
		return 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(values[len(values)-1]), 10, 64)
	if err != nil {
		return 0, false
	}
	// -MinInt64 does not fit
	if n == math.MinInt64 {
		return 0, false
	}
	if n < 0 {
		n = -n
	}
	return n, true
}
