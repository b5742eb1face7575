package dedupe

// Package dedupe provides shared singleflight groups used to deduplicate
// concurrent finalization work. Using a centralized singleflight.Group
// ensures only one rating update runs for a given match while other
// callers (resign handler, deadline scanner) wait for the result.

import "golang.org/x/sync/singleflight"

// RatingsGroup deduplicates post-match rating updates keyed by match code.
var RatingsGroup singleflight.Group
