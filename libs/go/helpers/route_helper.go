package helpers

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/constants"
	"github.com/0rsallylim46/MuseumHuntFHE/libs/go/types/business"
	"github.com/google/uuid"
)

const routeIDSuffixLen = 7

// NewRouteID builds "<unix millis>-<7 lowercase alphanumerics>"
func NewRouteID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:routeIDSuffixLen]
	return fmt.Sprintf("%d-%s", now.UnixMilli(), suffix)
}

// RouteKey returns the ledger key a route record lives under
func RouteKey(id string) string {
	return constants.RouteKeyPrefix + id
}

// IsValidAgeGroup reports whether ageGroup is in the fixed enumeration
func IsValidAgeGroup(ageGroup string) bool {
	for _, g := range business.AgeGroups {
		if g == ageGroup {
			return true
		}
	}
	return false
}

// IsKnownInterest reports whether interest is in the catalog
func IsKnownInterest(interest string) bool {
	return catalogIndex(interest) >= 0
}

func catalogIndex(interest string) int {
	for i, tag := range business.InterestCatalog {
		if tag == interest {
			return i
		}
	}
	return -1
}

// SortInterests dedupes interests and orders them by the catalog. Tags that
// are not in the catalog keep their relative order after the known ones.
func SortInterests(interests []string) []string {
	seen := make(map[string]struct{}, len(interests))
	out := make([]string, 0, len(interests))
	for _, in := range interests {
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		out = append(out, in)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := catalogIndex(out[i]), catalogIndex(out[j])
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
	return out
}

// SortRoutesByTimestamp orders routes newest first. Equal timestamps keep
// their input order, so a single load is deterministic.
func SortRoutesByTimestamp(routes []business.Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Timestamp > routes[j].Timestamp
	})
}

// MatchesSearch reports whether any interest contains term, ignoring case.
// An empty term matches everything.
func MatchesSearch(route business.Route, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, interest := range route.Interests {
		if strings.Contains(strings.ToLower(interest), term) {
			return true
		}
	}
	return false
}

// MatchesStatus reports whether the route passes the status filter.
// "all" and the empty string match everything.
func MatchesStatus(route business.Route, status string) bool {
	if status == "" || status == business.StatusFilterAll {
		return true
	}
	return string(route.Status) == status
}

// FilterRoutes projects the snapshot through the search and status filters.
// The input order is preserved.
func FilterRoutes(routes []business.Route, search, status string) []business.Route {
	filtered := make([]business.Route, 0, len(routes))
	for _, r := range routes {
		if MatchesStatus(r, status) && MatchesSearch(r, search) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// CountByStatus tallies a snapshot
func CountByStatus(routes []business.Route) business.RouteStats {
	stats := business.RouteStats{Total: len(routes)}
	for _, r := range routes {
		switch r.Status {
		case business.RouteStatusPending:
			stats.Pending++
		case business.RouteStatusActive:
			stats.Active++
		case business.RouteStatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// IsRouteOwner compares the route owner with account case-insensitively
func IsRouteOwner(route business.Route, account string) bool {
	return SameAddress(route.Owner, account)
}
