// Package cachekeys derives cache keys for entity collections and scoped aggregates.
//
// Global keys name one collection per entity type. Scoped keys have the form
// <scope>:<id>:<entity>, with the id escaped so that a key always has exactly
// as many ':'-separated segments as its template. Distinct (scope, id, entity)
// triples therefore never map to the same key.
package cachekeys

import "strings"

const (
	AllExpenses = "expenses:all"
	AllGroups   = "groups:all"
	AllPersons  = "persons:all"
	AllDebtors  = "debtors:all"
	AllMembers  = "members:all"
)

const (
	groupScope = "groups"
	userScope  = "users"
)

var escaper = strings.NewReplacer("%", "%25", ":", "%3A")

func escape(id string) string {
	return escaper.Replace(id)
}

func scoped(scope, id, entity string) string {
	return scope + ":" + escape(id) + ":" + entity
}

// Group is the key of a single group object.
func Group(id string) string {
	e := escape(id)
	if e == "all" {
		// keep clear of AllGroups
		e = "%61ll"
	}
	return groupScope + ":" + e
}

func GroupExpenses(groupID string) string { return scoped(groupScope, groupID, "expenses") }
func GroupPersons(groupID string) string { return scoped(groupScope, groupID, "persons") }
func GroupDebtors(groupID string) string { return scoped(groupScope, groupID, "debtors") }
func GroupMembers(groupID string) string { return scoped(groupScope, groupID, "members") }
func GroupBalances(groupID string) string { return scoped(groupScope, groupID, "balances") }

// UserGroups is the key of the groups a user is a member of.
func UserGroups(userID string) string { return scoped(userScope, userID, "groups") }

// GroupScoped lists every key whose content is derived from a single group.
func GroupScoped(groupID string) []string {
	return []string{
		Group(groupID),
		GroupExpenses(groupID),
		GroupPersons(groupID),
		GroupDebtors(groupID),
		GroupMembers(groupID),
		GroupBalances(groupID),
	}
}

// Family collapses a key to its template, e.g. "groups:*:expenses". Used as a metric label.
func Family(key string) string {
	parts := strings.Split(key, ":")
	switch len(parts) {
	case 2:
		if parts[1] == "all" {
			return key
		}
		return parts[0] + ":*"
	case 3:
		return parts[0] + ":*:" + parts[2]
	default:
		return "other"
	}
}
