package cachekeys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "groups:g1", Group("g1"))
	assert.Equal(t, "groups:g1:expenses", GroupExpenses("g1"))
	assert.Equal(t, "groups:g1:persons", GroupPersons("g1"))
	assert.Equal(t, "groups:g1:debtors", GroupDebtors("g1"))
	assert.Equal(t, "groups:g1:members", GroupMembers("g1"))
	assert.Equal(t, "groups:g1:balances", GroupBalances("g1"))
	assert.Equal(t, "users:u1:groups", UserGroups("u1"))
}

func TestKeysAreInjective(t *testing.T) {
	ids := []string{"", "g1", "all", "a:b", "a%3Ab", "a", "b:expenses", "%", ":"}
	seen := map[string]string{}
	record := func(label, key string) {
		prev, dup := seen[key]
		assert.False(t, dup, "key %q produced by %s and %s", key, prev, label)
		seen[key] = label
	}

	for _, k := range []string{AllExpenses, AllGroups, AllPersons, AllDebtors, AllMembers} {
		record("global "+k, k)
	}
	for _, id := range ids {
		record("group "+id, Group(id))
		record("expenses "+id, GroupExpenses(id))
		record("persons "+id, GroupPersons(id))
		record("debtors "+id, GroupDebtors(id))
		record("members "+id, GroupMembers(id))
		record("balances "+id, GroupBalances(id))
		record("user "+id, UserGroups(id))
	}
}

func TestGroupScoped(t *testing.T) {
	keys := GroupScoped("g1")
	assert.Len(t, keys, 6)
	assert.Contains(t, keys, Group("g1"))
	assert.Contains(t, keys, GroupBalances("g1"))
	assert.NotContains(t, keys, AllGroups)
}

func TestFamily(t *testing.T) {
	assert.Equal(t, "expenses:all", Family(AllExpenses))
	assert.Equal(t, "groups:*", Family(Group("g1")))
	assert.Equal(t, "groups:*:balances", Family(GroupBalances("a:b")))
	assert.Equal(t, "users:*:groups", Family(UserGroups("u1")))
	assert.Equal(t, "other", Family("nope"))
}
