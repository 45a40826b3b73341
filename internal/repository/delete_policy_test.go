package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The rules table is load-bearing: these tests pin down the ownership
// graph so a schema change that forgets to update it fails loudly.

func TestCrewRolesAreProtected(t *testing.T) {
	deps, ok := deleteRules["crew_roles"]
	require.True(t, ok)
	require.Len(t, deps, 1)
	assert.Equal(t, "crews", deps[0].Table)
	assert.Equal(t, Protect, deps[0].Policy)
}

func TestFlightDeleteCascadesTicketsNotOrders(t *testing.T) {
	deps := deleteRules["flights"]
	tables := map[string]DeletePolicy{}
	for _, d := range deps {
		tables[d.Table] = d.Policy
	}
	assert.Equal(t, Cascade, tables["tickets"])
	assert.Equal(t, Cascade, tables["flight_crews"])
	// Orders survive flight deletion, possibly empty.
	assert.NotContains(t, tables, "orders")
}

func TestAirportReferencedFromBothRouteEnds(t *testing.T) {
	deps := deleteRules["airports"]
	require.Len(t, deps, 2)
	cols := []string{deps[0].Column, deps[1].Column}
	assert.ElementsMatch(t, []string{"source_id", "destination_id"}, cols)
	for _, d := range deps {
		assert.Equal(t, "routes", d.Table)
		assert.Equal(t, Cascade, d.Policy)
	}
}

func TestEveryCascadeTargetResolvable(t *testing.T) {
	// Every cascade target with dependents of its own must itself be a
	// key in the table, otherwise recursion would skip its children.
	leaves := map[string]bool{"tickets": true, "flight_crews": true, "refresh_tokens": true}
	for parent, deps := range deleteRules {
		for _, d := range deps {
			if d.Policy != Cascade {
				continue
			}
			_, ok := deleteRules[d.Table]
			assert.True(t, ok || leaves[d.Table],
				"%s -> %s is neither a parent nor a known leaf", parent, d.Table)
		}
	}
}
