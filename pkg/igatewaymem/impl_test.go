/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package igatewaymem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/triggers/pkg/ibudgets"
	"github.com/voedger/triggers/pkg/ibudgetsce"
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

func testSchemas(t *testing.T) *schemas.Cache {
	cache := schemas.New()
	cache.Add("Contact").
		AddField("Name", schemas.DataKind_string).
		AddField("AccountID", schemas.DataKind_RecordID)
	require.NoError(t, cache.Build())
	return cache
}

func contact(t *testing.T, sch *schemas.Cache, id, accountID itriggers.RecordID) itriggers.IRecord {
	rec := records.NewRecord(sch.Schema("Contact"), id)
	rec.PutRecordID("AccountID", accountID)
	require.NoError(t, rec.Error())
	return rec
}

func TestBasicUsage(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	driver := Provide(cache)

	driver.Fill(
		contact(t, cache, 1, 100),
		contact(t, cache, 2, 100),
		contact(t, cache, 3, 200),
	)

	// one coalesced query matches records whose field value is in Values
	recs, err := driver.Query(itriggers.QuerySpec{Schema: "Contact", Field: "AccountID", Values: []string{"100"}})
	require.NoError(err)
	require.Len(recs, 2)
	require.Equal(itriggers.RecordID(1), recs[0].ID())
	require.Equal(itriggers.RecordID(2), recs[1].ID())

	// every executed call is recorded for budget-assertion tests
	require.Len(driver.QueryLog(), 1)
	require.Empty(driver.MutationLog())

	_, err = driver.Mutate(itriggers.MutationKind_Delete, recs)
	require.NoError(err)
	require.Equal([]MutationCall{{Kind: itriggers.MutationKind_Delete, Records: 2}}, driver.MutationLog())

	_, ok := driver.Record("Contact", 1)
	require.False(ok)
	_, ok = driver.Record("Contact", 3)
	require.True(ok)
}

func TestQueryErrors(t *testing.T) {
	require := require.New(t)

	driver := Provide(testSchemas(t))

	t.Run("must fail on unknown schema", func(t *testing.T) {
		_, err := driver.Query(itriggers.QuerySpec{Schema: "Unknown", Field: "Name", Values: []string{"x"}})
		require.ErrorIs(err, schemas.ErrSchemaNotFound)
	})

	t.Run("must fail on unknown field", func(t *testing.T) {
		_, err := driver.Query(itriggers.QuerySpec{Schema: "Contact", Field: "Unknown", Values: []string{"x"}})
		require.ErrorIs(err, schemas.ErrFieldNotFound)
	})
}

func TestMutateErrors(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	driver := Provide(cache)
	rec := contact(t, cache, 1, 100)

	t.Run("must fail to update a missing record", func(t *testing.T) {
		_, err := driver.Mutate(itriggers.MutationKind_Update, []itriggers.IRecord{rec})
		require.ErrorIs(err, ErrRecordNotFound)
	})

	t.Run("must fail to insert a duplicate", func(t *testing.T) {
		_, err := driver.Mutate(itriggers.MutationKind_Insert, []itriggers.IRecord{rec})
		require.NoError(err)
		_, err = driver.Mutate(itriggers.MutationKind_Insert, []itriggers.IRecord{rec})
		require.ErrorIs(err, ErrRecordExists)
	})
}

// the driver behind the budget-enforcing gateway is how all tests of this
// repository exercise the governor limits
func TestBudgetedGateway(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	driver := Provide(cache)
	gateway := igateway.Provide(driver, ibudgetsce.Provide(ibudgets.BudgetState{MaxQueries: 1, MaxMutations: 1}))

	spec := itriggers.QuerySpec{Schema: "Contact", Field: "AccountID", Values: []string{"100"}}

	_, err := gateway.Query(spec)
	require.NoError(err)

	_, err = gateway.Query(spec)
	require.ErrorIs(err, itriggers.ErrBudgetExceeded)

	// the rejected call never reached the driver
	require.Len(driver.QueryLog(), 1)

	_, err = gateway.Mutate(itriggers.MutationKind_Insert, []itriggers.IRecord{contact(t, cache, 1, 100)})
	require.NoError(err)
	_, err = gateway.Mutate(itriggers.MutationKind_Insert, []itriggers.IRecord{contact(t, cache, 2, 100)})
	require.ErrorIs(err, itriggers.ErrBudgetExceeded)
	require.Len(driver.MutationLog(), 1)

	t.Run("driver failures are reported as external call errors", func(t *testing.T) {
		driver := Provide(cache)
		gateway := igateway.Provide(driver, ibudgetsce.Provide(ibudgets.DefaultBudgetState()))

		_, err := gateway.Mutate(itriggers.MutationKind_Update, []itriggers.IRecord{contact(t, cache, 1, 100)})
		require.ErrorIs(err, itriggers.ErrExternalCall)
		require.ErrorIs(err, ErrRecordNotFound)
	})
}
