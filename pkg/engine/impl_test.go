/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package engine

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voedger/triggers/pkg/ibudgets"
	"github.com/voedger/triggers/pkg/ibudgetsce"
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/igatewaymem"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

var (
	beforeInsert = itriggers.TriggerContext{Kind: itriggers.OperationKind_Insert, Phase: itriggers.Phase_Before}
	beforeDelete = itriggers.TriggerContext{Kind: itriggers.OperationKind_Delete, Phase: itriggers.Phase_Before}
	afterUpdate  = itriggers.TriggerContext{Kind: itriggers.OperationKind_Update, Phase: itriggers.Phase_After}
)

func testSchemas(t *testing.T) *schemas.Cache {
	cache := schemas.New()
	cache.Add("Account").
		AddField("Name", schemas.DataKind_string).
		AddField("Rating", schemas.DataKind_string).
		AddField("BillingPostalCode", schemas.DataKind_string).
		AddField("ShippingPostalCode", schemas.DataKind_string).
		AddField("MatchBillingAddress", schemas.DataKind_bool)
	cache.Add("Contact").
		AddField("Name", schemas.DataKind_string).
		AddField("AccountID", schemas.DataKind_RecordID)
	require.NoError(t, cache.Build())
	return cache
}

func testGateway(t *testing.T, cache *schemas.Cache, state ibudgets.BudgetState) (igatewaymem.IMemDriver, igateway.IGateway) {
	driver := igatewaymem.Provide(cache)
	if (state == ibudgets.BudgetState{}) {
		state = ibudgets.DefaultBudgetState()
	}
	return driver, igateway.Provide(driver, ibudgetsce.Provide(state))
}

func newBatch(t *testing.T, recs []itriggers.IRecord, old []itriggers.IRecord, editable bool) itriggers.IChangeBatch {
	batch, err := records.NewBatch(records.BatchParams{Records: recs, OldRecords: old, Editable: editable})
	require.NoError(t, err)
	return batch
}

// matchBillingAddress copies BillingPostalCode to ShippingPostalCode for
// records flagged with MatchBillingAddress. Staged in place: the Before-Insert
// phase needs no mutation call
var matchBillingAddress = itriggers.Rule{
	Name:     "matchBillingAddress",
	Contexts: []itriggers.TriggerContext{beforeInsert},
	Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
		batch := st.Batch()
		for i := 0; i < batch.Count(); i++ {
			if batch.Record(i).AsBool("MatchBillingAddress") {
				rec := intents.Edit(i)
				rec.PutString("ShippingPostalCode", rec.AsString("BillingPostalCode"))
			}
		}
		return nil
	},
}

func TestBasicUsage(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	driver, gateway := testGateway(t, cache, ibudgets.BudgetState{})

	ruleEngine, err := Provide(gateway, ParamsType{}, matchBillingAddress)
	require.NoError(err)

	// three inserted accounts, two are flagged to copy the billing address
	account := func(id itriggers.RecordID, billing string, match bool) itriggers.IRecord {
		rec := records.NewRecord(cache.Schema("Account"), id)
		rec.PutString("BillingPostalCode", billing)
		rec.PutBool("MatchBillingAddress", match)
		return rec
	}
	batch := newBatch(t,
		[]itriggers.IRecord{account(1, "1011", true), account(2, "2022", false), account(3, "3033", true)},
		nil, true)

	res, err := ruleEngine.Dispatch(batch, beforeInsert)
	require.NoError(err)

	// two records are edited in place, no external calls are spent
	require.Equal([]itriggers.StagedEdit{
		{RecordID: 1, Fields: []string{"ShippingPostalCode"}},
		{RecordID: 3, Fields: []string{"ShippingPostalCode"}},
	}, res.StagedEdits)
	require.Equal("1011", batch.Record(0).AsString("ShippingPostalCode"))
	require.Equal("", batch.Record(1).AsString("ShippingPostalCode"))
	require.Equal("3033", batch.Record(2).AsString("ShippingPostalCode"))

	require.Empty(res.Mutations)
	require.Empty(res.FieldErrors)
	require.Empty(driver.QueryLog())
	require.Empty(driver.MutationLog())
}

func TestBulkSafety(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)

	contactsOf := func(batch itriggers.IChangeBatch) itriggers.QuerySpec {
		ids := make([]string, 0, batch.Count())
		for i := 0; i < batch.Count(); i++ {
			ids = append(ids, strconv.FormatUint(uint64(batch.Record(i).ID()), 10))
		}
		return itriggers.QuerySpec{Schema: "Contact", Field: "AccountID", Values: ids}
	}
	queries := func(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) []itriggers.QuerySpec {
		return []itriggers.QuerySpec{contactsOf(batch)}
	}

	// two rules declare the identical query spec and request mutations of
	// the same kind
	touch := func(name string) itriggers.Rule {
		return itriggers.Rule{
			Name:     name,
			Contexts: []itriggers.TriggerContext{afterUpdate},
			Queries:  queries,
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
				for _, contact := range st.QueryResult(contactsOf(st.Batch())) {
					intents.Mutate(itriggers.MutationKind_Update, contact)
				}
				return nil
			},
		}
	}

	driver, gateway := testGateway(t, cache, ibudgets.BudgetState{})
	ruleEngine, err := Provide(gateway, ParamsType{}, touch("touchA"), touch("touchB"))
	require.NoError(err)

	for i := itriggers.RecordID(1); i <= 5; i++ {
		contact := records.NewRecord(cache.Schema("Contact"), 100+i)
		contact.PutRecordID("AccountID", i)
		driver.Fill(contact)
	}

	accounts := make([]itriggers.IRecord, 0)
	olds := make([]itriggers.IRecord, 0)
	for i := itriggers.RecordID(1); i <= 5; i++ {
		accounts = append(accounts, records.NewRecord(cache.Schema("Account"), i))
		olds = append(olds, records.NewRecord(cache.Schema("Account"), i))
	}
	batch := newBatch(t, accounts, olds, false)

	res, err := ruleEngine.Dispatch(batch, afterUpdate)
	require.NoError(err)

	// one coalesced query per distinct spec, regardless of batch size and
	// of how many rules declared it
	require.Len(driver.QueryLog(), 1)

	// mutation requests coalesce into one list per kind
	require.Len(res.Mutations, 1)
	require.Len(res.Mutations[itriggers.MutationKind_Update], 10) // 5 contacts × 2 rules

	// the engine stages mutations, it does not apply them
	require.Empty(driver.MutationLog())

	t.Run("dispatch is idempotent on identical inputs", func(t *testing.T) {
		again, err := ruleEngine.Dispatch(batch, afterUpdate)
		require.NoError(err)
		require.Equal(res, again)
		require.Len(driver.QueryLog(), 2)
	})
}

// a value containing a delimiter character must not make two different specs
// share one coalesced query
func TestBulkFetchDistinctSpecs(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	driver, gateway := testGateway(t, cache, ibudgets.BudgetState{})

	queryingRule := func(name string, values ...string) itriggers.Rule {
		return itriggers.Rule{
			Name:     name,
			Contexts: []itriggers.TriggerContext{afterUpdate},
			Queries: func(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) []itriggers.QuerySpec {
				return []itriggers.QuerySpec{{Schema: "Contact", Field: "Name", Values: values}}
			},
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error { return nil },
		}
	}

	ruleEngine, err := Provide(gateway, ParamsType{},
		queryingRule("findJoined", "a,b"),
		queryingRule("findSplit", "a", "b"))
	require.NoError(err)

	batch := newBatch(t,
		[]itriggers.IRecord{records.NewRecord(cache.Schema("Account"), 1)},
		[]itriggers.IRecord{records.NewRecord(cache.Schema("Account"), 1)},
		false)

	_, err = ruleEngine.Dispatch(batch, afterUpdate)
	require.NoError(err)

	// two different coalesced reads, two gateway queries
	require.Len(driver.QueryLog(), 2)
}

// before a delete is committed, referenced records reject their deletion;
// unreferenced siblings are not rejected
func TestDeleteRejection(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	driver, gateway := testGateway(t, cache, ibudgets.BudgetState{})

	contactsOf := func(batch itriggers.IChangeBatch) itriggers.QuerySpec {
		ids := make([]string, 0, batch.Count())
		for i := 0; i < batch.Count(); i++ {
			ids = append(ids, strconv.FormatUint(uint64(batch.Record(i).ID()), 10))
		}
		return itriggers.QuerySpec{Schema: "Contact", Field: "AccountID", Values: ids}
	}

	rejectReferenced := itriggers.Rule{
		Name:     "rejectReferencedAccounts",
		Contexts: []itriggers.TriggerContext{beforeDelete},
		Queries: func(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) []itriggers.QuerySpec {
			return []itriggers.QuerySpec{contactsOf(batch)}
		},
		Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
			referenced := make(map[itriggers.RecordID]bool)
			for _, contact := range st.QueryResult(contactsOf(st.Batch())) {
				referenced[contact.AsRecordID("AccountID")] = true
			}
			batch := st.Batch()
			for i := 0; i < batch.Count(); i++ {
				if id := batch.Record(i).ID(); referenced[id] {
					intents.FieldError(id, "", "account has contacts")
				}
			}
			return nil
		},
	}

	ruleEngine, err := Provide(gateway, ParamsType{}, rejectReferenced)
	require.NoError(err)

	// accounts 3 and 7 of ten are referenced by contacts
	for _, accountID := range []itriggers.RecordID{3, 7} {
		contact := records.NewRecord(cache.Schema("Contact"), 100+accountID)
		contact.PutRecordID("AccountID", accountID)
		driver.Fill(contact)
	}
	accounts := make([]itriggers.IRecord, 0)
	for i := itriggers.RecordID(1); i <= 10; i++ {
		accounts = append(accounts, records.NewRecord(cache.Schema("Account"), i))
	}
	batch := newBatch(t, accounts, nil, true)

	res, err := ruleEngine.Dispatch(batch, beforeDelete)
	require.NoError(err)

	require.Len(driver.QueryLog(), 1)
	require.Equal([]itriggers.FieldError{
		{RecordID: 3, Message: "account has contacts"},
		{RecordID: 7, Message: "account has contacts"},
	}, res.FieldErrors)
}

func TestRuleOrdering(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	_, gateway := testGateway(t, cache, ibudgets.BudgetState{})

	first := itriggers.Rule{
		Name:     "first",
		Contexts: []itriggers.TriggerContext{beforeInsert},
		Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
			intents.Edit(0).PutString("Rating", "Hot")
			return nil
		},
	}
	// the second rule observes the edit staged by the first one
	second := itriggers.Rule{
		Name:     "second",
		Contexts: []itriggers.TriggerContext{beforeInsert},
		Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
			if st.Batch().Record(0).AsString("Rating") == "Hot" {
				intents.Edit(0).PutString("Name", "hot account")
			}
			return nil
		},
	}

	ruleEngine, err := Provide(gateway, ParamsType{}, first, second)
	require.NoError(err)

	batch := newBatch(t, []itriggers.IRecord{records.NewRecord(cache.Schema("Account"), 1)}, nil, true)
	res, err := ruleEngine.Dispatch(batch, beforeInsert)
	require.NoError(err)
	require.Equal([]itriggers.StagedEdit{{RecordID: 1, Fields: []string{"Rating", "Name"}}}, res.StagedEdits)
}

func TestDispatchErrors(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)

	newAccountBatch := func(editable bool) itriggers.IChangeBatch {
		return newBatch(t, []itriggers.IRecord{records.NewRecord(cache.Schema("Account"), 1)}, nil, editable)
	}

	provide := func(rule itriggers.Rule, params ParamsType) IRuleEngine {
		_, gateway := testGateway(t, cache, ibudgets.BudgetState{})
		e, err := Provide(gateway, params, rule)
		require.NoError(err)
		return e
	}

	t.Run("rule failure is fatal for the whole dispatch", func(t *testing.T) {
		boom := errors.New("boom")
		e := provide(itriggers.Rule{
			Name:     "failing",
			Contexts: []itriggers.TriggerContext{beforeInsert},
			Func:     func(itriggers.IRuleState, itriggers.IRuleIntents) error { return boom },
		}, ParamsType{})
		_, err := e.Dispatch(newAccountBatch(true), beforeInsert)
		require.ErrorIs(err, boom)
		require.ErrorContains(err, "failing")
	})

	t.Run("must fail on explicit mutation during Before phase", func(t *testing.T) {
		e := provide(itriggers.Rule{
			Name:     "eager",
			Contexts: []itriggers.TriggerContext{beforeInsert},
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
				intents.Mutate(itriggers.MutationKind_Update, st.Batch().Record(0))
				return nil
			},
		}, ParamsType{})
		_, err := e.Dispatch(newAccountBatch(true), beforeInsert)
		require.ErrorIs(err, itriggers.ErrBeforePhaseMutation)
	})

	t.Run("must fail on staged edit during After phase", func(t *testing.T) {
		e := provide(itriggers.Rule{
			Name:     "late",
			Contexts: []itriggers.TriggerContext{afterUpdate},
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
				intents.Edit(0)
				return nil
			},
		}, ParamsType{})
		_, err := e.Dispatch(newAccountBatch(false), afterUpdate)
		require.ErrorIs(err, itriggers.ErrAfterPhaseEdit)
	})

	t.Run("must fail when the intents limit is exceeded", func(t *testing.T) {
		e := provide(itriggers.Rule{
			Name:     "greedy",
			Contexts: []itriggers.TriggerContext{afterUpdate},
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
				for i := 0; i < 3; i++ {
					intents.Mutate(itriggers.MutationKind_Update, st.Batch().Record(0))
				}
				return nil
			},
		}, ParamsType{IntentsLimit: 2})
		_, err := e.Dispatch(newAccountBatch(false), afterUpdate)
		require.ErrorIs(err, itriggers.ErrIntentsLimitExceeded)
	})

	t.Run("must fail when the batch exceeds the platform cap", func(t *testing.T) {
		e := provide(matchBillingAddress, ParamsType{PlatformCap: 2})
		recs := []itriggers.IRecord{
			records.NewRecord(cache.Schema("Account"), 1),
			records.NewRecord(cache.Schema("Account"), 2),
			records.NewRecord(cache.Schema("Account"), 3),
		}
		_, err := e.Dispatch(newBatch(t, recs, nil, true), beforeInsert)
		require.ErrorIs(err, itriggers.ErrBatchTooLarge)
	})

	t.Run("must fail on Before context over a read-only batch", func(t *testing.T) {
		e := provide(matchBillingAddress, ParamsType{})
		_, err := e.Dispatch(newAccountBatch(false), beforeInsert)
		require.ErrorIs(err, itriggers.ErrConfiguration)
	})

	t.Run("must fail when the query budget is exhausted", func(t *testing.T) {
		_, gateway := testGateway(t, cache, ibudgets.BudgetState{MaxQueries: 0, MaxMutations: 0})
		e, err := Provide(gateway, ParamsType{}, itriggers.Rule{
			Name:     "fetching",
			Contexts: []itriggers.TriggerContext{beforeInsert},
			Queries: func(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) []itriggers.QuerySpec {
				return []itriggers.QuerySpec{{Schema: "Contact", Field: "AccountID", Values: []string{"1"}}}
			},
			Func: func(itriggers.IRuleState, itriggers.IRuleIntents) error { return nil },
		})
		require.NoError(err)
		_, err = e.Dispatch(newAccountBatch(true), beforeInsert)
		require.ErrorIs(err, itriggers.ErrBudgetExceeded)
	})
}

func TestProvideErrors(t *testing.T) {
	require := require.New(t)

	cache := testSchemas(t)
	_, gateway := testGateway(t, cache, ibudgets.BudgetState{})

	valid := func() itriggers.Rule {
		return itriggers.Rule{
			Name:     "valid",
			Contexts: []itriggers.TriggerContext{beforeInsert},
			Func:     func(itriggers.IRuleState, itriggers.IRuleIntents) error { return nil },
		}
	}

	t.Run("must fail without a gateway", func(t *testing.T) {
		_, err := Provide(nil, ParamsType{}, valid())
		require.ErrorIs(err, ErrGatewayMissed)
	})

	t.Run("must fail on empty rule name", func(t *testing.T) {
		rule := valid()
		rule.Name = ""
		_, err := Provide(gateway, ParamsType{}, rule)
		require.ErrorIs(err, ErrRuleNameMissed)
	})

	t.Run("must fail on duplicate rule name", func(t *testing.T) {
		_, err := Provide(gateway, ParamsType{}, valid(), valid())
		require.ErrorIs(err, ErrRuleNameUniqueViolation)
	})

	t.Run("must fail on missed rule function", func(t *testing.T) {
		rule := valid()
		rule.Func = nil
		_, err := Provide(gateway, ParamsType{}, rule)
		require.ErrorIs(err, ErrRuleFuncMissed)
	})

	t.Run("must fail on missed contexts", func(t *testing.T) {
		rule := valid()
		rule.Contexts = nil
		_, err := Provide(gateway, ParamsType{}, rule)
		require.ErrorIs(err, ErrRuleContextsMissed)
	})

	t.Run("must fail on invalid context", func(t *testing.T) {
		rule := valid()
		rule.Contexts = []itriggers.TriggerContext{{Kind: itriggers.OperationKind_FakeLast, Phase: itriggers.Phase_Before}}
		_, err := Provide(gateway, ParamsType{}, rule)
		require.ErrorIs(err, ErrInvalidContext)
	})
}
