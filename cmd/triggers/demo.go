/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/voedger/triggers/pkg/dispatcher"
	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/igatewaybolt"
	"github.com/voedger/triggers/pkg/igatewaymem"
	"github.com/voedger/triggers/pkg/imetrics"
	"github.com/voedger/triggers/pkg/inotify"
	"github.com/voedger/triggers/pkg/invoker"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

// path to a bbolt database file (flag --db). Empty means in-memory
var dbPath string

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Runs sample change sets through a wired dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to a bbolt database file, in-memory when omitted")
	return cmd
}

func demoSchemas() (*schemas.Cache, error) {
	cache := schemas.New()
	cache.Add("Account").
		AddField("Name", schemas.DataKind_string).
		AddField("OwnerEmail", schemas.DataKind_string).
		AddField("Rating", schemas.DataKind_string).
		AddField("BillingPostalCode", schemas.DataKind_string).
		AddField("ShippingPostalCode", schemas.DataKind_string).
		AddField("MatchBillingAddress", schemas.DataKind_bool)
	cache.Add("Contact").
		AddField("Name", schemas.DataKind_string).
		AddField("AccountID", schemas.DataKind_RecordID)
	if err := cache.Build(); err != nil {
		return nil, err
	}
	return cache, nil
}

func demoRules() []itriggers.Rule {
	contactsOf := func(batch itriggers.IChangeBatch) itriggers.QuerySpec {
		ids := make([]string, 0, batch.Count())
		for i := 0; i < batch.Count(); i++ {
			ids = append(ids, strconv.FormatUint(uint64(batch.Record(i).ID()), 10))
		}
		return itriggers.QuerySpec{Schema: "Contact", Field: "AccountID", Values: ids}
	}

	return []itriggers.Rule{
		{
			Name:     "copyBillingAddress",
			Contexts: []itriggers.TriggerContext{{Kind: itriggers.OperationKind_Insert, Phase: itriggers.Phase_Before}},
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
		},
		{
			Name:     "rejectReferencedAccounts",
			Contexts: []itriggers.TriggerContext{{Kind: itriggers.OperationKind_Delete, Phase: itriggers.Phase_Before}},
			Queries: func(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) []itriggers.QuerySpec {
				return []itriggers.QuerySpec{contactsOf(batch)}
			},
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
				batch := st.Batch()
				referenced := map[itriggers.RecordID]bool{}
				for _, contact := range st.QueryResult(contactsOf(batch)) {
					referenced[contact.AsRecordID("AccountID")] = true
				}
				for i := 0; i < batch.Count(); i++ {
					if id := batch.Record(i).ID(); referenced[id] {
						intents.FieldError(id, "", "account is referenced by contacts and can not be deleted")
					}
				}
				return nil
			},
		},
		{
			Name:     "notifyRatingDowngrade",
			Contexts: []itriggers.TriggerContext{{Kind: itriggers.OperationKind_Update, Phase: itriggers.Phase_After}},
			Func: func(st itriggers.IRuleState, intents itriggers.IRuleIntents) error {
				batch := st.Batch()
				for i := 0; i < batch.Count(); i++ {
					rec := batch.Record(i)
					old, ok := batch.OldRecord(rec.ID())
					if !ok {
						continue
					}
					if old.AsString("Rating") == "Hot" && rec.AsString("Rating") == "Cold" {
						intents.Notify(
							rec.AsString("OwnerEmail"),
							"Rating downgraded: "+rec.AsString("Name"),
							fmt.Sprintf("account «%s» went from Hot to Cold", rec.AsString("Name")))
					}
				}
				return nil
			},
		},
	}
}

func demoDriver(cache *schemas.Cache) (igateway.IGatewayDriver, func(), error) {
	if dbPath == "" {
		driver := igatewaymem.Provide(cache)
		contact := records.NewRecord(cache.Schema("Contact"), 101)
		contact.PutString("Name", "John Doe")
		contact.PutRecordID("AccountID", 1)
		driver.Fill(contact)
		return driver, func() {}, nil
	}
	driver, err := igatewaybolt.Provide(igatewaybolt.ParamsType{DBPath: dbPath}, cache)
	if err != nil {
		return nil, nil, err
	}
	return driver, func() { driver.Close() }, nil
}

func runDemo() error {
	cache, err := demoSchemas()
	if err != nil {
		return err
	}

	driver, closeDriver, err := demoDriver(cache)
	if err != nil {
		return err
	}
	defer closeDriver()

	metrics := imetrics.Provide()
	inv, err := dispatcher.Provide(&dispatcher.Config{
		Schemas:  cache,
		Rules:    demoRules(),
		Driver:   driver,
		Notifier: inotify.ProvideLogNotifier(),
		Metrics:  metrics,
	})
	if err != nil {
		return err
	}

	account := func(id itriggers.RecordID, fill func(rec itriggers.IEditableRecord)) itriggers.IRecord {
		rec := records.NewRecord(cache.Schema("Account"), id)
		fill(rec)
		return rec
	}

	// inserted account copies its billing address before commit
	inserted := account(1, func(rec itriggers.IEditableRecord) {
		rec.PutString("Name", "Acme")
		rec.PutString("BillingPostalCode", "1011")
		rec.PutBool("MatchBillingAddress", true)
	})
	res := inv.Invoke(
		invoker.ChangeSet{Records: []itriggers.IRecord{inserted}},
		itriggers.OperationFlags{IsInsert: true, IsBefore: true})
	printResult("insert Acme", res)
	fmt.Printf("  ShippingPostalCode: %q\n", inserted.AsString("ShippingPostalCode"))

	// the rating downgrade queues one notification after commit
	updated := account(1, func(rec itriggers.IEditableRecord) {
		rec.PutString("Name", "Acme")
		rec.PutString("OwnerEmail", "owner@acme.example")
		rec.PutString("Rating", "Cold")
	})
	old := account(1, func(rec itriggers.IEditableRecord) {
		rec.PutString("Rating", "Hot")
	})
	res = inv.Invoke(
		invoker.ChangeSet{Records: []itriggers.IRecord{updated}, OldRecords: []itriggers.IRecord{old}},
		itriggers.OperationFlags{IsUpdate: true})
	printResult("downgrade Acme rating", res)

	// deleting a referenced account is rejected (in-memory demo data only)
	if dbPath == "" {
		deleted := account(1, func(rec itriggers.IEditableRecord) {})
		res = inv.Invoke(
			invoker.ChangeSet{Records: []itriggers.IRecord{deleted}, OldRecords: []itriggers.IRecord{deleted}},
			itriggers.OperationFlags{IsDelete: true, IsBefore: true})
		printResult("delete Acme", res)
	}

	fmt.Println("metrics:")
	return metrics.List(func(name string, value float64) error {
		fmt.Printf("  %s: %g\n", name, value)
		return nil
	})
}

func printResult(op string, res itriggers.InvocationResult) {
	fmt.Printf("%s: %s\n", op, res.Kind)
	for _, fe := range res.FieldErrors {
		fmt.Printf("  record «%d»: %s\n", fe.RecordID, fe.Message)
	}
	if res.Err != nil {
		fmt.Printf("  error: %s\n", res.Err)
	}
}
