/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voedger/triggers/pkg/dispatcher"
	"github.com/voedger/triggers/pkg/imetrics"
	"github.com/voedger/triggers/pkg/inotify"
	"github.com/voedger/triggers/pkg/invoker"
	"github.com/voedger/triggers/pkg/itriggers"
	"github.com/voedger/triggers/pkg/records"
	"github.com/voedger/triggers/pkg/schemas"
)

// changeSetFile is the JSON shape the run command accepts
type changeSetFile struct {
	Schema    string        `json:"schema"`
	Operation string        `json:"operation"`
	Phase     string        `json:"phase"`
	Records   []jsonRecord  `json:"records"`
	Old       []jsonRecord  `json:"oldRecords"`
}

type jsonRecord struct {
	ID     itriggers.RecordID     `json:"id"`
	Fields map[string]interface{} `json:"fields"`
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <changeset.json>",
		Short: "Runs a JSON change set through a wired dispatcher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChangeSet(args[0])
		},
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to a bbolt database file, in-memory when omitted")
	return cmd
}

func parseFlags(cs *changeSetFile) (flags itriggers.OperationFlags, err error) {
	switch cs.Operation {
	case "insert":
		flags.IsInsert = true
	case "update":
		flags.IsUpdate = true
	case "delete":
		flags.IsDelete = true
	case "undelete":
		flags.IsUndelete = true
	default:
		return flags, fmt.Errorf("unknown operation «%s»: %w", cs.Operation, itriggers.ErrOperationFlagsConflict)
	}
	switch cs.Phase {
	case "before":
		flags.IsBefore = true
	case "after", "":
	default:
		return flags, fmt.Errorf("unknown phase «%s»: %w", cs.Phase, itriggers.ErrConfiguration)
	}
	return flags, nil
}

func buildRecords(cache *schemas.Cache, schema string, recs []jsonRecord) ([]itriggers.IRecord, error) {
	sch := cache.Schema(schema)
	if sch == nil {
		return nil, fmt.Errorf("«%s»: %w", schema, schemas.ErrSchemaNotFound)
	}
	out := make([]itriggers.IRecord, 0, len(recs))
	for _, jr := range recs {
		rec := records.NewRecord(sch, jr.ID)
		if err := records.FillFromJSON(rec, sch, jr.Fields); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func runChangeSet(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	cs := changeSetFile{}
	if err := json.Unmarshal(data, &cs); err != nil {
		return err
	}

	flags, err := parseFlags(&cs)
	if err != nil {
		return err
	}

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

	recs, err := buildRecords(cache, cs.Schema, cs.Records)
	if err != nil {
		return err
	}
	olds, err := buildRecords(cache, cs.Schema, cs.Old)
	if err != nil {
		return err
	}

	res := inv.Invoke(invoker.ChangeSet{Records: recs, OldRecords: olds}, flags)
	printResult(fmt.Sprintf("%s %s «%s»", cs.Phase, cs.Operation, cs.Schema), res)
	if res.Kind == itriggers.InvocationResult_Fatal {
		return res.Err
	}
	return nil
}
