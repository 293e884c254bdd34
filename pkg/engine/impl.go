/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package engine

import (
	"fmt"

	"github.com/untillpro/goutils/logger"

	"github.com/voedger/triggers/pkg/igateway"
	"github.com/voedger/triggers/pkg/itriggers"
)

type ruleEngine struct {
	gateway igateway.IGateway
	params  ParamsType
	rules   []itriggers.Rule
}

// ruleState implements itriggers.IRuleState
type ruleState struct {
	batch   itriggers.IChangeBatch
	ctx     itriggers.TriggerContext
	results map[string][]itriggers.IRecord
}

func (st *ruleState) Batch() itriggers.IChangeBatch { return st.batch }

func (st *ruleState) Context() itriggers.TriggerContext { return st.ctx }

func (st *ruleState) QueryResult(spec itriggers.QuerySpec) []itriggers.IRecord {
	return st.results[spec.Key()]
}

// intentsType implements itriggers.IRuleIntents. Usage violations are
// collected and surfaced by the engine after the offending rule returns
type intentsType struct {
	batch         itriggers.IChangeBatch
	phase         itriggers.Phase
	limit         int
	size          int
	mutations     map[itriggers.MutationKind][]itriggers.IRecord
	fieldErrors   []itriggers.FieldError
	notifications []itriggers.Notification
	err           error
}

func (in *intentsType) Edit(i int) itriggers.IEditableRecord {
	if in.phase != itriggers.Phase_Before {
		in.collect(itriggers.ErrAfterPhaseEdit)
		return nil
	}
	return in.batch.Edit(i)
}

func (in *intentsType) FieldError(id itriggers.RecordID, field string, message string) {
	in.fieldErrors = append(in.fieldErrors, itriggers.FieldError{RecordID: id, Field: field, Message: message})
}

func (in *intentsType) Mutate(kind itriggers.MutationKind, rec itriggers.IRecord) {
	if in.phase == itriggers.Phase_Before {
		in.collect(itriggers.ErrBeforePhaseMutation)
		return
	}
	if (kind == itriggers.MutationKind_null) || (kind >= itriggers.MutationKind_FakeLast) {
		in.collect(fmt.Errorf("mutation kind %s: %w", kind, itriggers.ErrConfiguration))
		return
	}
	if in.size >= in.limit {
		in.collect(fmt.Errorf("%d intents: %w", in.size, itriggers.ErrIntentsLimitExceeded))
		return
	}
	in.mutations[kind] = append(in.mutations[kind], rec)
	in.size++
}

func (in *intentsType) Notify(recipient string, subject string, body string) {
	if in.size >= in.limit {
		in.collect(fmt.Errorf("%d intents: %w", in.size, itriggers.ErrIntentsLimitExceeded))
		return
	}
	in.notifications = append(in.notifications, itriggers.Notification{Recipient: recipient, Subject: subject, Body: body})
	in.size++
}

func (in *intentsType) collect(err error) {
	if in.err == nil {
		in.err = err
	}
}

func (e *ruleEngine) Dispatch(batch itriggers.IChangeBatch, ctx itriggers.TriggerContext) (res itriggers.DispatchResult, err error) {
	if batch.Count() > e.params.PlatformCap {
		return res, fmt.Errorf("%d records, cap is %d: %w", batch.Count(), e.params.PlatformCap, itriggers.ErrBatchTooLarge)
	}

	if (ctx.Phase == itriggers.Phase_Before) && !batch.Editable() {
		return res, fmt.Errorf("%s dispatch over a read-only batch: %w", ctx, itriggers.ErrConfiguration)
	}

	matched := make([]itriggers.Rule, 0, len(e.rules))
	for _, rule := range e.rules {
		if ctx.Match(rule.Contexts) {
			matched = append(matched, rule)
		}
	}

	// bulk fetch: one coalesced query per distinct spec, before any
	// per-record evaluation. Rules have no other way to reach the gateway
	results := make(map[string][]itriggers.IRecord)
	for _, rule := range matched {
		if rule.Queries == nil {
			continue
		}
		for _, spec := range rule.Queries(batch, ctx) {
			key := spec.Key()
			if _, ok := results[key]; ok {
				continue
			}
			recs, err := e.gateway.Query(spec)
			if err != nil {
				return res, fmt.Errorf("rule «%s»: %w", rule.Name, err)
			}
			results[key] = recs
		}
	}

	st := &ruleState{batch: batch, ctx: ctx, results: results}
	intents := &intentsType{
		batch:     batch,
		phase:     ctx.Phase,
		limit:     e.params.IntentsLimit,
		mutations: make(map[itriggers.MutationKind][]itriggers.IRecord),
	}

	// registration order; rule N+1 observes edits staged by rule N
	for _, rule := range matched {
		if err := rule.Func(st, intents); err != nil {
			return res, fmt.Errorf("rule «%s»: %w", rule.Name, err)
		}
		if intents.err != nil {
			return res, fmt.Errorf("rule «%s»: %w", rule.Name, intents.err)
		}
	}

	if ctx.Phase == itriggers.Phase_Before {
		for i := 0; i < batch.Count(); i++ {
			rec := batch.Edit(i)
			if err := rec.Error(); err != nil {
				return res, err
			}
			fields := make([]string, 0)
			rec.EditedFields(func(name string) { fields = append(fields, name) })
			if len(fields) > 0 {
				res.StagedEdits = append(res.StagedEdits, itriggers.StagedEdit{RecordID: rec.ID(), Fields: fields})
			}
		}
	}

	if logger.IsVerbose() {
		logger.Verbose(fmt.Sprintf("%s: %d records, %d rules, %d queries, %d staged edits, %d field errors",
			ctx, batch.Count(), len(matched), len(results), len(res.StagedEdits), len(intents.fieldErrors)))
	}

	res.Mutations = intents.mutations
	res.FieldErrors = intents.fieldErrors
	res.Notifications = intents.notifications
	return res, nil
}

func validateRules(rules []itriggers.Rule) error {
	names := make(map[string]bool)
	for _, rule := range rules {
		if rule.Name == "" {
			return ErrRuleNameMissed
		}
		if names[rule.Name] {
			return fmt.Errorf("rule «%s»: %w", rule.Name, ErrRuleNameUniqueViolation)
		}
		names[rule.Name] = true
		if rule.Func == nil {
			return fmt.Errorf("rule «%s»: %w", rule.Name, ErrRuleFuncMissed)
		}
		if len(rule.Contexts) == 0 {
			return fmt.Errorf("rule «%s»: %w", rule.Name, ErrRuleContextsMissed)
		}
		for _, ctx := range rule.Contexts {
			if (ctx.Kind == itriggers.OperationKind_null) || (ctx.Kind >= itriggers.OperationKind_FakeLast) || (ctx.Phase >= itriggers.Phase_FakeLast) {
				return fmt.Errorf("rule «%s», context %v: %w", rule.Name, ctx, ErrInvalidContext)
			}
		}
	}
	return nil
}
