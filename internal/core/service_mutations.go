package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/sheetsync/internal/logging"
	"github.com/JonMunkholm/sheetsync/internal/sheet"
)

// result builds the MutationResult for a finished (or refused) plan and logs
// failures at the operation boundary.
func (s *Service) result(ctx context.Context, op string, plan *Plan, recordID, okText, failText string, err error) (MutationResult, error) {
	res := MutationResult{RecordID: recordID}
	if plan != nil {
		res.Plan = plan.Report()
	}
	if err != nil {
		logging.FromContext(ctx).Error(op+" failed",
			"record_id", recordID,
			"error", err,
			"code", MapError(err).Code,
		)
		res.Notice = s.failureNotice(failText, err)
		return res, err
	}
	res.Notice = s.successNotice(okText)
	return res, nil
}

// Update overwrites one row with original's fields overlaid by edits.
//
// The collection is re-read first and original's handle checked against it;
// a moved or changed row fails with *sheet.StaleHandleError and nothing is
// written. The row is written in full in a single call.
func (s *Service) Update(ctx context.Context, key string, original sheet.Record, edits map[string]string) (MutationResult, error) {
	def, store, err := s.Definition(key)
	if err != nil {
		return s.result(ctx, "update", nil, "", "", "Failed to update record.", err)
	}
	msgs := def.Messages
	rowKey := original.Value(def.KeyField)

	if original.Handle < 1 {
		err := fmt.Errorf("update %s row %d: %w", key, original.Handle, sheet.ErrInvalidHandle)
		return s.result(ctx, "update", nil, rowKey, msgs.UpdateOK, msgs.UpdateFail, err)
	}
	merged, err := mergeEdits(def, original, edits)
	if err != nil {
		return s.result(ctx, "update", nil, rowKey, msgs.UpdateOK, msgs.UpdateFail, err)
	}

	release, err := s.guard.Acquire(ctx, key)
	if err != nil {
		return s.result(ctx, "update", nil, rowKey, msgs.UpdateOK, msgs.UpdateFail, err)
	}
	defer release()
	defer s.invalidate(ctx, store)

	runCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	var columns []string
	plan := NewPlan("update " + key)
	plan.Add(fmt.Sprintf("verify %s row %d", key, original.Handle), func(ctx context.Context) (string, error) {
		snap, err := fresh(ctx, store)
		if err != nil {
			return "", err
		}
		if err := snap.Verify(original, def.KeyField); err != nil {
			return "", err
		}
		columns = def.columnsFor(snap.Headers)
		for field := range edits {
			if !containsString(columns, field) {
				return "", &ValidationError{Kind: UnknownField, Field: field}
			}
		}
		return fmt.Sprintf("%d rows", snap.Len()), nil
	})
	plan.Add(fmt.Sprintf("update %s row %d", key, original.Handle), func(ctx context.Context) (string, error) {
		return "", store.Update(ctx, original.Handle, orderValues(columns, merged))
	})

	err = plan.Run(runCtx)
	s.audit(ctx, ActionUpdate, key, rowKey, merged, plan, err)
	return s.result(ctx, "update", plan, rowKey, msgs.UpdateOK, msgs.UpdateFail, err)
}

// mergeEdits overlays edits on original's fields and checks the result.
func mergeEdits(def CollectionDefinition, original sheet.Record, edits map[string]string) (map[string]string, error) {
	merged := make(map[string]string, len(original.Fields)+len(edits))
	for k, v := range original.Fields {
		merged[k] = v
	}
	for field, v := range edits {
		if len(def.Columns) > 0 && !containsString(def.Columns, field) {
			return nil, &ValidationError{Kind: UnknownField, Field: field}
		}
		if (field == def.KeyField || field == def.LinkField) && v != original.Value(field) {
			return nil, &ValidationError{Kind: ReadOnlyField, Field: field}
		}
		merged[field] = v
	}
	if err := checkRequired(def, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func checkRequired(def CollectionDefinition, fields map[string]string) error {
	for _, field := range def.Required {
		if strings.TrimSpace(fields[field]) == "" {
			return &ValidationError{Kind: RequiredField, Field: field}
		}
	}
	return nil
}

// CreateCustomer appends a customer row followed by one row per line item.
//
// Identifiers are generated before any write. The customer row carries the
// comma-joined item identifiers in its link field and each item row carries
// the customer identifier. Writes are sequential in item order; the first
// failure stops the rest and earlier rows are left in place.
func (s *Service) CreateCustomer(ctx context.Context, form CustomerForm, items []LineItem) (MutationResult, error) {
	def, store, err := s.Definition(CustomersKey)
	if err != nil {
		return s.result(ctx, "create customer", nil, "", "", "Failed to submit", err)
	}
	msgs := def.Messages
	childDef, childStore, err := s.Definition(def.ChildKey)
	if err != nil {
		return s.result(ctx, "create customer", nil, "", msgs.CreateOK, msgs.CreateFail, err)
	}

	fields := form.Fields()
	if err := checkRequired(def, fields); err != nil {
		return s.result(ctx, "create customer", nil, "", msgs.CreateOK, msgs.CreateFail, err)
	}
	items = nonBlankItems(items)

	customerID := s.ids.Parent(def.IDPrefix)
	links := LinkList{Collection: def.ChildKey, IDs: make([]string, len(items))}
	for i := range items {
		links.IDs[i] = s.ids.Child(childDef.IDPrefix, i)
	}
	if err := links.Validate(); err != nil {
		return s.result(ctx, "create customer", nil, customerID, msgs.CreateOK, msgs.CreateFail, err)
	}
	fields[def.KeyField] = customerID
	fields[def.LinkField] = links.String()

	release, err := s.guard.Acquire(ctx, CustomersKey, def.ChildKey)
	if err != nil {
		return s.result(ctx, "create customer", nil, customerID, msgs.CreateOK, msgs.CreateFail, err)
	}
	defer release()
	defer s.invalidate(ctx, store, childStore)

	runCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	var customerCols, itemCols []string
	plan := NewPlan("create customer")
	plan.Add("read "+CustomersKey+" and "+def.ChildKey+" headers", func(ctx context.Context) (string, error) {
		var err error
		if customerCols, err = headerColumns(ctx, def, store, def.KeyField, def.LinkField); err != nil {
			return "", err
		}
		if itemCols, err = headerColumns(ctx, childDef, childStore, childDef.KeyField, childDef.ParentField); err != nil {
			return "", err
		}
		return fmt.Sprintf("%d and %d columns", len(customerCols), len(itemCols)), nil
	})
	plan.Add("create customer "+customerID, func(ctx context.Context) (string, error) {
		return "", store.Create(ctx, orderValues(customerCols, fields))
	})
	for i, item := range items {
		itemID := links.IDs[i]
		plan.Add("create item "+itemID, func(ctx context.Context) (string, error) {
			return "", childStore.Create(ctx, itemValues(childDef, itemCols, itemID, customerID, item))
		})
	}

	err = plan.Run(runCtx)
	s.audit(ctx, ActionCreate, CustomersKey, customerID, fields, plan, err)
	return s.result(ctx, "create customer", plan, customerID, msgs.CreateOK, msgs.CreateFail, err)
}

// headerColumns reads the current column order of store and checks that the
// identifying columns are present.
func headerColumns(ctx context.Context, def CollectionDefinition, store SheetStore, required ...string) ([]string, error) {
	snap, err := fresh(ctx, store)
	if err != nil {
		return nil, err
	}
	columns := def.columnsFor(snap.Headers)
	for _, col := range required {
		if !containsString(columns, col) {
			return nil, &ValidationError{Kind: UnknownField, Field: col}
		}
	}
	return columns, nil
}

// itemValues lays out a child row in columns order. The amount is sent as a
// number.
func itemValues(def CollectionDefinition, columns []string, itemID, parentID string, item LineItem) []any {
	cols := def.Items
	values := orderValues(columns, map[string]string{
		def.KeyField:     itemID,
		cols.Code:        item.Code,
		cols.Description: item.Description,
		cols.Qty:         item.Qty,
		cols.Rate:        item.Rate,
		def.ParentField:  parentID,
	})
	for i, col := range columns {
		if col == cols.Amount {
			values[i] = item.Amount()
		}
	}
	return values
}

// nonBlankItems drops form rows where nothing was entered.
func nonBlankItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Code+item.Description+item.Qty+item.Rate) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// DeleteCustomer removes every item listed in customer's link field and then
// the customer row.
//
// Each item is looked up by identifier in a fresh read of the item collection
// and deleted by the handle found there, because earlier deletes shift the
// rows below them. An identifier with no matching row is skipped. The
// customer row is stale-checked against a fresh read before the first item
// is touched and again right before it is deleted.
func (s *Service) DeleteCustomer(ctx context.Context, customer sheet.Record) (MutationResult, error) {
	def, store, err := s.Definition(CustomersKey)
	if err != nil {
		return s.result(ctx, "delete customer", nil, "", "", "Failed to delete customer or items.", err)
	}
	msgs := def.Messages
	customerID := customer.Value(def.KeyField)

	childDef, childStore, err := s.Definition(def.ChildKey)
	if err != nil {
		return s.result(ctx, "delete customer", nil, customerID, msgs.DeleteOK, msgs.DeleteFail, err)
	}
	if customer.Handle < 1 {
		err := fmt.Errorf("delete %s row %d: %w", CustomersKey, customer.Handle, sheet.ErrInvalidHandle)
		return s.result(ctx, "delete customer", nil, customerID, msgs.DeleteOK, msgs.DeleteFail, err)
	}
	// Stored lists are not validated: a repeated identifier gets its own
	// step and is noted "not found" once the row is gone.
	links := ParseLinkList(def.ChildKey, customer.Value(def.LinkField))

	release, err := s.guard.Acquire(ctx, CustomersKey, def.ChildKey)
	if err != nil {
		return s.result(ctx, "delete customer", nil, customerID, msgs.DeleteOK, msgs.DeleteFail, err)
	}
	defer release()
	defer s.invalidate(ctx, store, childStore)

	runCtx, cancel := s.mutationContext(ctx)
	defer cancel()

	verifyCustomer := func(ctx context.Context) (*sheet.Snapshot, error) {
		snap, err := fresh(ctx, store)
		if err != nil {
			return nil, err
		}
		return snap, snap.Verify(customer, def.KeyField)
	}

	plan := NewPlan("delete customer")
	plan.Add(fmt.Sprintf("verify %s row %d", CustomersKey, customer.Handle), func(ctx context.Context) (string, error) {
		snap, err := verifyCustomer(ctx)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d rows", snap.Len()), nil
	})
	for _, itemID := range links.IDs {
		plan.Add("delete item "+itemID, func(ctx context.Context) (string, error) {
			snap, err := fresh(ctx, childStore)
			if err != nil {
				return "", err
			}
			rec, ok := snap.Find(childDef.KeyField, itemID)
			if !ok {
				return "not found", nil
			}
			if err := childStore.Delete(ctx, rec.Handle); err != nil {
				return "", err
			}
			return fmt.Sprintf("row %d", rec.Handle), nil
		})
	}
	plan.Add("delete customer "+customerID, func(ctx context.Context) (string, error) {
		if _, err := verifyCustomer(ctx); err != nil {
			return "", err
		}
		if err := store.Delete(ctx, customer.Handle); err != nil {
			return "", err
		}
		return fmt.Sprintf("row %d", customer.Handle), nil
	})

	err = plan.Run(runCtx)
	s.audit(ctx, ActionDelete, CustomersKey, customerID, customer.Fields, plan, err)
	return s.result(ctx, "delete customer", plan, customerID, msgs.DeleteOK, msgs.DeleteFail, err)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
