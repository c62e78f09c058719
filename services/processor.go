package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"
)

// SheetResult is the per-sheet outcome of a processing run. A workbook can
// end up with some sheets costed and others failed; callers get the
// breakdown, never a single collapsed pass/fail.
type SheetResult struct {
	Sheet    string            `json:"sheet"`
	Domain   Domain            `json:"domain"`
	Schema   SchemaDescriptor  `json:"schema"`
	Items    []LineItem        `json:"items"`
	Matched  int               `json:"matched"`
	Warnings []ValidationError `json:"warnings,omitempty"`
	Err      error             `json:"-"`

	matches []*CatalogEntry
}

// Error returns the sheet failure as a string for reporting, or "".
func (r *SheetResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Processor wires the engine together. All fields are plain configuration
// passed per run; a Processor holds no mutable state and is safe to share
// across concurrent sessions.
type Processor struct {
	Catalog  Catalog
	Registry *Registry
	Matching MatchConfig
	Markups  MarkupTable
	Summary  *SummaryLayout
}

// ErrAllSheetsFailed marks the session-level failure where no sheet in the
// workbook could be processed.
var ErrAllSheetsFailed = errors.New("every sheet in the workbook failed")

// ProcessUpload runs classification, extraction and matching over every
// sheet of the session's workbook, advancing UPLOADED -> PARSED -> MATCHED.
// The summary sheet is excluded from line-item processing. Cancellation is
// honored only at sheet boundaries. The session fails only when the workbook
// cannot be opened or every sheet fails.
func (p *Processor) ProcessUpload(ctx context.Context, sess *Session) error {
	f, err := excelize.OpenReader(bytes.NewReader(sess.Workbook()))
	if err != nil {
		sess.Fail()
		return fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			sess.Fail()
			return err
		}
		if p.Summary != nil && p.Summary.IsSummarySheet(name) {
			continue
		}

		schema := p.Registry.Classify(name)
		res := SheetResult{Sheet: name, Domain: schema.Domain, Schema: schema}

		rows, err := f.GetRows(name)
		if err != nil {
			res.Err = fmt.Errorf("read sheet %q: %w", name, err)
		} else {
			items, warnings, err := ExtractLineItems(rows, schema)
			if err != nil {
				var sfe *SheetFormatError
				if errors.As(err, &sfe) {
					sfe.Sheet = name
				}
				res.Err = err
			}
			res.Items = items
			res.Warnings = warnings
		}
		sess.Results = append(sess.Results, res)
	}

	if err := sess.Advance(StateParsed); err != nil {
		return err
	}

	matcher := &Matcher{Catalog: p.Catalog, Config: p.Matching}
	for i := range sess.Results {
		res := &sess.Results[i]
		if res.Err != nil {
			continue
		}
		matches, err := matcher.MatchSheet(res.Domain, res.Items)
		if err != nil {
			// Catalog failure: fatal for the catalog, non-fatal for the
			// run. Items stay unmatched and the warning is recorded.
			res.Warnings = append(res.Warnings, ValidationError{
				Field: "catalog", Message: err.Error(),
			})
		}
		res.matches = matches
		for _, item := range res.Items {
			if item.Matched {
				res.Matched++
			}
		}
		log.Printf("boq_process: sheet %q (%s): %d/%d items matched",
			res.Sheet, res.Domain, res.Matched, len(res.Items))
	}

	if err := sess.Advance(StateMatched); err != nil {
		return err
	}

	if len(sess.Results) > 0 && p.allFailed(sess.Results) {
		sess.Fail()
		return ErrAllSheetsFailed
	}
	return nil
}

// Finalize runs costing, write-back and summary aggregation for a session
// that has completed matching, advancing MATCHED -> COSTED -> FINALIZED.
// An unknown markup percentage is rejected before any state change.
func (p *Processor) Finalize(ctx context.Context, sess *Session, markupPct int) error {
	multiplier, err := p.Markups.Multiplier(markupPct)
	if err != nil {
		return err
	}

	// Costing mutates the per-sheet results in place; a session that has
	// not completed matching is rejected before anything is touched.
	if s := sess.State(); s != StateMatched {
		return fmt.Errorf("cannot finalize session in state %s", s)
	}

	f, err := excelize.OpenReader(bytes.NewReader(sess.Workbook()))
	if err != nil {
		sess.Fail()
		return fmt.Errorf("reopen workbook: %w", err)
	}
	defer f.Close()

	for i := range sess.Results {
		res := &sess.Results[i]
		if res.Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			sess.Fail()
			return err
		}
		for j := range res.Items {
			var entry *CatalogEntry
			if res.matches != nil {
				entry = res.matches[j]
			}
			if err := CostItem(&res.Items[j], entry, multiplier); err != nil {
				var ve *ValidationError
				if errors.As(err, &ve) {
					res.Warnings = append(res.Warnings, *ve)
					continue
				}
				res.Err = err
				break
			}
		}
	}

	if err := sess.Advance(StateCosted); err != nil {
		return err
	}

	for i := range sess.Results {
		res := &sess.Results[i]
		if res.Err != nil {
			continue
		}
		if err := WriteSheetCosts(f, res.Sheet, res.Schema, res.Items); err != nil {
			log.Printf("boq_finalize: sheet %q write aborted: %v", res.Sheet, err)
			res.Err = err
		}
	}

	if p.Summary != nil {
		if err := WriteSummary(f, p.Summary, sess.Results); err != nil {
			sess.Fail()
			return fmt.Errorf("write summary: %w", err)
		}
	}

	if len(sess.Results) > 0 && p.allFailed(sess.Results) {
		sess.Fail()
		return ErrAllSheetsFailed
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		sess.Fail()
		return fmt.Errorf("serialize workbook: %w", err)
	}
	sess.SetOutput(buf.Bytes())

	return sess.Advance(StateFinalized)
}

func (p *Processor) allFailed(results []SheetResult) bool {
	for _, r := range results {
		if r.Err == nil {
			return false
		}
	}
	return true
}
