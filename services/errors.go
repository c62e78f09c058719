package services

import "fmt"

// SheetFormatError means a worksheet does not have the header band its
// resolved schema expects. Fatal for that sheet only; other sheets in the
// workbook keep processing.
type SheetFormatError struct {
	Sheet  string
	Reason string
}

func (e *SheetFormatError) Error() string {
	return fmt.Sprintf("sheet %q: %s", e.Sheet, e.Reason)
}

// ValidationError represents a malformed value on a single row. The row is
// skipped (or coerced, for soft cases) and the sheet continues.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d, field %q: %s", e.Row, e.Field, e.Message)
}

// RowIndexError means a computed write target falls outside the worksheet.
// The whole sheet's write-back is aborted before any cell is touched.
type RowIndexError struct {
	Sheet  string
	Row    int
	MaxRow int
}

func (e *RowIndexError) Error() string {
	return fmt.Sprintf("sheet %q: target row %d outside worksheet bounds (1..%d)", e.Sheet, e.Row, e.MaxRow)
}

// CatalogAccessError wraps a failed master-catalog lookup. Items of the
// affected domain proceed as unmatched; processing itself continues.
type CatalogAccessError struct {
	Domain Domain
	Err    error
}

func (e *CatalogAccessError) Error() string {
	return fmt.Sprintf("catalog lookup for domain %q failed: %v", e.Domain, e.Err)
}

func (e *CatalogAccessError) Unwrap() error { return e.Err }
