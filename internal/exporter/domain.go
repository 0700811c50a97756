// Package exporter turns accumulated loss entries into the per-reason
// "Inventario" flat files consumed by the back-office system.
package exporter

// ConsolidatedGroup is the merged quantity of one product inside a reason's
// batch, together with the entry ids it absorbed.
type ConsolidatedGroup struct {
	ProductCode string
	ProductName string
	Quantity    float64
	EntryIDs    []int64
}

// FileInfo describes one successfully written export file.
type FileInfo struct {
	ReasonCode string `json:"reason_code"`
	Path       string `json:"path"`
	Lines      int    `json:"lines"`
	Entries    int    `json:"entries"`
}

// ReasonError is a per-reason failure. One reason failing never stops the
// others from exporting.
type ReasonError struct {
	ReasonCode string `json:"reason_code"`
	Message    string `json:"message"`
}

// Result summarizes one export run.
type Result struct {
	TotalReasons      int           `json:"total_reasons"`
	SuccessfulExports int           `json:"successful_exports"`
	FailedExports     int           `json:"failed_exports"`
	SkippedReasons    int           `json:"skipped_reasons"`
	ExportedFiles     []FileInfo    `json:"exported_files"`
	Errors            []ReasonError `json:"errors,omitempty"`
	Warnings          []string      `json:"warnings,omitempty"`
}

// FileWriter lands one export file and returns its final path. Writing an
// already-existing name must fail rather than overwrite.
type FileWriter interface {
	Write(name, content string) (string, error)
}
