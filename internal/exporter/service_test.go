package exporter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codimuz/Nova-pasta-sub000/internal/entry"
	"github.com/codimuz/Nova-pasta-sub000/internal/product"
	"github.com/codimuz/Nova-pasta-sub000/internal/reason"
)

type staticReasons struct{ reasons []reason.Reason }

func (s *staticReasons) List(context.Context) ([]reason.Reason, error) {
	return s.reasons, nil
}

type memoryEntries struct {
	byReason map[int64][]entry.Entry
	flushed  []int64

	failFlush bool
}

func (m *memoryEntries) ListPendingByReason(_ context.Context, reasonID int64) ([]entry.Entry, error) {
	return m.byReason[reasonID], nil
}

func (m *memoryEntries) MarkFlushed(_ context.Context, ids []int64) error {
	if m.failFlush {
		return errors.New("connection reset")
	}
	m.flushed = append(m.flushed, ids...)
	return nil
}

type staticCatalog struct{ products map[string]product.Product }

func (s *staticCatalog) GetByCode(_ context.Context, code string) (product.Product, error) {
	p, ok := s.products[code]
	if !ok {
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

type failingWriter struct{}

func (failingWriter) Write(string, string) (string, error) {
	return "", errors.New("disk full")
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)
}

func newTestService(t *testing.T, entries *memoryEntries, catalog *staticCatalog, writer FileWriter) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	if writer == nil {
		writer = NewDirWriter(dir)
	}
	reasons := &staticReasons{reasons: []reason.Reason{
		{ID: 1, Code: "01", Description: "Vencido"},
		{ID: 2, Code: "02", Description: "Avariado"},
	}}
	svc := NewService(reasons, entries, catalog, writer, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = fixedClock
	return svc, dir
}

func TestExportPendingWritesPerReasonFiles(t *testing.T) {
	entries := &memoryEntries{byReason: map[int64][]entry.Entry{
		1: {
			{ID: 1, ProductCode: "7890000000001", Quantity: 1.5, ReasonID: 1},
			{ID: 2, ProductCode: "7890000000001", Quantity: 1, ReasonID: 1},
			{ID: 3, ProductCode: "7890000000002", Quantity: 4.7, ReasonID: 1},
		},
	}}
	catalog := &staticCatalog{products: map[string]product.Product{
		"7890000000001": {Code: "7890000000001", UnitType: product.UnitTypeWeight},
		"7890000000002": {Code: "7890000000002", UnitType: product.UnitTypeUnit},
	}}
	svc, dir := newTestService(t, entries, catalog, nil)

	result, err := svc.ExportPending(context.Background())
	require.NoError(t, err)

	require.Equal(t, 2, result.TotalReasons)
	require.Equal(t, 1, result.SuccessfulExports)
	require.Equal(t, 1, result.SkippedReasons)
	require.Zero(t, result.FailedExports)
	require.Empty(t, result.Warnings)

	require.Len(t, result.ExportedFiles, 1)
	file := result.ExportedFiles[0]
	require.Equal(t, "01", file.ReasonCode)
	require.Equal(t, 2, file.Lines)
	require.Equal(t, 3, file.Entries)
	require.Equal(t, filepath.Join(dir, "motivo01_20260831_143005.txt"), file.Path)

	content, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	// Weight quantities keep fractions, unit quantities are floored.
	require.Equal(t,
		"Inventario 7890000000001 2.500\nInventario 7890000000002 4.000\n",
		string(content))

	require.ElementsMatch(t, []int64{1, 2, 3}, entries.flushed)
}

func TestExportPendingSkipsUnresolvedProductsWithoutFlushing(t *testing.T) {
	entries := &memoryEntries{byReason: map[int64][]entry.Entry{
		1: {
			{ID: 1, ProductCode: "7890000000001", Quantity: 2, ReasonID: 1},
			{ID: 2, ProductCode: "9999999999999", Quantity: 3, ReasonID: 1},
		},
	}}
	catalog := &staticCatalog{products: map[string]product.Product{
		"7890000000001": {Code: "7890000000001", UnitType: product.UnitTypeUnit},
	}}
	svc, _ := newTestService(t, entries, catalog, nil)

	result, err := svc.ExportPending(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.SuccessfulExports)
	require.Len(t, result.Warnings, 1)
	require.Contains(t, result.Warnings[0], "9999999999999")

	// The unresolved product's entry stays pending for the next run.
	require.Equal(t, []int64{1}, entries.flushed)
	require.Equal(t, 1, result.ExportedFiles[0].Lines)
}

func TestExportPendingAllUnresolvedWritesNothing(t *testing.T) {
	entries := &memoryEntries{byReason: map[int64][]entry.Entry{
		1: {{ID: 1, ProductCode: "9999999999999", Quantity: 1, ReasonID: 1}},
	}}
	catalog := &staticCatalog{products: map[string]product.Product{}}
	svc, dir := newTestService(t, entries, catalog, nil)

	result, err := svc.ExportPending(context.Background())
	require.NoError(t, err)

	require.Zero(t, result.SuccessfulExports)
	require.Zero(t, result.FailedExports)
	require.Len(t, result.Warnings, 1)
	require.Empty(t, entries.flushed)

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestExportPendingWriteFailureLeavesEntriesPending(t *testing.T) {
	entries := &memoryEntries{byReason: map[int64][]entry.Entry{
		1: {{ID: 1, ProductCode: "7890000000001", Quantity: 1, ReasonID: 1}},
		2: {{ID: 2, ProductCode: "7890000000001", Quantity: 2, ReasonID: 2}},
	}}
	catalog := &staticCatalog{products: map[string]product.Product{
		"7890000000001": {Code: "7890000000001", UnitType: product.UnitTypeUnit},
	}}
	svc, _ := newTestService(t, entries, catalog, failingWriter{})

	result, err := svc.ExportPending(context.Background())
	require.NoError(t, err)

	// Both reasons fail independently; nothing is flushed.
	require.Equal(t, 2, result.FailedExports)
	require.Len(t, result.Errors, 2)
	require.Equal(t, "01", result.Errors[0].ReasonCode)
	require.Empty(t, entries.flushed)
}

func TestExportPendingFlushFailureIsReported(t *testing.T) {
	entries := &memoryEntries{
		byReason: map[int64][]entry.Entry{
			1: {{ID: 1, ProductCode: "7890000000001", Quantity: 1, ReasonID: 1}},
		},
		failFlush: true,
	}
	catalog := &staticCatalog{products: map[string]product.Product{
		"7890000000001": {Code: "7890000000001", UnitType: product.UnitTypeUnit},
	}}
	svc, _ := newTestService(t, entries, catalog, nil)

	result, err := svc.ExportPending(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, result.FailedExports)
	require.Contains(t, result.Errors[0].Message, "mark entries flushed")
}

func TestDirWriterRejectsNameCollision(t *testing.T) {
	w := NewDirWriter(t.TempDir())

	path, err := w.Write("motivo01_20260831_143005.txt", "Inventario 7890000000001 1.000\n")
	require.NoError(t, err)
	require.FileExists(t, path)

	_, err = w.Write("motivo01_20260831_143005.txt", "other")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrExist)
}
