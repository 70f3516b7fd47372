package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_PDF(t *testing.T) {
	assert.True(t, CanTransition(ExportPDF, ExportIdle, ExportRendering))
	assert.True(t, CanTransition(ExportPDF, ExportRendering, ExportRasterizing))
	assert.True(t, CanTransition(ExportPDF, ExportRasterizing, ExportComplete))
	assert.True(t, CanTransition(ExportPDF, ExportRendering, ExportFailed))
	assert.True(t, CanTransition(ExportPDF, ExportRasterizing, ExportFailed))

	assert.False(t, CanTransition(ExportPDF, ExportIdle, ExportComplete))
	assert.False(t, CanTransition(ExportPDF, ExportIdle, ExportFailed))
	assert.False(t, CanTransition(ExportPDF, ExportRendering, ExportAwaitingPrintDialog))
	assert.False(t, CanTransition(ExportPDF, ExportComplete, ExportRendering))
	assert.False(t, CanTransition(ExportPDF, ExportFailed, ExportRendering))
}

func TestCanTransition_Print(t *testing.T) {
	assert.True(t, CanTransition(ExportPrint, ExportIdle, ExportRendering))
	assert.True(t, CanTransition(ExportPrint, ExportRendering, ExportAwaitingPrintDialog))
	assert.True(t, CanTransition(ExportPrint, ExportAwaitingPrintDialog, ExportComplete))
	assert.True(t, CanTransition(ExportPrint, ExportRendering, ExportFailed))

	assert.False(t, CanTransition(ExportPrint, ExportRendering, ExportRasterizing))
	assert.False(t, CanTransition(ExportPrint, ExportComplete, ExportFailed))
}

func TestExportState_IsTerminal(t *testing.T) {
	assert.True(t, ExportComplete.IsTerminal())
	assert.True(t, ExportFailed.IsTerminal())
	assert.False(t, ExportIdle.IsTerminal())
	assert.False(t, ExportRasterizing.IsTerminal())
}

func TestExportRun_HappyPath(t *testing.T) {
	now := time.Now()
	run := NewExportRun("run-1", "inv-1", ExportPDF)
	assert.Equal(t, ExportIdle, run.State())

	require.NoError(t, run.Advance(ExportRendering, now))
	require.NoError(t, run.Advance(ExportRasterizing, now))
	require.NoError(t, run.Complete(&ExportArtifact{FileName: "x.pdf"}, now))

	assert.Equal(t, ExportComplete, run.State())
	assert.Equal(t, "x.pdf", run.Artifact().FileName)
	assert.Len(t, run.History(), 3)
	assert.NoError(t, run.Err())
}

func TestExportRun_InvalidAdvance(t *testing.T) {
	run := NewExportRun("run-1", "inv-1", ExportPrint)
	err := run.Advance(ExportComplete, time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ExportIdle, run.State())
}

func TestExportRun_Fail(t *testing.T) {
	now := time.Now()
	run := NewExportRun("run-1", "inv-1", ExportPDF)
	require.NoError(t, run.Advance(ExportRendering, now))
	require.NoError(t, run.Advance(ExportRasterizing, now))

	cause := errors.New("boom")
	failure := run.Fail(cause, now)

	assert.Equal(t, ExportFailed, run.State())
	assert.Equal(t, ExportRasterizing, failure.Stage)
	assert.ErrorIs(t, run.Err(), ErrExportFailed)
	assert.ErrorIs(t, run.Err(), cause)
	assert.Nil(t, run.Artifact())

	// Terminal: nothing moves a failed run.
	assert.Error(t, run.Advance(ExportComplete, now))
}
