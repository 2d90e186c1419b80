package cli

import (
	"bytes"
	"testing"

	"github.com/dmitrijs2005/runnio/internal/client/models"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusText_ColoursByState(t *testing.T) {
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = true })

	tests := []struct {
		status string
		code   string
	}{
		{status: string(models.RegistrationConfirmed), code: "\x1b[32m"},
		{status: string(models.EventStatusUpcoming), code: "\x1b[32m"},
		{status: string(models.RegistrationCancelled), code: "\x1b[31m"},
		{status: string(models.EventStatusCancelled), code: "\x1b[31m"},
		{status: string(models.RegistrationPending), code: "\x1b[33m"},
		{status: string(models.EventStatusOngoing), code: "\x1b[33m"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got := statusText(tt.status)
			assert.Contains(t, got, tt.code)
			assert.Contains(t, got, tt.status)
		})
	}
	assert.Equal(t, "completed", statusText(string(models.EventStatusCompleted)))
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer

	err := renderTable(&buf, []string{"id", "title"}, [][]string{{"7", "City 10K"}, {"8", "Trail 21K"}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "City 10K")
	assert.Contains(t, out, "Trail 21K")
}

func TestIdentityTable_ShowsOptionalFields(t *testing.T) {
	h := newHarness(t, nil, "")
	id := john()
	id.Phone = "+371 2000"

	require.NoError(t, h.app.identity(id))

	assert.Contains(t, h.out.String(), "john@example.com")
	assert.Contains(t, h.out.String(), "+371 2000")
}
