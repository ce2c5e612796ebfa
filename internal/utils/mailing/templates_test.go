package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryReminderBody(t *testing.T) {
	body, err := ExpiryReminderBody("Dina", "https://pantrii.app",
		[]ReminderLine{{Name: "Milk", Label: "Expires today", Date: "2025-03-10"}},
		[]ReminderLine{{Name: "Spinach & Kale", Label: "Expires in 2 days"}},
	)
	require.NoError(t, err)

	assert.Contains(t, body, "Hi Dina")
	assert.Contains(t, body, "Milk (Expires today, 2025-03-10)")
	assert.Contains(t, body, "Spinach &amp; Kale (Expires in 2 days)")
	assert.Contains(t, body, `href="https://pantrii.app"`)
}

func TestExpiryReminderBody_OmitsEmptySections(t *testing.T) {
	body, err := ExpiryReminderBody("Dina", "", nil, []ReminderLine{{Name: "Eggs", Label: "Expires tomorrow"}})
	require.NoError(t, err)

	assert.NotContains(t, body, "Use these first")
	assert.Contains(t, body, "Coming up soon")
}
