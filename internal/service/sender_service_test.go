package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"parkgate/internal/db"
)

func TestBuildReceiptEmailRendersEmbeddedTemplate(t *testing.T) {
	exit := testEntry.Add(90 * time.Minute)
	ticket := &db.Ticket{
		Code:       "a1b2c3",
		VehicleReg: "ABCDEF",
		SpotID:     2,
		Category:   "CAR",
		Price:      2.25,
		EntryTime:  testEntry,
		ExitTime:   &exit,
	}

	subject, plain, html := buildReceiptEmail(ticket)

	assert.Contains(t, subject, "a1b2c3")
	assert.Contains(t, plain, "Ticket: a1b2c3")
	assert.Contains(t, plain, "Duration: 90 minutes")
	assert.Contains(t, plain, "Fare: 2.25")

	// The HTML body comes from the compiled-in template, so it renders the
	// same regardless of the process working directory.
	assert.True(t, strings.Contains(html, "<table"), "HTML body should be the rendered template, not the plain fallback")
	assert.Contains(t, html, "a1b2c3")
	assert.Contains(t, html, "ABCDEF (spot 2)")
	assert.Contains(t, html, "90 minutes")
	assert.NotEqual(t, plain, html)
}
