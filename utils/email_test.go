package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeEmailBodyCarriesCredentials(t *testing.T) {
	body := string(WelcomeEmailBody("Asha", "asha.rao", "AB1234"))

	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "Username: asha.rao")
	assert.Contains(t, body, "Issuer code: AB1234")
}
