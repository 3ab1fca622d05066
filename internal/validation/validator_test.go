package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vadimdav12/TestTGBOT/internal/domain"
)

func TestValidate_ContactData(t *testing.T) {
	v := New()

	contact := domain.ContactData{
		Name:    "Test",
		Phone:   "+7 999 111-11-11",
		Address: "Moscow, Testovaya st. 1",
	}
	require.NoError(t, v.Struct(contact))
}

func TestValidate_ContactData_InvalidPhone(t *testing.T) {
	v := New()

	contact := domain.ContactData{
		Name:    "Test",
		Phone:   "invalid",
		Address: "Moscow, Testovaya st. 1",
	}
	assert.Error(t, v.Struct(contact))
}

func TestValidate_ContactData_MissingFields(t *testing.T) {
	v := New()

	assert.Error(t, v.Struct(domain.ContactData{Phone: "+79991111111"}))
}
