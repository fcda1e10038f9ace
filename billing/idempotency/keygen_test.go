package idempotency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey(t *testing.T) {
	testCases := []struct {
		name          string
		components    []string
		expectedError string
	}{
		{
			name:       "payment_fields",
			components: []string{"patient:P1", "auth:A1", "amount:100.0"},
		},
		{
			name:       "single_component",
			components: []string{"claim:CLM-1"},
		},
		{
			name:          "no_components",
			components:    nil,
			expectedError: "at least one key component is required",
		},
		{
			name:          "blank_component",
			components:    []string{"patient:P1", "   "},
			expectedError: "must not be blank",
		},
		{
			name:          "separator_in_component",
			components:    []string{"patient:P1\x1fauth:A1"},
			expectedError: "unit separator",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := DeriveKey(tc.components...)

			if tc.expectedError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedError)
				assert.ErrorIs(t, err, ErrValidation)
				assert.Empty(t, key)
				return
			}

			require.NoError(t, err)
			assert.Len(t, key, KeyLength)
			assert.Regexp(t, "^[a-f0-9]{64}$", key)

			again, err := DeriveKey(tc.components...)
			require.NoError(t, err)
			assert.Equal(t, key, again, "key derivation must be deterministic")
		})
	}
}

func TestDeriveKey_OrderIndependent(t *testing.T) {
	a, err := DeriveKey("patient:P1", "auth:A1", "amount:100.0")
	require.NoError(t, err)
	b, err := DeriveKey("amount:100.0", "patient:P1", "auth:A1")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestDeriveKey_ValueChangesKey(t *testing.T) {
	base, err := DeriveKey("patient:P1", "auth:A1", "amount:100.0")
	require.NoError(t, err)

	variants := [][]string{
		{"patient:P2", "auth:A1", "amount:100.0"},
		{"patient:P1", "auth:A2", "amount:100.0"},
		{"patient:P1", "auth:A1", "amount:100.01"},
		{"patient:P1", "auth:A1"},
	}
	for _, v := range variants {
		key, err := DeriveKey(v...)
		require.NoError(t, err)
		assert.NotEqual(t, base, key, "components %v should change the key", v)
	}
}

func TestDeriveKey_NoBoundaryAmbiguity(t *testing.T) {
	a, err := DeriveKey("ab", "c")
	require.NoError(t, err)
	b, err := DeriveKey("a", "bc")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestDeriveKeyFromFields(t *testing.T) {
	fields := map[string]string{
		"patient": "P1",
		"auth":    "AUTH100",
		"charges": "250.0",
	}

	fromMap, err := DeriveKeyFromFields(fields)
	require.NoError(t, err)

	fromList, err := DeriveKey(Field("charges", "250.0"), Field("patient", "P1"), Field("auth", "AUTH100"))
	require.NoError(t, err)

	assert.Equal(t, fromList, fromMap)

	_, err = DeriveKeyFromFields(map[string]string{"patient": ""})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = DeriveKeyFromFields(map[string]string{"": "P1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = DeriveKeyFromFields(nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeriveKeyFromFields_NameCannotShiftIntoValue(t *testing.T) {
	_, err := DeriveKeyFromFields(map[string]string{"a:b": "c"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = DeriveKeyFromFields(map[string]string{"a\x1fb": "c"})
	assert.ErrorIs(t, err, ErrValidation)

	// Values may carry ':' since the name ends at the first one.
	withColon, err := DeriveKeyFromFields(map[string]string{"a": "b:c"})
	require.NoError(t, err)
	plain, err := DeriveKeyFromFields(map[string]string{"a": "bc"})
	require.NoError(t, err)
	assert.NotEqual(t, withColon, plain)

	split, err := DeriveKeyFromFields(map[string]string{"a": "b", "b": "c"})
	require.NoError(t, err)
	assert.NotEqual(t, withColon, split)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("PAYMENT", "k1"))
	assert.ErrorIs(t, ValidateKey("", "k1"), ErrValidation)
	assert.ErrorIs(t, ValidateKey("PAYMENT", " "), ErrValidation)
}
