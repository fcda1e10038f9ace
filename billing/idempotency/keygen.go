package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
)

// componentSeparator joins key components before hashing. Components containing it
// are rejected so two different component lists can never produce the same input.
const componentSeparator = "\x1f"

// fieldSeparator splits a component's name from its value.
const fieldSeparator = ":"

// KeyLength is the length of every derived key (hex-encoded SHA-256).
const KeyLength = sha256.Size * 2

// Field formats a self-describing key component, e.g. Field("patient", "P1") == "patient:P1".
func Field(name, value string) string {
	return name + fieldSeparator + value
}

// DeriveKey turns business fields into a deterministic operation key.
//
// Components are expected in the "name:value" form produced by Field. A sorted copy is
// hashed, so the order in which a caller assembled its fields never changes the key.
func DeriveKey(components ...string) (string, error) {
	if len(components) == 0 {
		return "", validationError("at least one key component is required")
	}

	sorted := make([]string, len(components))
	for i, c := range components {
		if strings.TrimSpace(c) == "" {
			return "", validationError("key components must not be blank")
		}
		if strings.Contains(c, componentSeparator) {
			return "", validationError("key components must not contain the unit separator")
		}
		sorted[i] = c
	}
	sort.Strings(sorted)

	sum := sha256.Sum256([]byte(strings.Join(sorted, componentSeparator)))
	return hex.EncodeToString(sum[:]), nil
}

// DeriveKeyFromFields derives a key from a field map. Names are sorted before hashing
// and must not contain ':', so no two maps produce the same components.
func DeriveKeyFromFields(fields map[string]string) (string, error) {
	if len(fields) == 0 {
		return "", validationError("at least one key field is required")
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	components := make([]string, 0, len(names))
	for _, name := range names {
		value := fields[name]
		if strings.TrimSpace(name) == "" {
			return "", validationError("key field names must not be blank")
		}
		// The first ':' of a component ends its name.
		if strings.Contains(name, fieldSeparator) || strings.Contains(name, componentSeparator) {
			return "", validationError("key field name " + strconv.Quote(name) + " must not contain ':'")
		}
		if strings.TrimSpace(value) == "" {
			return "", validationError("key field " + name + " must not be blank")
		}
		components = append(components, Field(name, value))
	}
	return DeriveKey(components...)
}

// ValidateKey checks that an externally supplied operation type and key are usable.
func ValidateKey(operationType, operationKey string) error {
	if strings.TrimSpace(operationType) == "" {
		return validationError("operation type is required")
	}
	if strings.TrimSpace(operationKey) == "" {
		return validationError("operation key is required")
	}
	return nil
}
