package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapColumns_StandardAliases(t *testing.T) {
	row := map[string]interface{}{
		"Employee":      "J. Doe",
		"Email Address": "j@x.com",
	}
	mapped := MapColumns(row, DefaultAliases)
	assert.Equal(t, "J. Doe", mapped.Get(FieldFullName))
	assert.Equal(t, "j@x.com", mapped.Get(FieldEmail))
}

func TestMapColumns_CaseInsensitiveHeaders(t *testing.T) {
	row := map[string]interface{}{
		"SERIAL NUMBER": "SN-001",
		"  model  ":     "ThinkPad T14",
	}
	mapped := MapColumns(row, DefaultAliases)
	assert.Equal(t, "SN-001", mapped.Get(FieldSerialNo))
	assert.Equal(t, "ThinkPad T14", mapped.Get(FieldModel))
}

// First alias in declared priority order wins when several are present.
func TestMapColumns_PriorityOrder(t *testing.T) {
	row := map[string]interface{}{
		"Full Name": "Priority Winner",
		"Employee":  "Priority Loser",
	}
	mapped := MapColumns(row, DefaultAliases)
	assert.Equal(t, "Priority Winner", mapped.Get(FieldFullName))
}

// An empty value does not win; the next alias with content does.
func TestMapColumns_EmptyValueSkipped(t *testing.T) {
	row := map[string]interface{}{
		"Full Name": "   ",
		"Employee":  "Fallback Name",
	}
	mapped := MapColumns(row, DefaultAliases)
	assert.Equal(t, "Fallback Name", mapped.Get(FieldFullName))
}

// Unmatched canonical fields are absent, never an error.
func TestMapColumns_AbsentFields(t *testing.T) {
	mapped := MapColumns(map[string]interface{}{"Unrelated": "x"}, DefaultAliases)
	assert.Empty(t, mapped.Get(FieldFullName))
	assert.Empty(t, mapped.Get(FieldSerialNo))
	assert.Len(t, mapped, 0)
}

func TestMapColumns_ScalarCells(t *testing.T) {
	row := map[string]interface{}{
		"Serial No": float64(12345),
		"RAM":       16,
	}
	mapped := MapColumns(row, DefaultAliases)
	assert.Equal(t, "12345", mapped.Get(FieldSerialNo))
	assert.Equal(t, "16", mapped.Get(FieldRAM))
}
