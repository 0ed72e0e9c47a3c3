package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableDefinitions(t *testing.T) {
	t.Run("Every table in TableNames has a CREATE TABLE statement", func(t *testing.T) {
		allDefinitions := strings.Join(TableDefinitions, " ")

		for _, tableName := range TableNames {
			assert.Contains(t, allDefinitions, "CREATE TABLE IF NOT EXISTS "+tableName,
				"TableDefinitions should create table: %s", tableName)
		}
	})

	t.Run("All statements are idempotent", func(t *testing.T) {
		for i, statement := range TableDefinitions {
			assert.Contains(t, statement, "IF NOT EXISTS",
				"Statement at index %d should be idempotent", i)
		}
	})

	t.Run("Shift definitions carry the reference columns", func(t *testing.T) {
		var shiftDef string
		for _, statement := range TableDefinitions {
			if strings.Contains(statement, "CREATE TABLE IF NOT EXISTS shift_definitions") {
				shiftDef = statement
				break
			}
		}

		assert.NotEmpty(t, shiftDef, "shift_definitions table should be defined")
		assert.Contains(t, shiftDef, "shift_id")
		assert.Contains(t, shiftDef, "shift_name")
		assert.Contains(t, shiftDef, "duration_hours")
	})

	t.Run("No REFERENCES clauses in table definitions", func(t *testing.T) {
		for i, statement := range TableDefinitions {
			assert.NotContains(t, strings.ToUpper(statement), "REFERENCES",
				"Statement at index %d should not declare foreign keys inline", i)
		}
	})

	t.Run("Unique constraints carry their documented names", func(t *testing.T) {
		allDefinitions := strings.Join(TableDefinitions, " ")
		assert.Contains(t, allDefinitions, "uq_baseline_operator_shift_version")
		assert.Contains(t, allDefinitions, "uq_detection_event_baseline_model")
	})
}

func TestTableNames(t *testing.T) {
	t.Run("Contains expected tables", func(t *testing.T) {
		expectedTables := []string{
			"users",
			"crews",
			"shift_definitions",
			"operators",
			"crew_rotations",
			"shift_instances",
			"sessions",
			"events",
			"session_features",
			"baseline_profiles",
			"detections",
			"alerts",
			"cti_objects",
			"alert_cti_links",
			"settings",
			"import_jobs",
		}

		for _, expectedTable := range expectedTables {
			assert.Contains(t, TableNames, expectedTable, "TableNames should contain: %s", expectedTable)
		}
	})

	t.Run("Referenced tables come before referencing tables", func(t *testing.T) {
		// Drops run in reverse creation order, so a table must appear
		// after every table it logically points at.
		ordering := map[string][]string{
			"operators":         {"crews", "shift_definitions"},
			"crew_rotations":    {"crews"},
			"shift_instances":   {"crews", "shift_definitions"},
			"sessions":          {"operators", "shift_definitions", "shift_instances"},
			"events":            {"sessions", "operators"},
			"session_features":  {"sessions"},
			"baseline_profiles": {"operators", "shift_definitions"},
			"detections":        {"events", "baseline_profiles"},
			"alerts":            {"events", "sessions", "detections"},
			"alert_cti_links":   {"alerts", "cti_objects"},
		}

		indexOf := make(map[string]int, len(TableNames))
		for i, name := range TableNames {
			indexOf[name] = i
		}

		for table, deps := range ordering {
			for _, dep := range deps {
				assert.Less(t, indexOf[dep], indexOf[table],
					"%s should be created before %s", dep, table)
			}
		}
	})

	t.Run("All table names are non-empty", func(t *testing.T) {
		for i, tableName := range TableNames {
			assert.NotEmpty(t, tableName, "Table name at index %d should not be empty", i)
			assert.NotEmpty(t, strings.TrimSpace(tableName), "Table name at index %d should not be just whitespace", i)
		}
	})

	t.Run("No duplicate table names", func(t *testing.T) {
		seen := make(map[string]bool)

		for _, tableName := range TableNames {
			assert.False(t, seen[tableName], "Table name %s should not be duplicated", tableName)
			seen[tableName] = true
		}
	})

	t.Run("Table names follow naming convention", func(t *testing.T) {
		for _, tableName := range TableNames {
			// Table names should be lowercase and use underscores
			assert.Equal(t, strings.ToLower(tableName), tableName, "Table name %s should be lowercase", tableName)
			assert.NotContains(t, tableName, " ", "Table name %s should not contain spaces", tableName)
			assert.NotContains(t, tableName, "-", "Table name %s should not contain hyphens", tableName)
		}
	})
}
