package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/pgcrud/internal/ui"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

// parseAssignments turns repeated col=value flags into an ordered FieldMap.
// col=value binds value as text; col:=value decodes value as JSON, so
// age:=42, active:=true and note:=null bind a number, a bool and NULL. JSON
// objects bind as their JSON text.
func parseAssignments(values []string) (sqlgen.FieldMap, error) {
	var fm sqlgen.FieldMap

	for _, raw := range values {
		eq := strings.Index(raw, "=")
		if eq <= 0 {
			return nil, fmt.Errorf("invalid assignment %q, want column=value", raw)
		}

		col, val := raw[:eq], raw[eq+1:]
		if !strings.HasSuffix(col, ":") {
			fm = fm.Set(col, val)
			continue
		}

		col = strings.TrimSuffix(col, ":")
		if col == "" {
			return nil, fmt.Errorf("invalid assignment %q, want column:=json", raw)
		}
		decoded, err := decodeJSON(val)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON for column %q: %w", col, err)
		}
		fm = fm.Set(col, decoded)
	}

	return fm, nil
}

func decodeJSON(raw string) (interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}

	if _, isObject := v.(map[string]interface{}); isObject {
		return raw, nil
	}
	return v, nil
}

// confirmUnconditional asks before a statement without WHERE touches every
// row of table. --yes skips the prompt.
func confirmUnconditional(cmd *cobra.Command, verb, table string, match sqlgen.FieldMap) (bool, error) {
	if len(match) > 0 {
		return true, nil
	}
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true, nil
	}
	ui.PrintWarning(cmd.OutOrStdout(), "no --where given: this will %s every row in %s", verb, table)
	return ui.Confirm("Continue?")
}
