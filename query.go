package marginbridge

import (
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against the JSON form of the
// report, e.g. "$.summary.totalBps" or "$.rows[*].component". It is the
// scripting hook behind `mba report -q`: pluck one figure out of a report
// without parsing the whole document.
func (a *Attribution) Query(path string) (any, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("cannot marshal report: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("cannot reread report json: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
