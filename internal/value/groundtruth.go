package value

import "encoding/json"

// GroundTruth is the verified result of running a program: its final value
// and the auxiliary counters the interpreter reports.
type GroundTruth struct {
	Value     Value
	PairCount int
	Output    []string
}

type groundTruthJSON struct {
	Output    any      `json:"output"`
	Display   string   `json:"display"`
	PairCount int      `json:"pairs"`
	Printed   []string `json:"printed,omitempty"`
}

// MarshalJSON encodes the value in native form alongside its rendering.
func (gt GroundTruth) MarshalJSON() ([]byte, error) {
	r := groundTruthJSON{PairCount: gt.PairCount, Printed: gt.Output}
	if gt.Value != nil {
		r.Output = Native(gt.Value)
		r.Display = gt.Value.String()
	}
	return json.Marshal(r)
}

// UnmarshalJSON re-parses the rendered value so the variant survives a
// round trip through a question batch.
func (gt *GroundTruth) UnmarshalJSON(data []byte) error {
	var r groundTruthJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	gt.PairCount = r.PairCount
	gt.Output = r.Printed
	switch {
	case r.Display != "":
		gt.Value = ParseString(r.Display)
	default:
		gt.Value = Parse(r.Output)
	}
	return nil
}
