// pkg/api/result_v1.go
package api

// ResultV1 is the stable JSON/JSONL schema for one chained query.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ResultV1 struct {
	Query   int     `json:"query"` // 0-based position in the input
	N       int     `json:"n"`
	Scores  []int32 `json:"scores"`
	Parents []int32 `json:"parents"` // -1 = chain start
}
