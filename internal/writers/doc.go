// Package writers turns chained results into serialized output.
//
// Writers own all presentation knowledge (text records, TSV, JSON/JSONL).
// The chaining core stays domain-only and the pipeline stays
// orchestration-only. JSON/JSONL go through pkg/api (v1).
package writers
