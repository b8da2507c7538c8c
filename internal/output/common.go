package output

// Output formats accepted by -output.
const (
	FormatText  = "text"
	FormatTSV   = "tsv"
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
)

// Formats lists every supported format in help order.
var Formats = []string{FormatText, FormatTSV, FormatJSONL, FormatJSON}

// TSVHeader is the header row of the tsv format.
const TSVHeader = "query\tindex\tscore\tparent"

// EndOfRecord terminates each result in the text format.
const EndOfRecord = "EOR"
