package domain

import "fmt"

// RecordType identifies a searchable record category. The values double as
// key prefixes for checkpoints and manifest file names.
type RecordType string

const (
	RecordTypeRECAPDocument RecordType = "rd"
	RecordTypeOpinion       RecordType = "o"
	RecordTypeOralArgument  RecordType = "oa"
	RecordTypeRECAP         RecordType = "r"
	RecordTypePeople        RecordType = "p"
)

// ExportableRecordTypes are the record types the manifest exporter supports.
var ExportableRecordTypes = []RecordType{
	RecordTypeRECAPDocument,
	RecordTypeOpinion,
	RecordTypeOralArgument,
}

// ParseRecordType validates a record type supplied on the command line.
func ParseRecordType(s string) (RecordType, error) {
	for _, rt := range ExportableRecordTypes {
		if s == string(rt) {
			return rt, nil
		}
	}
	return "", fmt.Errorf("unknown record type %q", s)
}
