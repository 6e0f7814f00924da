package dynamodb

import "github.com/google/uuid"

// PK/SK constants. Each collection owns one partition.
const (
	pkInterim    = "INTERIM"
	pkPacingMart = "PACINGMART"
	pkAlertsMart = "ALERTMART"

	prefixDoc = "DOC#"
	prefixKey = "KEY#"
)

func docSK(docID string) string { return prefixDoc + docID }
func martSK(key string) string  { return prefixKey + key }

func newDocID() string { return uuid.NewString() }
