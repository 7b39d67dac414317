package model

// Message is one raw SMS notification read from the input table.
// Absent text or sender fields are carried as empty strings.
type Message struct {
	Text          string
	SenderAddress string
	ReceivedAt    string // e.g. "Mon, 04 Mar 2024 14:32:10 IST"
	Row           int    // 1-based source row, 0 if unknown
}
