package domain

import "time"

// HistoryRecord is the immutable result of one scored session, handed
// to the persistence collaborator after every scoring call. The field
// names fix the record format shared with storage and the history API.
type HistoryRecord struct {
	ID          string         `json:"id"`
	Date        string         `json:"date"` // display form, "01.02 15:04"
	MissionText string         `json:"missionText"`
	Success     bool           `json:"success"`
	UserOrder   []RequiredItem `json:"submittedOrder"`
	ResultText  string         `json:"resultText,omitempty"` // booking flows: "1/1 (100%)"
	Timestamp   int64          `json:"timestamp"`
}

// HistoryDateFormat is the layout used for HistoryRecord.Date.
const HistoryDateFormat = "01.02 15:04"

func FormatHistoryDate(t time.Time) string {
	return t.Format(HistoryDateFormat)
}
