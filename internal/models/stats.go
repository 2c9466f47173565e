package models

// DayCount is one entry of the trailing scan-per-day series.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD, UTC
	Count int64  `json:"count"`
}

// CardScanCount is one leaderboard row.
type CardScanCount struct {
	CardID    string `json:"card_id"`
	CardName  string `json:"card_name"`
	ScanCount int64  `json:"scan_count"`
}

// Summary is the aggregate scan statistics computed at read time.
type Summary struct {
	TotalScans    int64                `json:"total_scans"`
	ScansByDay    []DayCount           `json:"scans_by_day"`
	ScansByDevice map[DeviceType]int64 `json:"scans_by_device"`
	Cards         []CardScanCount      `json:"cards,omitempty"`
	CardName      string               `json:"card_name,omitempty"`
}
