package models

// DiaryEntry is a single diary record owned by a user. Date is stored as the
// client supplied it; the service does not parse or normalize it.
type DiaryEntry struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Entry    string `json:"entry"`
}
