package dto

type DutyStatResponse struct {
	DutyTypeID int    `json:"duty_type_id"`
	DutyType   string `json:"duty_type"`
	Count      int    `json:"count"`
}

type RoomStatResponse struct {
	RoomID int    `json:"room_id"`
	Room   string `json:"room"`
	Count  int    `json:"count"`
}

type MonthlyTrendResponse struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type UserAnalyticsResponse struct {
	StaffID       string                 `json:"staff_id"`
	PeriodMonths  int                    `json:"period_months"`
	DutyStats     []DutyStatResponse     `json:"duty_stats"`
	RoomStats     []RoomStatResponse     `json:"operating_room_stats"`
	MonthlyTrends []MonthlyTrendResponse `json:"monthly_trends"`
	Insights      []string               `json:"insights"`
}
