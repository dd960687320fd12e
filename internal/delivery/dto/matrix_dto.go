package dto

type MatrixCellResponse struct {
	CanWork bool   `json:"can_work"`
	Reason  string `json:"reason"`
}

type PlacementMatrixResponse struct {
	AsOf   string                                   `json:"as_of"`
	Staff  []StaffResponse                          `json:"staff"`
	Rooms  []RoomResponse                           `json:"operating_rooms"`
	Matrix map[string]map[string]MatrixCellResponse `json:"matrix"`
}
