package dto

type SwipeRequest struct {
	SwiperID  int64  `json:"swiperId"`
	SwipedID  int64  `json:"swipedId"`
	Direction string `json:"direction"`
}

type SwipeResponse struct {
	OK           bool `json:"ok"`
	MatchCreated bool `json:"matchCreated"`
}
