package model

import (
	"time"

	"github.com/nrattyp233/create-a-date1/internal/domain/enums"
)

type Swipe struct {
	ID        int64                `json:"id"`
	SwiperID  int64                `json:"swiper_id"`
	SwipedID  int64                `json:"swiped_id"`
	Direction enums.SwipeDirection `json:"direction"`
	CreatedAt time.Time            `json:"created_at"`
}
