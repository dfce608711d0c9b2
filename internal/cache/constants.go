package cache

import "fmt"

// key names definition
const (
	ShowtimeSeatsRemainKey = "showtime:%d:seats:remain" // remaining seats of a showtime, '%d' is showtime id
)

func MakeShowtimeSeatsRemainKey(showtimeID uint) string {
	return fmt.Sprintf("showtime:%d:seats:remain", showtimeID)
}
