package redis

import "fmt"

const ns = "showtime:v1"

func KeyMovie(movieID string) string {
	return fmt.Sprintf("%s:movie:%s", ns, movieID)
}

func KeyMovies() string {
	return ns + ":movies"
}

func KeyShowAvailability(showID string) string {
	return fmt.Sprintf("%s:show:%s:availability", ns, showID)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelShowsChanged() string {
	return ns + ":shows:changed"
}
