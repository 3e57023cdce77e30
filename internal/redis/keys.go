package redisx

const ns = "kioskgym:v1"

func KeyHistoryList() string {
	return ns + ":history:list"
}

// RateLimitPrefix namespaces one limiter scope; the limiter appends
// the per-client suffix itself.
func RateLimitPrefix(scope string) string {
	return ns + ":rl:" + scope
}

func ChannelSessionEvents() string {
	return ns + ":sessions:events"
}
