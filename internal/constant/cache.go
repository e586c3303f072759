package constant

import "time"

const (
	CACHE_KEY_POST_LIST    = "post:list"
	CACHE_KEY_POST_PREFIX  = "post:detail:"
	DEFAULT_POST_CACHE_TTL = 5 * time.Minute
)
