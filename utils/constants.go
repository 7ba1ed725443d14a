package utils

import "time"

// MarketStatsCachePrefix is the prefix used for Redis market-stats cache keys.
const MarketStatsCachePrefix = "market:"

// MarketStatsCacheTTL is the time-to-live for cached market-stats entries.
const MarketStatsCacheTTL = 2 * time.Minute
