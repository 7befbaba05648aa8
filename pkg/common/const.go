package common

const (
	EXCHANGE_BINANCE = "BINANCE"
	EXCHANGE_KUCOIN  = "KUCOIN"

	// Cache keys
	KEY_LOCKED_LEVELS = "locked-levels:%s:%s:%s" // symbol, session id, date key
	KEY_LAST_PRICE    = "last-price:%s"          // symbol
	KEY_ALERT_SENT    = "alert-sent:%s:%s:%s"    // symbol, date key, side
)
