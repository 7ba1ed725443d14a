package handlers

// HandlerBundle groups the endpoint handlers handed to the router.
type HandlerBundle struct {
	Auth    *AuthHandler
	Request *RequestHandler
	Market  *MarketHandler
	Wallet  *WalletHandler
	Review  *ReviewHandler
}
