package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyEmail         = "email"
	KeyUserID        = "userId"
	KeyProductID     = "productId"
	KeyCategory      = "category"
	KeyCacheKey      = "cacheKey"
	KeyCount         = "count"
	KeyCart          = "cart"
	KeyProducts      = "products"
	KeyQuantity      = "quantity"
	KeyRequestID     = "requestId"
	KeyRequestBody   = "requestBody"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
)
