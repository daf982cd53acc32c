package constants

const (
	AppCatalogService = "catalog-service"
	AppCartService    = "cart-service"
	AppUserService    = "user-service"
	AppSeeder         = "seeder"
	AppStorefront     = "storefront"

	AudienceUser = "audience-user"
)
