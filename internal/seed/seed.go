package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/teewear/storefront/internal/log"
	"github.com/teewear/storefront/internal/repository"
)

type product struct {
	Title       string
	Description string
	Price       string
	ImageUrls   []string
	Category    repository.Category
	Sizes       []string
	Gender      repository.Gender
	Featured    bool
}

var products = []product{
	{
		Title:       "Classic Cotton Crew Neck",
		Description: "A timeless crew neck t-shirt made from 100% organic cotton. Perfect for everyday wear with a comfortable fit and breathable fabric.",
		Price:       "24.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab",
			"https://images.unsplash.com/photo-1583743814966-8936f5b7be1a",
		},
		Category: repository.CategoryCasual,
		Sizes:    []string{"S", "M", "L", "XL"},
		Gender:   repository.GenderUnisex,
		Featured: true,
	},
	{
		Title:       "Vintage Graphic Print Tee",
		Description: "Retro-inspired graphic t-shirt featuring classic artwork. Made from soft cotton blend for ultimate comfort.",
		Price:       "29.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1503342217505-b0a15ec3261c",
			"https://images.unsplash.com/photo-1503342394128-c104d54dba01",
		},
		Category: repository.CategoryGraphic,
		Sizes:    []string{"S", "M", "L", "XL", "XXL"},
		Gender:   repository.GenderUnisex,
	},
	{
		Title:       "Performance Sport Tee",
		Description: "High-performance athletic t-shirt with moisture-wicking technology. Perfect for workouts and active lifestyle.",
		Price:       "34.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1581655353564-df123a1eb820",
			"https://images.unsplash.com/photo-1581655504306-47d13d427a58",
		},
		Category: repository.CategorySports,
		Sizes:    []string{"S", "M", "L", "XL"},
		Gender:   repository.GenderMen,
		Featured: true,
	},
	{
		Title:       "Women's Fitted Sports Tee",
		Description: "Specially designed sports t-shirt for women with a flattering fit and quick-dry fabric.",
		Price:       "34.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1515774004412-9c1eb0ad49c9",
			"https://images.unsplash.com/photo-1515774004412-9c1eb0ad49c8",
		},
		Category: repository.CategorySports,
		Sizes:    []string{"XS", "S", "M", "L", "XL"},
		Gender:   repository.GenderWomen,
		Featured: true,
	},
	{
		Title:       "Premium Polo Shirt",
		Description: "Classic polo shirt with a modern fit. Perfect for both casual and semi-formal occasions.",
		Price:       "44.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1585856431232-801e1e8aee83",
			"https://images.unsplash.com/photo-1585856431231-444c5784f410",
		},
		Category: repository.CategoryPolo,
		Sizes:    []string{"S", "M", "L", "XL", "XXL"},
		Gender:   repository.GenderMen,
	},
	{
		Title:       "Limited Edition Artist Series",
		Description: "Exclusive collection featuring unique artwork from local artists. Each piece is numbered and comes with a certificate.",
		Price:       "49.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1576566588028-4147f3842f27",
			"https://images.unsplash.com/photo-1576566588028-4147f3842f28",
		},
		Category: repository.CategoryLimitedEdition,
		Sizes:    []string{"S", "M", "L", "XL"},
		Gender:   repository.GenderUnisex,
		Featured: true,
	},
	{
		Title:       "Eco-Friendly Bamboo Tee",
		Description: "Soft, sustainable t-shirt made from bamboo fibers. Naturally breathable and antibacterial.",
		Price:       "32.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1593032465171-b1efcb8c5e3d",
			"https://images.unsplash.com/photo-1571902943202-507ec2618e8c",
		},
		Category: repository.CategoryCasual,
		Sizes:    []string{"S", "M", "L", "XL"},
		Gender:   repository.GenderUnisex,
	},
	{
		Title:       "Tie-Dye Summer Tee",
		Description: "Colorful tie-dye t-shirt, perfect for festivals and summer outings. Made from soft cotton.",
		Price:       "27.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1629385967033-e7a5b60c2556",
			"https://images.unsplash.com/photo-1618354691330-df0df0995c82",
		},
		Category: repository.CategoryGraphic,
		Sizes:    []string{"M", "L", "XL"},
		Gender:   repository.GenderUnisex,
		Featured: true,
	},
	{
		Title:       "Slim Fit Henley Tee",
		Description: "Modern henley-style tee with a three-button placket. Ideal for layering or solo wear.",
		Price:       "38.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1520975698519-59b1d4b8e0c6",
			"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab",
		},
		Category: repository.CategoryCasual,
		Sizes:    []string{"S", "M", "L"},
		Gender:   repository.GenderMen,
	},
	{
		Title:       "Seamless Workout Tee",
		Description: "Engineered seamless t-shirt designed to reduce chafing. Stretchable and ideal for performance training.",
		Price:       "36.99",
		ImageUrls: []string{
			"https://images.unsplash.com/photo-1600185365584-55c8eb4a3561",
			"https://images.unsplash.com/photo-1600185365527-3a6f6b3df8bb",
		},
		Category: repository.CategorySports,
		Sizes:    []string{"XS", "S", "M", "L", "XL"},
		Gender:   repository.GenderWomen,
		Featured: true,
	},
}

// Products inserts the sample catalog into an empty products table. The seed
// is idempotent at run level, a non-empty table is left untouched.
func Products(c context.Context, repo *repository.ProductRepository) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "seed Products").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "checking existing products").Logger()
	count, err := repo.CountProducts(c)
	if err != nil {
		return fmt.Errorf("failed counting products with error=%w", err)
	}
	if count > 0 {
		logger.Info().Int64(log.KeyCount, count).Msg("products already seeded, skipping")
		return nil
	}

	logger = logger.With().Str(log.KeyProcess, "inserting products").Logger()
	for _, p := range products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return fmt.Errorf("failed parsing price=%s with error=%w", p.Price, err)
		}
		inserted, err := repo.InsertProduct(c, repository.InsertProductParams{
			ID:          uuid.New(),
			Title:       p.Title,
			Description: p.Description,
			Price: pgtype.Numeric{
				Int:              price.Coefficient(),
				Exp:              price.Exponent(),
				InfinityModifier: pgtype.Finite,
				Valid:            true,
			},
			ImageUrls: p.ImageUrls,
			Category:  p.Category,
			Sizes:     p.Sizes,
			Gender:    p.Gender,
			Featured:  p.Featured,
			IsActive:  true,
		})
		if err != nil {
			return fmt.Errorf("failed inserting product title=%s with error=%w", p.Title, err)
		}
		logger.Info().
			Str(log.KeyProductID, inserted.ID.String()).
			Str(log.KeyCategory, inserted.Category).
			Msg("inserted product")
	}
	logger.Info().Int(log.KeyCount, len(products)).Msg("seed completed")
	return nil
}
