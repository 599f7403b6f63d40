package seed

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/sijin45/greenlink-farm-connect/pkg/market/domain/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Product struct {
	ID          int64    `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       float64  `yaml:"price"`
	Quantity    float64  `yaml:"quantity"`
	Category    string   `yaml:"category"`
	Image       string   `yaml:"image"`
	Alt         string   `yaml:"alt"`
	Rating      *float64 `yaml:"rating"`
	ReviewCount int      `yaml:"review_count"`
}

type Vehicle struct {
	ID          int64   `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	DailyRate   float64 `yaml:"daily_rate"`
	Location    string  `yaml:"location"`
	Type        string  `yaml:"type"`
	Image       string  `yaml:"image"`
	Available   bool    `yaml:"available"`
}

// Catalog is the startup data set: the products on sale and the vehicles for rent.
type Catalog struct {
	Products []Product `yaml:"products"`
	Vehicles []Vehicle `yaml:"vehicles"`
}

func Default() (*Catalog, error) {
	return Decode(defaultCatalogReader())
}

// LoadFile reads a catalog from path, or the built-in catalog when path is empty.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open seed file %s", path)
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil {
		return nil, errors.Wrap(err, "decode seed catalog")
	}
	return &catalog, nil
}

func (c *Catalog) ProductModels(now time.Time) ([]model.Product, error) {
	products := make([]model.Product, 0, len(c.Products))
	for _, p := range c.Products {
		product := model.Product{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       decimal.NewFromFloat(p.Price),
			Quantity:    decimal.NewFromFloat(p.Quantity),
			Category:    p.Category,
			Image:       p.Image,
			Alt:         p.Alt,
			Rating:      p.Rating,
			ReviewCount: p.ReviewCount,
			Version:     1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := product.Validate(); err != nil {
			return nil, errors.Wrapf(err, "seed product %q", p.Name)
		}
		products = append(products, product)
	}
	return products, nil
}

func (c *Catalog) VehicleModels(now time.Time) ([]model.Vehicle, error) {
	vehicles := make([]model.Vehicle, 0, len(c.Vehicles))
	for _, v := range c.Vehicles {
		rate := decimal.NewFromFloat(v.DailyRate)
		if !rate.IsPositive() {
			return nil, errors.Wrapf(model.ErrInvalidDailyRate, "seed vehicle %q", v.Name)
		}
		vehicles = append(vehicles, model.Vehicle{
			ID:          v.ID,
			Name:        v.Name,
			Description: v.Description,
			DailyRate:   rate,
			Location:    v.Location,
			Type:        v.Type,
			Image:       v.Image,
			Available:   v.Available,
			CreatedAt:   now,
		})
	}
	return vehicles, nil
}

// Apply loads the catalog into empty repositories. Repositories that already hold data
// are left alone, so running it twice is harmless.
func Apply(ctx context.Context, catalog *Catalog, products model.ProductRepository, vehicles model.VehicleRepository) error {
	now := time.Now().UTC()

	existingProducts, err := products.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existingProducts) == 0 {
		items, err := catalog.ProductModels(now)
		if err != nil {
			return err
		}
		for i := range items {
			if err := products.Create(ctx, &items[i]); err != nil {
				return err
			}
		}
		log.WithField("count", len(items)).Info("seeded products")
	}

	existingVehicles, err := vehicles.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existingVehicles) == 0 {
		items, err := catalog.VehicleModels(now)
		if err != nil {
			return err
		}
		for i := range items {
			if err := vehicles.Create(ctx, &items[i]); err != nil {
				return err
			}
		}
		log.WithField("count", len(items)).Info("seeded vehicles")
	}
	return nil
}

func defaultCatalogReader() io.Reader {
	return bytes.NewReader(defaultCatalog)
}
