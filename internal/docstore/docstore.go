// Package docstore serves the catalog from MongoDB. Documents keep string
// identifiers and are normalized into models on the way out.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/models"
	"github.com/example/qurrah/internal/seed"
)

const (
	backend                = "mongo"
	categoryCollectionName = "categories"
	productCollectionName  = "products"
)

type categoryDoc struct {
	ID            string    `bson:"_id"`
	Slug          string    `bson:"slug"`
	NameEN        string    `bson:"name_en"`
	NameAR        string    `bson:"name_ar"`
	DescriptionEN *string   `bson:"description_en,omitempty"`
	DescriptionAR *string   `bson:"description_ar,omitempty"`
	ImageURL      *string   `bson:"image_url,omitempty"`
	CreatedAt     time.Time `bson:"created_at"`
}

type colorDoc struct {
	Name string `bson:"name"`
	Hex  string `bson:"hex"`
}

type productDoc struct {
	ID            string     `bson:"_id"`
	CategoryID    string     `bson:"category_id"`
	Slug          string     `bson:"slug"`
	Name          string     `bson:"name"`
	Brand         string     `bson:"brand"`
	DescriptionEN *string    `bson:"description_en,omitempty"`
	DescriptionAR *string    `bson:"description_ar,omitempty"`
	Price         float64    `bson:"price"`
	OriginalPrice *float64   `bson:"original_price,omitempty"`
	Images        []string   `bson:"images"`
	Colors        []colorDoc `bson:"colors"`
	ColorNames    []string   `bson:"color_names"`
	Width         string     `bson:"width"`
	Shape         string     `bson:"shape"`
	Material      string     `bson:"material"`
	Gender        string     `bson:"gender"`
	FrameWidth    *float64   `bson:"frame_width,omitempty"`
	LensWidth     *float64   `bson:"lens_width,omitempty"`
	BridgeWidth   *float64   `bson:"bridge_width,omitempty"`
	IsNew         bool       `bson:"is_new"`
	IsBestseller  bool       `bson:"is_bestseller"`
	InStock       bool       `bson:"in_stock"`
	CreatedAt     time.Time  `bson:"created_at"`
}

// Config describes how to reach the Mongo deployment.
type Config struct {
	URI     string
	DBName  string
	Timeout time.Duration
}

// Connect dials Mongo and verifies the connection.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("docstore: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("docstore: ping: %w", err)
	}
	return client, nil
}

// Store implements the catalog store over two collections.
type Store struct {
	categories *mongo.Collection
	products   *mongo.Collection
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		categories: db.Collection(categoryCollectionName),
		products:   db.Collection(productCollectionName),
	}
}

// Ping checks that the deployment is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.categories.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the unique slug indexes and facet indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	if _, err := s.categories.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique}); err != nil {
		return fmt.Errorf("docstore: category indexes: %w", err)
	}
	_, err := s.products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "category_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "color_names", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("docstore: product indexes: %w", err)
	}
	return nil
}

func (s *Store) Categories(ctx context.Context) (categories []models.Category, err error) {
	defer metrics.ObserveStore(backend, "categories", time.Now(), &err)
	cursor, err := s.categories.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, catalog.WrapStore("categories", err)
	}
	defer cursor.Close(ctx)

	var docs []categoryDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, catalog.WrapStore("categories", fmt.Errorf("decode: %w", err))
	}
	categories = make([]models.Category, 0, len(docs))
	for _, d := range docs {
		c, err := d.model()
		if err != nil {
			return nil, catalog.WrapStore("categories", err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string) (category *models.Category, err error) {
	defer metrics.ObserveStore(backend, "category_by_slug", time.Now(), &err)
	return s.findCategory(ctx, bson.M{"slug": slug})
}

func (s *Store) findCategory(ctx context.Context, filter bson.M) (*models.Category, error) {
	var doc categoryDoc
	if err := s.categories.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, catalog.WrapStore("find category", err)
	}
	c, err := doc.model()
	if err != nil {
		return nil, catalog.WrapStore("find category", err)
	}
	return &c, nil
}

func (s *Store) Execute(ctx context.Context, q catalog.QuerySpec) (products []models.Product, err error) {
	defer metrics.ObserveStore(backend, "execute", time.Now(), &err)

	cursor, err := s.products.Find(ctx, Filter(q), FindOptions(q))
	if err != nil {
		return nil, catalog.WrapStore("execute", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, catalog.WrapStore("execute", fmt.Errorf("decode: %w", err))
	}

	joined := make(map[uuid.UUID]*models.Category)
	products = make([]models.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.model()
		if err != nil {
			return nil, catalog.WrapStore("execute", err)
		}
		if q.IncludeCategory {
			category, ok := joined[p.CategoryID]
			if !ok {
				category, err = s.findCategory(ctx, bson.M{"_id": p.CategoryID.String()})
				if err != nil {
					return nil, err
				}
				joined[p.CategoryID] = category
			}
			p.Category = category
		}
		products = append(products, p)
	}
	return products, nil
}

// Filter builds the bson predicate for q.
func Filter(q catalog.QuerySpec) bson.M {
	filter := bson.M{}
	if q.CategoryID != nil {
		filter["category_id"] = q.CategoryID.String()
	}
	if q.Slug != "" {
		filter["slug"] = q.Slug
	}
	if q.ExcludeID != nil {
		filter["_id"] = bson.M{"$ne": q.ExcludeID.String()}
	}
	if len(q.Genders) > 0 {
		filter["gender"] = bson.M{"$in": q.Genders}
	}
	if len(q.Widths) > 0 {
		filter["width"] = bson.M{"$in": q.Widths}
	}
	if len(q.Shapes) > 0 {
		filter["shape"] = bson.M{"$in": q.Shapes}
	}
	if len(q.Materials) > 0 {
		filter["material"] = bson.M{"$in": q.Materials}
	}
	if len(q.Colors) > 0 {
		filter["color_names"] = bson.M{"$in": q.Colors}
	}
	price := bson.M{}
	if q.MinPrice != nil {
		price["$gte"] = *q.MinPrice
	}
	if q.MaxPrice != nil {
		price["$lte"] = *q.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	if q.FeaturedOnly {
		filter["$or"] = bson.A{bson.M{"is_bestseller": true}, bson.M{"is_new": true}}
	}
	return filter
}

// FindOptions maps ordering and pagination onto mongo find options.
func FindOptions(q catalog.QuerySpec) *options.FindOptions {
	opts := options.Find()
	if len(q.Orders) > 0 {
		sort := bson.D{}
		for _, o := range q.Orders {
			dir := 1
			if o.Desc {
				dir = -1
			}
			sort = append(sort, bson.E{Key: o.Field, Value: dir})
		}
		opts.SetSort(sort)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	if q.Offset > 0 {
		opts.SetSkip(int64(q.Offset))
	}
	return opts
}

// InsertCategory stores c, generating an ID when missing.
func (s *Store) InsertCategory(ctx context.Context, c models.Category) (models.Category, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if _, err := s.categories.InsertOne(ctx, categoryFromModel(c)); err != nil {
		return c, fmt.Errorf("docstore: insert category %s: %w", c.Slug, err)
	}
	return c, nil
}

// InsertProduct stores p, generating an ID when missing.
func (s *Store) InsertProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.SyncColorNames()
	if _, err := s.products.InsertOne(ctx, productFromModel(p)); err != nil {
		return p, fmt.Errorf("docstore: insert product %s: %w", p.Slug, err)
	}
	return p, nil
}

func (d categoryDoc) model() (models.Category, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Category{}, fmt.Errorf("category %s: malformed id: %w", d.Slug, err)
	}
	return models.Category{
		BaseModel:     models.BaseModel{ID: id, CreatedAt: d.CreatedAt},
		Slug:          d.Slug,
		NameEN:        d.NameEN,
		NameAR:        d.NameAR,
		DescriptionEN: d.DescriptionEN,
		DescriptionAR: d.DescriptionAR,
		ImageURL:      d.ImageURL,
	}, nil
}

func categoryFromModel(c models.Category) categoryDoc {
	return categoryDoc{
		ID:            c.ID.String(),
		Slug:          c.Slug,
		NameEN:        c.NameEN,
		NameAR:        c.NameAR,
		DescriptionEN: c.DescriptionEN,
		DescriptionAR: c.DescriptionAR,
		ImageURL:      c.ImageURL,
		CreatedAt:     c.CreatedAt,
	}
}

func (d productDoc) model() (models.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: malformed id: %w", d.Slug, err)
	}
	categoryID, err := uuid.Parse(d.CategoryID)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: malformed category id: %w", d.Slug, err)
	}
	colors := make([]models.Color, 0, len(d.Colors))
	for _, c := range d.Colors {
		colors = append(colors, models.Color{Name: c.Name, Hex: c.Hex})
	}
	p := models.Product{
		BaseModel:     models.BaseModel{ID: id, CreatedAt: d.CreatedAt},
		CategoryID:    categoryID,
		Slug:          d.Slug,
		Name:          d.Name,
		Brand:         d.Brand,
		DescriptionEN: d.DescriptionEN,
		DescriptionAR: d.DescriptionAR,
		Price:         d.Price,
		OriginalPrice: d.OriginalPrice,
		Images:        d.Images,
		Colors:        colors,
		Width:         models.Width(d.Width),
		Shape:         models.Shape(d.Shape),
		Material:      models.Material(d.Material),
		Gender:        models.Gender(d.Gender),
		FrameWidth:    d.FrameWidth,
		LensWidth:     d.LensWidth,
		BridgeWidth:   d.BridgeWidth,
		IsNew:         d.IsNew,
		IsBestseller:  d.IsBestseller,
		InStock:       d.InStock,
	}
	p.SyncColorNames()
	return p, nil
}

func productFromModel(p models.Product) productDoc {
	colors := make([]colorDoc, 0, len(p.Colors))
	for _, c := range p.Colors {
		colors = append(colors, colorDoc{Name: c.Name, Hex: c.Hex})
	}
	return productDoc{
		ID:            p.ID.String(),
		CategoryID:    p.CategoryID.String(),
		Slug:          p.Slug,
		Name:          p.Name,
		Brand:         p.Brand,
		DescriptionEN: p.DescriptionEN,
		DescriptionAR: p.DescriptionAR,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Images:        p.Images,
		Colors:        colors,
		ColorNames:    p.ColorNames,
		Width:         string(p.Width),
		Shape:         string(p.Shape),
		Material:      string(p.Material),
		Gender:        string(p.Gender),
		FrameWidth:    p.FrameWidth,
		LensWidth:     p.LensWidth,
		BridgeWidth:   p.BridgeWidth,
		IsNew:         p.IsNew,
		IsBestseller:  p.IsBestseller,
		InStock:       p.InStock,
		CreatedAt:     p.CreatedAt,
	}
}

// Seed loads the demo catalog into empty collections and reports how many
// products were inserted. Existing data is left alone.
func Seed(ctx context.Context, s *Store) (int, error) {
	existing, err := s.categories.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("docstore: count categories: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	categories, products := seed.Catalog()
	ids := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		stored, err := s.InsertCategory(ctx, c)
		if err != nil {
			return 0, err
		}
		ids[stored.Slug] = stored.ID
	}
	for _, sp := range products {
		id, ok := ids[sp.CategorySlug]
		if !ok {
			return 0, fmt.Errorf("docstore: product %s: unknown category %q", sp.Product.Slug, sp.CategorySlug)
		}
		p := sp.Product
		p.CategoryID = id
		if err := p.Validate(); err != nil {
			return 0, err
		}
		if _, err := s.InsertProduct(ctx, p); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}
