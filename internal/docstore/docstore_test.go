package docstore

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/models"
)

func TestFilterBuildsFacetPredicates(t *testing.T) {
	categoryID, productID := uuid.New(), uuid.New()
	lo := 120.0

	filter := Filter(catalog.QuerySpec{
		CategoryID:   &categoryID,
		ExcludeID:    &productID,
		Genders:      []models.Gender{models.GenderWomen, models.GenderUnisex},
		Colors:       []string{"Gold"},
		MinPrice:     &lo,
		FeaturedOnly: true,
	})

	assert.Equal(t, categoryID.String(), filter["category_id"])
	assert.Equal(t, bson.M{"$ne": productID.String()}, filter["_id"])
	assert.Equal(t, bson.M{"$in": []models.Gender{models.GenderWomen, models.GenderUnisex}}, filter["gender"])
	assert.Equal(t, bson.M{"$in": []string{"Gold"}}, filter["color_names"])
	assert.Equal(t, bson.M{"$gte": 120.0}, filter["price"])
	assert.Equal(t, bson.A{bson.M{"is_bestseller": true}, bson.M{"is_new": true}}, filter["$or"])
	assert.NotContains(t, filter, "width")
	assert.NotContains(t, filter, "slug")
}

func TestFilterEmptySpecMatchesEverything(t *testing.T) {
	assert.Empty(t, Filter(catalog.QuerySpec{}))
}

func TestFilterEncodesAsBSON(t *testing.T) {
	hi := 150.0
	_, err := bson.Marshal(Filter(catalog.QuerySpec{
		Shapes:   []models.Shape{models.ShapeRound},
		MaxPrice: &hi,
	}))
	require.NoError(t, err)
}

func TestFindOptions(t *testing.T) {
	opts := FindOptions(catalog.QuerySpec{Orders: catalog.SortBestseller.Orders(), Limit: 20, Offset: 40})

	assert.Equal(t, bson.D{{Key: "is_bestseller", Value: -1}, {Key: "created_at", Value: -1}}, opts.Sort)
	require.NotNil(t, opts.Limit)
	assert.EqualValues(t, 20, *opts.Limit)
	require.NotNil(t, opts.Skip)
	assert.EqualValues(t, 40, *opts.Skip)

	bare := FindOptions(catalog.QuerySpec{})
	assert.Nil(t, bare.Sort)
	assert.Nil(t, bare.Limit)
	assert.Nil(t, bare.Skip)
}

func TestDocumentRoundTrip(t *testing.T) {
	original := 199.0
	p := models.Product{
		BaseModel:     models.BaseModel{ID: uuid.New(), CreatedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		CategoryID:    uuid.New(),
		Slug:          "dunes-aviator",
		Name:          "Dunes",
		Price:         179,
		OriginalPrice: &original,
		Images:        []string{"/a.jpg"},
		Colors:        []models.Color{{Name: "Gold", Hex: "#D4AF37"}},
		Width:         models.WidthWide,
		Shape:         models.ShapeAviator,
		Material:      models.MaterialMetal,
		Gender:        models.GenderMen,
		InStock:       true,
	}
	p.SyncColorNames()

	doc := productFromModel(p)
	assert.Equal(t, []string{"Gold"}, doc.ColorNames)

	back, err := doc.model()
	require.NoError(t, err)
	assert.Equal(t, p.ID, back.ID)
	assert.Equal(t, p.CategoryID, back.CategoryID)
	assert.Equal(t, p.Colors, back.Colors)
	assert.Equal(t, models.ShapeAviator, back.Shape)
	assert.True(t, back.OnSale())

	doc.CategoryID = "not-a-uuid"
	_, err = doc.model()
	assert.Error(t, err)
}
