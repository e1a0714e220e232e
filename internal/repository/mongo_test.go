package repository

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"tienda/internal/domain"
)

func TestProductQuery(t *testing.T) {
	// empty filter matches everything
	if q := productQuery(ProductFilter{}); len(q) != 0 {
		t.Fatalf("empty filter must produce empty query: %v", q)
	}

	min, max := 10.0, 50.0
	ft := true
	q := productQuery(ProductFilter{
		Category: domain.CategoryCamisetas,
		Featured: &ft,
		MinPrice: &min,
		MaxPrice: &max,
		Size:     "M",
		Search:   "polo",
	})

	want := bson.M{
		"category": domain.CategoryCamisetas,
		"featured": true,
		"price":    bson.M{"$gte": 10.0, "$lte": 50.0},
		"sizes":    "M",
		"$or": bson.A{
			bson.M{"name": primitive.Regex{Pattern: "polo", Options: "i"}},
			bson.M{"description": primitive.Regex{Pattern: "polo", Options: "i"}},
		},
	}
	if !reflect.DeepEqual(q, want) {
		t.Fatalf("query mismatch:\n got %v\nwant %v", q, want)
	}
}

func TestProductQuery_EscapesSearch(t *testing.T) {
	q := productQuery(ProductFilter{Search: "50% (rebaja)"})
	or, ok := q["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("expected $or with two branches: %v", q)
	}
	re := or[0].(bson.M)["name"].(primitive.Regex)
	if re.Pattern == "50% (rebaja)" {
		t.Fatalf("regex metacharacters must be escaped, got %q", re.Pattern)
	}
}

func TestProductQuery_PartialPriceRange(t *testing.T) {
	min := 20.0
	q := productQuery(ProductFilter{MinPrice: &min})
	if !reflect.DeepEqual(q["price"], bson.M{"$gte": 20.0}) {
		t.Fatalf("min-only price range: %v", q["price"])
	}
	if _, ok := q["$or"]; ok {
		t.Fatalf("no search requested: %v", q)
	}
}
