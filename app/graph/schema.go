// Package graph exposes the storefront reads over GraphQL:
//
//	{ recommended { id name price categoryName } }
//	{ product(id: 7) { name attributes { name values } quantityPrices { quantity price } } }
package graph

import (
	"errors"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/collection"
	gql "github.com/shashiranjanraj/souq/pkg/graphql"
)

var attributeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductAttribute",
	Fields: graphql.Fields{
		"attributeId":     &graphql.Field{Type: graphql.Int},
		"name":            &graphql.Field{Type: graphql.String},
		"enAttributeName": &graphql.Field{Type: graphql.String},
		"arAttributeName": &graphql.Field{Type: graphql.String},
		"values":          &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

var quantityPriceType = graphql.NewObject(graphql.ObjectConfig{
	Name: "QuantityPrice",
	Fields: graphql.Fields{
		"quantity": &graphql.Field{Type: graphql.Int},
		"price":    &graphql.Field{Type: graphql.String},
	},
})

func cardFields() graphql.Fields {
	return graphql.Fields{
		"id":                 &graphql.Field{Type: graphql.Int},
		"sku":                &graphql.Field{Type: graphql.String},
		"name":               &graphql.Field{Type: graphql.String},
		"description":        &graphql.Field{Type: graphql.String},
		"categoryName":       &graphql.Field{Type: graphql.String},
		"brandName":          &graphql.Field{Type: graphql.String},
		"price":              &graphql.Field{Type: graphql.String},
		"actualPrice":        &graphql.Field{Type: graphql.String},
		"offPercentageValue": &graphql.Field{Type: graphql.String},
		"image":              &graphql.Field{Type: graphql.String},
		"images":             &graphql.Field{Type: graphql.NewList(graphql.String)},
		"quantity":           &graphql.Field{Type: graphql.Int},
		"isDeal":             &graphql.Field{Type: graphql.Boolean},
		"isHotDeal":          &graphql.Field{Type: graphql.Boolean},
		"maxQuantityPerUser": &graphql.Field{Type: graphql.Int},
	}
}

var productCardType = graphql.NewObject(graphql.ObjectConfig{
	Name:   "ProductCard",
	Fields: cardFields(),
})

var productDetailType = func() *graphql.Object {
	fields := cardFields()
	fields["attributes"] = &graphql.Field{Type: graphql.NewList(attributeType)}
	fields["quantityPrices"] = &graphql.Field{Type: graphql.NewList(quantityPriceType)}
	return graphql.NewObject(graphql.ObjectConfig{Name: "ProductDetail", Fields: fields})
}()

// NewSchema builds the read-only storefront schema. Names are resolved in
// the language stored on the request context.
func NewSchema(storefront *services.StorefrontService) (graphql.Schema, error) {
	listing := func(fn func(p graphql.ResolveParams) ([]services.ProductCard, error)) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			cards, err := fn(p)
			if err != nil {
				return nil, err
			}
			return collection.Map(cards, cardMap), nil
		}
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"recommended": &graphql.Field{
				Type: graphql.NewList(productCardType),
				Resolve: listing(func(p graphql.ResolveParams) ([]services.ProductCard, error) {
					return storefront.Recommended(p.Context)
				}),
			},
			"superDeals": &graphql.Field{
				Type: graphql.NewList(productCardType),
				Resolve: listing(func(p graphql.ResolveParams) ([]services.ProductCard, error) {
					return storefront.SuperDeals(p.Context)
				}),
			},
			"hotDeals": &graphql.Field{
				Type: graphql.NewList(productCardType),
				Resolve: listing(func(p graphql.ResolveParams) ([]services.ProductCard, error) {
					return storefront.HotDeals(p.Context)
				}),
			},
			"product": &graphql.Field{
				Type: productDetailType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id <= 0 {
						return nil, nil
					}
					d, err := storefront.Product(p.Context, uint(id))
					if errors.Is(err, services.ErrNotFound) {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return detailMap(d), nil
				},
			},
		},
	})

	return gql.NewSchema(query)
}

func cardMap(c services.ProductCard) map[string]interface{} {
	images := make([]string, len(c.Images))
	copy(images, c.Images)
	return map[string]interface{}{
		"id":                 int(c.ID),
		"sku":                c.SKU,
		"name":               c.Name,
		"description":        c.Description,
		"categoryName":       c.CategoryName,
		"brandName":          c.BrandName,
		"price":              c.Price.StringFixed(2),
		"actualPrice":        c.ActualPrice.StringFixed(2),
		"offPercentageValue": c.OffPercentageValue.String(),
		"image":              c.Image,
		"images":             images,
		"quantity":           c.Quantity,
		"isDeal":             c.IsDeal,
		"isHotDeal":          c.IsHotDeal,
		"maxQuantityPerUser": c.MaxQuantityPerUser,
	}
}

func detailMap(d services.ProductDetail) map[string]interface{} {
	m := cardMap(d.ProductCard)

	m["attributes"] = collection.Map(d.Attributes, func(a services.ExpandedAttribute) map[string]interface{} {
		return map[string]interface{}{
			"attributeId":     int(a.AttributeID),
			"name":            a.Name,
			"enAttributeName": a.EnAttributeName,
			"arAttributeName": a.ArAttributeName,
			"values":          a.Values,
		}
	})
	m["quantityPrices"] = collection.Map(d.QuantityPrices, func(qp services.QuantityPrice) map[string]interface{} {
		return map[string]interface{}{"quantity": qp.Quantity, "price": qp.Price.StringFixed(2)}
	})
	return m
}
