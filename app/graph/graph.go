// Package graph exposes a read-only GraphQL view of the marketplace:
// stats, products and creator profiles in one query.
package graph

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/digiteria/app/models"
	"github.com/shashiranjanraj/digiteria/app/store"
	"github.com/shashiranjanraj/digiteria/pkg/collection"
	gql "github.com/shashiranjanraj/digiteria/pkg/graphql"
	"github.com/shashiranjanraj/digiteria/pkg/response"
)

var statsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Stats",
	Fields: graphql.Fields{
		"activeUsers":     &graphql.Field{Type: graphql.Int},
		"productsSold":    &graphql.Field{Type: graphql.Int},
		"creatorEarnings": &graphql.Field{Type: graphql.Float},
		"avgRating":       &graphql.Field{Type: graphql.Float},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.String},
		"creatorId":   &graphql.Field{Type: graphql.String},
		"title":       &graphql.Field{Type: graphql.String},
		"category":    &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.Float},
		"status":      &graphql.Field{Type: graphql.String},
		"salesCount":  &graphql.Field{Type: graphql.Int},
		"rating":      &graphql.Field{Type: graphql.Float},
		"reviewCount": &graphql.Field{Type: graphql.Int},
	},
})

type productView struct {
	ID          string  `json:"id"`
	CreatorID   string  `json:"creatorId"`
	Title       string  `json:"title"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	SalesCount  int     `json:"salesCount"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

func toView(p models.Product) productView {
	return productView{
		ID: p.ID, CreatorID: p.CreatorID, Title: p.Title, Category: p.Category,
		Price: p.Price, Status: p.Status, SalesCount: p.SalesCount,
		Rating: p.Rating, ReviewCount: p.ReviewCount,
	}
}

type statsView struct {
	ActiveUsers     int     `json:"activeUsers"`
	ProductsSold    int     `json:"productsSold"`
	CreatorEarnings float64 `json:"creatorEarnings"`
	AvgRating       float64 `json:"avgRating"`
}

// NewSchema builds the query schema over the given store.
func NewSchema(st *store.Store) (graphql.Schema, error) {
	root := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQuery",
		Fields: graphql.Fields{
			"stats": &graphql.Field{
				Type: statsType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					s := st.Stats()
					return statsView{
						ActiveUsers:     s.ActiveUsers,
						ProductsSold:    s.ProductsSold,
						CreatorEarnings: s.CreatorEarnings,
						AvgRating:       s.AvgRating,
					}, nil
				},
			},
			"products": &graphql.Field{
				Type: graphql.NewList(productType),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					products := st.Products()
					if status, ok := p.Args["status"].(string); ok && status != "" {
						products = collection.Filter(products, func(pr models.Product) bool {
							return pr.Status == status
						})
					}
					views := make([]productView, 0, len(products))
					for _, pr := range products {
						views = append(views, toView(pr))
					}
					return views, nil
				},
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(string)
					product, ok := st.ProductByID(id)
					if !ok {
						return nil, nil
					}
					return toView(product), nil
				},
			},
		},
	})

	return gql.NewSchema(root)
}

type queryRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Handler returns the POST /graphql endpoint over the store.
func Handler(st *store.Store) (http.HandlerFunc, error) {
	schema, err := NewSchema(st)
	if err != nil {
		return nil, err
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid GraphQL request")
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result) //nolint:errcheck
	}, nil
}
