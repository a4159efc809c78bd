package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prudhivi99/product-api/internal/models"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough stock to decrease")
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(database *MongoDB) *ProductRepository {
	return &ProductRepository{collection: database.DB.Collection("products")}
}

// Create inserts a new product
func (r *ProductRepository) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	now := time.Now().UTC()
	p := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := r.collection.InsertOne(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	p.ID = result.InsertedID.(primitive.ObjectID)
	return &p, nil
}

// GetAll returns every product together with the total record count
func (r *ProductRepository) GetAll(ctx context.Context) (*models.ProductList, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return &models.ProductList{TotalRecords: total, Products: products}, nil
}

// GetByID returns a single product
func (r *ProductRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &p, nil
}

// Update applies the non-nil fields of req and returns the updated product
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, req models.UpdateProductRequest) (*models.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &p, nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := r.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// TryDecrement reduces stock by amount if and only if enough stock remains.
// The sufficiency check and the decrement ride on a single FindOneAndUpdate
// with a stock-floor guard in the filter, so concurrent decrements on the
// same product can never interleave between check and write. On failure
// nothing is written.
func (r *ProductRepository) TryDecrement(ctx context.Context, id primitive.ObjectID, amount int) (*models.Product, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("decrement amount must be positive, got %d", amount)
	}

	filter := bson.M{"_id": id, "stock": bson.M{"$gte": amount}}
	update := bson.M{
		"$inc": bson.M{"stock": -amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Product
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	// No match: either the product is missing or the guard rejected the
	// decrement. A plain read distinguishes the two; it never writes.
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return nil, ErrInsufficientStock
}
