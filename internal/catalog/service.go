// Package catalog serves grocery browsing and administration.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"grocerystore/internal/models"
	"grocerystore/internal/repository"
	"grocerystore/internal/response"
)

// GroceryInput is the body of POST /grocery. Pointer fields distinguish an
// omitted value from a zero one.
type GroceryInput struct {
	Name     string          `json:"name" validate:"required"`
	Brand    string          `json:"brand" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Price    *models.Price   `json:"price" validate:"required"`
	Volume   *models.Measure `json:"volume,omitempty" validate:"omitempty"`
	Mass     *models.Measure `json:"mass,omitempty" validate:"omitempty"`
	Quantity *int            `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	Stock    *int            `json:"stock" validate:"required,gte=0"`
	Status   string          `json:"status" validate:"required,oneof=Active Inactive"`
}

// GroceryPatch is the body of PUT /grocery/:_id.
type GroceryPatch struct {
	Name     *string         `json:"name" validate:"omitempty,min=1"`
	Brand    *string         `json:"brand" validate:"omitempty,min=1"`
	Category *string         `json:"category" validate:"omitempty,min=1"`
	Price    *models.Price   `json:"price" validate:"omitempty"`
	Volume   *models.Measure `json:"volume" validate:"omitempty"`
	Mass     *models.Measure `json:"mass" validate:"omitempty"`
	Quantity *int            `json:"quantity" validate:"omitempty,gte=0"`
	Stock    *int            `json:"stock" validate:"omitempty,gte=0"`
	Status   *string         `json:"status" validate:"omitempty,oneof=Active Inactive"`
}

// updatable lists the JSON fields a grocery update may carry.
var updatable = map[string]bool{
	"name": true, "brand": true, "category": true, "price": true,
	"volume": true, "mass": true, "quantity": true, "stock": true, "status": true,
}

type Service struct {
	groceries  repository.GroceryRepository
	categories repository.CategoryRepository
	tx         repository.Transactor
	validate   *validator.Validate
	log        *zap.Logger
}

func NewService(store repository.Store, log *zap.Logger) *Service {
	return &Service{
		groceries:  store.Groceries,
		categories: store.Categories,
		tx:         store.Tx,
		validate:   newValidator(),
		log:        log.Named("catalog"),
	}
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validatePrice, models.Price{})
	v.RegisterStructValidation(validateMeasure, models.Measure{})
	return v
}

func validatePrice(sl validator.StructLevel) {
	price := sl.Current().Interface().(models.Price)
	if price.Value < 0 {
		sl.ReportError(price.Value, "value", "Value", "gte", "0")
	}
	if strings.TrimSpace(price.Currency) == "" {
		sl.ReportError(price.Currency, "currency", "Currency", "required", "")
	}
}

func validateMeasure(sl validator.StructLevel) {
	measure := sl.Current().Interface().(models.Measure)
	if measure.Value < 0 {
		sl.ReportError(measure.Value, "value", "Value", "gte", "0")
	}
	if strings.TrimSpace(measure.Unit) == "" {
		sl.ReportError(measure.Unit, "unit", "Unit", "required", "")
	}
}

// validationError renders validator failures as one ValidationError.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &response.Error{Kind: response.ValidatorError, Message: "Request body could not be validated.", Err: err}
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("Path '%s' is required.", path))
		default:
			parts = append(parts, fmt.Sprintf("Path '%s' failed rule '%s'.", path, fe.Tag()))
		}
	}
	return response.New(response.ValidationError, strings.Join(parts, " "))
}

// Search runs a validated catalog query. An empty result is NotFound.
func (s *Service) Search(ctx context.Context, values url.Values) ([]models.Grocery, error) {
	query, err := ValidateQuery(values)
	if err != nil {
		return nil, err
	}
	groceries, err := s.groceries.FindGroceries(ctx, query)
	if err != nil {
		return nil, response.Storage("find groceries", err)
	}
	if len(groceries) == 0 {
		return nil, response.New(response.NotFound, "No groceries found.")
	}
	return groceries, nil
}

func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.ListCategories(ctx, true)
	if err != nil {
		return nil, response.Storage("list categories", err)
	}
	if len(categories) == 0 {
		return nil, response.New(response.NotFound, "No categories found.")
	}
	return categories, nil
}

func (s *Service) categoryByName(ctx context.Context, name string) (models.Category, error) {
	category, err := s.categories.FindCategoryByName(ctx, name)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.Category{}, response.Errorf(response.InputError, "'%s' is not a valid category.", name)
	case err != nil:
		return models.Category{}, response.Storage("find category", err)
	}
	return category, nil
}

// Create stores a new grocery and adds it to its category.
func (s *Service) Create(ctx context.Context, body []byte) (models.Grocery, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return models.Grocery{}, err
	}
	if len(fields) == 0 {
		return models.Grocery{}, response.New(response.InputError, "No valid fields specified for new grocery item.")
	}

	var input GroceryInput
	if err := json.Unmarshal(body, &input); err != nil {
		return models.Grocery{}, response.FromDecode(err)
	}
	if err := s.validate.Struct(input); err != nil {
		return models.Grocery{}, validationError(err)
	}

	category, err := s.categoryByName(ctx, input.Category)
	if err != nil {
		return models.Grocery{}, err
	}

	grocery := models.Grocery{
		ID:         primitive.NewObjectID(),
		Name:       input.Name,
		Brand:      input.Brand,
		Category:   category.Name,
		CategoryID: &category.ID,
		Price:      *input.Price,
		Volume:     input.Volume,
		Mass:       input.Mass,
		Quantity:   input.Quantity,
		Stock:      *input.Stock,
		Status:     input.Status,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.groceries.InsertGrocery(ctx, &grocery); err != nil {
			return response.Storage("insert grocery", err)
		}
		if err := s.categories.AddGroceryToCategory(ctx, category.ID, grocery.ID); err != nil {
			return response.Storage("link grocery to category", err)
		}
		return nil
	})
	if err != nil {
		return models.Grocery{}, err
	}

	s.log.Info("grocery created", zap.String("grocery_id", grocery.ID.Hex()), zap.String("category", category.Name))
	return grocery, nil
}

// Update applies a partial update. Moving a grocery to another category
// relinks both category member lists.
func (s *Service) Update(ctx context.Context, rawID string, body []byte) (models.Grocery, error) {
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return models.Grocery{}, response.Errorf(response.CastError, "Invalid grocery _id: '%s'.", rawID)
	}

	fields, err := decodeFields(body)
	if err != nil {
		return models.Grocery{}, err
	}
	if len(fields) == 0 {
		return models.Grocery{}, response.New(response.InputError, "No fields provided within request body.")
	}
	if err := checkUpdatable(fields); err != nil {
		return models.Grocery{}, err
	}

	var patch GroceryPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		return models.Grocery{}, response.FromDecode(err)
	}
	if err := s.validate.Struct(patch); err != nil {
		return models.Grocery{}, validationError(err)
	}

	current, err := s.groceries.FindGrocery(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return models.Grocery{}, response.New(response.NotFound, "No grocery item found.")
	case err != nil:
		return models.Grocery{}, response.Storage("find grocery", err)
	}

	set := patch.toSet()
	var target *models.Category
	if patch.Category != nil && *patch.Category != current.Category {
		category, err := s.categoryByName(ctx, *patch.Category)
		if err != nil {
			return models.Grocery{}, err
		}
		target = &category
		set["categoryId"] = category.ID
	}

	var updated models.Grocery
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.groceries.UpdateGrocery(ctx, id, set)
		if err != nil {
			return response.Storage("update grocery", err)
		}
		if target == nil {
			return nil
		}
		if current.CategoryID != nil {
			err := s.categories.RemoveGroceryFromCategory(ctx, *current.CategoryID, id)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return response.Storage("unlink grocery from category", err)
			}
		}
		if err := s.categories.AddGroceryToCategory(ctx, target.ID, id); err != nil {
			return response.Storage("link grocery to category", err)
		}
		return nil
	})
	if err != nil {
		return models.Grocery{}, err
	}
	return updated, nil
}

func (p GroceryPatch) toSet() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Brand != nil {
		set["brand"] = *p.Brand
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Volume != nil {
		set["volume"] = *p.Volume
	}
	if p.Mass != nil {
		set["mass"] = *p.Mass
	}
	if p.Quantity != nil {
		set["quantity"] = *p.Quantity
	}
	if p.Stock != nil {
		set["stock"] = *p.Stock
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	return set
}

// decodeFields checks that body is a JSON object and returns its members.
func decodeFields(body []byte) (map[string]json.RawMessage, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]json.RawMessage{}, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, response.FromDecode(err)
	}
	return fields, nil
}

func checkUpdatable(fields map[string]json.RawMessage) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if name == "_id" {
			return response.New(response.IncorrectField, "Field '_id' cannot be updated.")
		}
		if !updatable[name] {
			return response.Errorf(response.IncorrectField, "'%s' is not a valid grocery field.", name)
		}
	}
	return nil
}
