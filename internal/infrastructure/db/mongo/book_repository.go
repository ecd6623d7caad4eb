package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/readtrack/books-api/internal/core/domain"
	"github.com/readtrack/books-api/internal/core/ports"
)

type BookRepository struct {
	col *mongo.Collection
	now func() time.Time
}

var _ ports.BookRepository = (*BookRepository)(nil)

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{col: db.Collection(collectionBooks), now: time.Now}
}

type mongoBook struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Owner     string             `bson:"owner"`
	Name      string             `bson:"name"`
	Author    string             `bson:"author"`
	Year      *int               `bson:"year"`
	Pages     int                `bson:"pages"`
	Status    string             `bson:"status"`
	Resume    string             `bson:"resume"`
	Rating    *int               `bson:"rating"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Create inserts a new book document.
func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBook{
		ID:        primitive.NewObjectID(),
		Owner:     b.Owner,
		Name:      b.Name,
		Author:    b.Author,
		Year:      b.Year,
		Pages:     b.Pages,
		Status:    string(b.Status),
		Resume:    b.Resume,
		Rating:    b.Rating,
		CreatedAt: b.CreatedAt.UTC(),
		UpdatedAt: b.UpdatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID retrieves a book only if it belongs to owner.
func (r *BookRepository) FindByID(ctx context.Context, id, owner string) (*domain.Book, error) {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoBook
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns the owner's books, newest first.
func (r *BookRepository) List(ctx context.Context, f ports.ListBooksFilter) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"owner": f.Owner}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoBook
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}

	books := make([]*domain.Book, 0, len(docs))
	for _, d := range docs {
		books = append(books, d.toDomain())
	}
	return books, nil
}

// Update applies the non-nil fields of u and returns the updated document.
func (r *BookRepository) Update(ctx context.Context, id, owner string, u ports.BookUpdate) (*domain.Book, error) {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return nil, domain.ErrBookNotFound
	}

	set := bson.M{"updated_at": r.now().UTC()}
	if u.Status != nil {
		set["status"] = string(*u.Status)
	}
	if u.Resume != nil {
		set["resume"] = *u.Resume
	}
	if u.Rating != nil {
		set["rating"] = *u.Rating
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoBook
	if err := r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes the book and returns it as it was.
func (r *BookRepository) Delete(ctx context.Context, id, owner string) (*domain.Book, error) {
	filter, ok := ownedFilter(id, owner)
	if !ok {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoBook
	if err := r.col.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return doc.toDomain(), nil
}

// ownedFilter is false when id is not an ObjectID; no such book can exist.
func ownedFilter(id, owner string) (bson.M, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, false
	}
	return bson.M{"_id": oid, "owner": owner}, true
}

func (d mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:        d.ID.Hex(),
		Owner:     d.Owner,
		Name:      d.Name,
		Author:    d.Author,
		Year:      d.Year,
		Pages:     d.Pages,
		Status:    domain.BookStatus(d.Status),
		Resume:    d.Resume,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
