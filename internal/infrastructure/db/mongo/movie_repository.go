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

	"github.com/filmmemories/backend/internal/core/domain"
)

const moviesCollection = "movies"

// MovieRepository persists movie records in the movies collection. Movies
// reference their creator, comments and likers by ObjectID.
type MovieRepository struct {
	coll *mongo.Collection
}

func NewMovieRepository(db *mongo.Database) *MovieRepository {
	return &MovieRepository{coll: db.Collection(moviesCollection)}
}

type movieDoc struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Title       string               `bson:"title"`
	Description string               `bson:"description"`
	Year        int                  `bson:"year"`
	Director    string               `bson:"director"`
	Image       string               `bson:"image"`
	Rating      float64              `bson:"rating"`
	Creator     primitive.ObjectID   `bson:"creator"`
	Comments    []primitive.ObjectID `bson:"comments"`
	Likes       []primitive.ObjectID `bson:"likes"`
	CreatedAt   time.Time            `bson:"created_at"`
	UpdatedAt   time.Time            `bson:"updated_at"`
}

// Create inserts a new movie document. The updated timestamp is touched
// explicitly right before the write.
func (r *MovieRepository) Create(ctx context.Context, movie *domain.Movie) (*domain.Movie, error) {
	creator, err := primitive.ObjectIDFromHex(movie.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("creator id: %w", domain.ErrInvalidID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := movieDoc{
		Title:       movie.Title,
		Description: movie.Description,
		Year:        movie.Year,
		Director:    movie.Director,
		Image:       movie.Image,
		Rating:      movie.Rating,
		Creator:     creator,
		Comments:    []primitive.ObjectID{},
		Likes:       []primitive.ObjectID{},
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   now,
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert movie: %w", err)
	}

	created := *movie
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.CreatedAt = doc.CreatedAt
	created.UpdatedAt = doc.UpdatedAt
	return &created, nil
}

// Find returns up to limit movies ordered by creation time descending.
func (r *MovieRepository) Find(ctx context.Context, limit int64) ([]domain.Movie, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer cur.Close(ctx)

	return decodeMovies(ctx, cur)
}

func (r *MovieRepository) FindByCreator(ctx context.Context, creatorID string) ([]domain.Movie, error) {
	creator, err := primitive.ObjectIDFromHex(creatorID)
	if err != nil {
		return nil, fmt.Errorf("creator id: %w", domain.ErrInvalidID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"creator": creator}, opts)
	if err != nil {
		return nil, fmt.Errorf("find movies by creator: %w", err)
	}
	defer cur.Close(ctx)

	return decodeMovies(ctx, cur)
}

// FindByID retrieves one movie. A syntactically malformed id fails with
// ErrInvalidID before touching the store.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc movieDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	m := movieFromDoc(doc)
	return &m, nil
}

// EnsureIndexes creates the indexes backing the creator-scoped and
// newest-first listings.
func (r *MovieRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "creator", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeMovies(ctx context.Context, cur *mongo.Cursor) ([]domain.Movie, error) {
	var movies []domain.Movie
	for cur.Next(ctx) {
		var doc movieDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode movie: %w", err)
		}
		movies = append(movies, movieFromDoc(doc))
	}
	return movies, cur.Err()
}

func movieFromDoc(doc movieDoc) domain.Movie {
	return domain.Movie{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Year:        doc.Year,
		Director:    doc.Director,
		Image:       doc.Image,
		Rating:      doc.Rating,
		CreatorID:   doc.Creator.Hex(),
		Comments:    hexIDs(doc.Comments),
		Likes:       hexIDs(doc.Likes),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

func hexIDs(oids []primitive.ObjectID) []string {
	out := make([]string, len(oids))
	for i, oid := range oids {
		out[i] = oid.Hex()
	}
	return out
}
