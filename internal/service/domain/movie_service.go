package domain

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cinerama/cinerama/internal/model"
	"github.com/cinerama/cinerama/internal/repository"
	"github.com/cinerama/cinerama/internal/service"
)

type MovieService interface {
	Create(movie *model.Movie) error
	Update(id uint, updated *model.Movie) (*model.Movie, error)
	Delete(id uint) bool
	GetByID(id uint) (*model.Movie, error)
	GetByTitle(title string) (*model.Movie, error)
	ListAll() []*model.Movie
	ListByGenre(genre string) []*model.Movie
	SearchByTitle(query string) []*model.Movie
}

type movieService struct {
	repo   repository.MovieRepo
	logger *zap.Logger
}

var _ MovieService = (*movieService)(nil)

func NewMovieService(repo repository.MovieRepo, logger *zap.Logger) *movieService {
	return &movieService{repo: repo, logger: logger}
}

func (s *movieService) Create(movie *model.Movie) error {
	if err := s.validate(movie); err != nil {
		return err
	}
	if _, err := s.repo.GetByTitle(movie.Title); err == nil {
		return fmt.Errorf("%w: movie title %q", service.ErrDuplicate, movie.Title)
	}
	s.repo.Create(movie)
	s.logger.Info("movie created", zap.Uint("movieId", movie.ID), zap.String("title", movie.Title))
	return nil
}

func (s *movieService) Update(id uint, updated *model.Movie) (*model.Movie, error) {
	movie, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(updated); err != nil {
		return nil, err
	}
	if existing, err := s.repo.GetByTitle(updated.Title); err == nil && existing.ID != id {
		return nil, fmt.Errorf("%w: movie title %q", service.ErrDuplicate, updated.Title)
	}
	movie.Title = updated.Title
	movie.Genre = updated.Genre
	movie.DurationMin = updated.DurationMin
	movie.Rating = updated.Rating
	movie.Synopsis = updated.Synopsis
	movie.Price = updated.Price
	return movie, nil
}

func (s *movieService) Delete(id uint) bool {
	return s.repo.Delete(id)
}

func (s *movieService) GetByID(id uint) (*model.Movie, error) {
	movie, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: movie %d", service.ErrNotFound, id)
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) GetByTitle(title string) (*model.Movie, error) {
	movie, err := s.repo.GetByTitle(title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: movie %q", service.ErrNotFound, title)
		}
		return nil, err
	}
	return movie, nil
}

func (s *movieService) ListAll() []*model.Movie {
	return s.repo.ListAll()
}

func (s *movieService) ListByGenre(genre string) []*model.Movie {
	matched := make([]*model.Movie, 0)
	for _, movie := range s.repo.ListAll() {
		if strings.EqualFold(movie.Genre, genre) {
			matched = append(matched, movie)
		}
	}
	return matched
}

// SearchByTitle matches a case-insensitive title substring.
func (s *movieService) SearchByTitle(query string) []*model.Movie {
	matched := make([]*model.Movie, 0)
	needle := strings.ToLower(query)
	for _, movie := range s.repo.ListAll() {
		if strings.Contains(strings.ToLower(movie.Title), needle) {
			matched = append(matched, movie)
		}
	}
	return matched
}

func (s *movieService) validate(movie *model.Movie) error {
	if movie.Title == "" {
		return fmt.Errorf("%w: title is required", service.ErrValidation)
	}
	if movie.DurationMin <= 0 {
		return fmt.Errorf("%w: duration must be greater than 0", service.ErrValidation)
	}
	if movie.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", service.ErrValidation)
	}
	return nil
}
