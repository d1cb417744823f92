package services

import (
	"booknest/internal/domain"
	"booknest/internal/repos"
)

type CatalogService struct {
	Books *repos.BookRepo
}

func NewCatalogService(books *repos.BookRepo) *CatalogService {
	return &CatalogService{Books: books}
}

func (s *CatalogService) List() ([]domain.Book, error) { return s.Books.List() }

func (s *CatalogService) Get(id string) (*domain.Book, error) { return s.Books.Get(id) }

func (s *CatalogService) ByGenre(genre string) ([]domain.Book, error) {
	return s.Books.ByGenre(genre)
}

func (s *CatalogService) Search(q string) ([]domain.Book, error) { return s.Books.Search(q) }

func (s *CatalogService) Author(id string) (*domain.Author, error) { return s.Books.Author(id) }
