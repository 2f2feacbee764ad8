// Package memory - хранилище в памяти процесса для разработки и тестов.
// Все репозитории делят один мьютекс, поэтому условные переходы статусов атомарны.
package memory

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ignatzorin/docexchange-backend/internal/domain/entity"
	"github.com/ignatzorin/docexchange-backend/internal/domain/repository"
)

type catalogKey struct {
	kind repository.CatalogKind
	name string
}

type Store struct {
	mu sync.RWMutex

	users              map[uuid.UUID]entity.User
	posts              map[uuid.UUID]entity.Post
	responses          map[uuid.UUID]entity.Response
	successors         map[uuid.UUID]uuid.UUID
	deals              map[uuid.UUID]entity.Deal
	complaints         map[uuid.UUID]entity.Complaint
	documents          map[uuid.UUID]struct{}
	documentComplaints map[uuid.UUID]entity.DocumentComplaint
	profileErrors      map[uuid.UUID]entity.ProfileError
	postErrors         map[uuid.UUID]entity.PostError
	catalog            map[catalogKey]string
}

func NewStore() *Store {
	return &Store{
		users:              make(map[uuid.UUID]entity.User),
		posts:              make(map[uuid.UUID]entity.Post),
		responses:          make(map[uuid.UUID]entity.Response),
		successors:         make(map[uuid.UUID]uuid.UUID),
		deals:              make(map[uuid.UUID]entity.Deal),
		complaints:         make(map[uuid.UUID]entity.Complaint),
		documents:          make(map[uuid.UUID]struct{}),
		documentComplaints: make(map[uuid.UUID]entity.DocumentComplaint),
		profileErrors:      make(map[uuid.UUID]entity.ProfileError),
		postErrors:         make(map[uuid.UUID]entity.PostError),
		catalog:            make(map[catalogKey]string),
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s} }

func (s *Store) Posts() *PostRepository { return &PostRepository{s} }

func (s *Store) Catalog() *CatalogRepository { return &CatalogRepository{s} }

func (s *Store) Responses() *ResponseRepository { return &ResponseRepository{s} }

func (s *Store) Deals() *DealRepository { return &DealRepository{s} }

func (s *Store) Complaints() *ComplaintRepository { return &ComplaintRepository{s} }

func (s *Store) Documents() *DocumentRepository { return &DocumentRepository{s} }

func (s *Store) DocumentComplaints() *DocumentComplaintRepository {
	return &DocumentComplaintRepository{s}
}

func (s *Store) ProfileErrors() *ProfileErrorRepository { return &ProfileErrorRepository{s} }

func (s *Store) PostErrors() *PostErrorRepository { return &PostErrorRepository{s} }

// AddCatalogEntry регистрирует значение справочника.
func (s *Store) AddCatalogEntry(kind repository.CatalogKind, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog[catalogKey{kind, strings.ToLower(name)}] = name
}

// AddDocument регистрирует документ, на который можно пожаловаться.
func (s *Store) AddDocument(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[id] = struct{}{}
}

// SeedCatalog заполняет справочник теми же значениями, что и миграция.
func (s *Store) SeedCatalog() {
	for _, name := range []string{"Курсовая работа", "Дипломная работа", "Реферат", "Контрольная работа", "Лабораторная работа"} {
		s.AddCatalogEntry(repository.CatalogWorkType, name)
	}
	for _, name := range []string{"Математика", "Физика", "Программирование", "Экономика", "История"} {
		s.AddCatalogEntry(repository.CatalogSubjectArea, name)
	}
	for _, name := range []string{"МГУ", "СПбГУ", "МФТИ", "ВШЭ", "МГТУ им. Баумана"} {
		s.AddCatalogEntry(repository.CatalogInstitution, name)
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u entity.User) *entity.User {
	u.Teacher = clonePtr(u.Teacher)
	return &u
}

func cloneResponse(r entity.Response) *entity.Response {
	r.PrevResponseID = clonePtr(r.PrevResponseID)
	return &r
}
