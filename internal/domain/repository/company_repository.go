package repository

import "github.com/jhoicas/pregao-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	// List devuelve todas las empresas (snapshot del árbol para visibilidad).
	List() ([]*entity.Company, error)
	Update(company *entity.Company) error
	Delete(id string) error
}
