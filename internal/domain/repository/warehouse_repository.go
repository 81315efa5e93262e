package repository

import "github.com/jhoicas/pregao-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	// List devuelve todas las bodegas (snapshot para el resolver de visibilidad).
	List() ([]*entity.Warehouse, error)
	ListByCompany(companyID string) ([]*entity.Warehouse, error)
	Delete(id string) error
}
