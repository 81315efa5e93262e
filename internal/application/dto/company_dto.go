package dto

import "time"

// CreateCompanyRequest alta de empresa; ParentID nil = raíz del grupo.
type CreateCompanyRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"`
}

// CompanyResponse una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanyListResponse listado plano de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
}

// CompanyTreeNode nodo del árbol de empresas para renderizar la jerarquía.
type CompanyTreeNode struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Children []CompanyTreeNode `json:"children,omitempty"`
}
